package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// FinishCmd returns the finish command.
func FinishCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("finish", flag.ContinueOnError),
		Usage: "finish <id>",
		Short: "Mark an item finished",
		Long:  "Mark an item finished. Items it covered become actionable once nothing else covers them.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, err := oneID(args)
			if err != nil {
				return err
			}

			w, items, err := a.lookup(ctx, ref)
			if err != nil {
				return err
			}

			err = w.FinishItem(ctx, items[0].ID, a.now())
			if err != nil {
				return err
			}

			o.Println("finished", label(items[0]))

			return nil
		},
	}
}

func oneID(args []string) (string, error) {
	if len(args) == 0 {
		return "", errIDRequired
	}

	if len(args) > 1 {
		return "", errTooManyArgs
	}

	return args[0], nil
}

func twoIDs(args []string) (string, string, error) {
	if len(args) < 2 {
		return "", "", errIDRequired
	}

	if len(args) > 2 {
		return "", "", errTooManyArgs
	}

	return args[0], args[1], nil
}
