package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.StringP("kind", "k", "", "Only items of this kind (todo|hope|motivation|question)")
	fs.BoolP("all", "a", false, "Include finished items")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List items",
		Long:  "List items in capture order. Finished items are hidden unless --all is given.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			kindFlag, _ := fs.GetString("kind")
			all, _ := fs.GetBool("all")

			items, err := listItems(ctx, a, kindFlag, all)
			if err != nil {
				return err
			}

			for _, it := range items {
				line := it.ShortID() + "  " + string(it.Kind) + "  " + it.Summary
				if it.IsFinished() {
					line += "  (finished)"
				}

				o.Println(line)
			}

			return nil
		},
	}
}

func listItems(ctx context.Context, a *app, kindFlag string, all bool) ([]*item.Item, error) {
	_, v, err := a.view(ctx)
	if err != nil {
		return nil, err
	}

	items := v.Registry().Items()

	if kindFlag != "" {
		kind, parseErr := item.ParseKind(kindFlag)
		if parseErr != nil {
			return nil, parseErr
		}

		items = v.Registry().OfKind(kind)
	}

	out := make([]*item.Item, 0, len(items))

	for _, it := range items {
		if all || !it.IsFinished() {
			out = append(out, it)
		}
	}

	return out, nil
}
