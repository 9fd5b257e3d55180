package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"
)

// RenameCmd returns the rename command.
func RenameCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rename", flag.ContinueOnError),
		Usage: "rename <id> <summary...>",
		Short: "Replace an item's summary",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}

			summary := strings.TrimSpace(strings.Join(args[1:], " "))
			if summary == "" {
				return errSummaryRequired
			}

			w, items, err := a.lookup(ctx, args[0])
			if err != nil {
				return err
			}

			err = w.UpdateSummary(ctx, items[0].ID, summary)
			if err != nil {
				return err
			}

			o.Println("renamed", items[0].ShortID())

			return nil
		},
	}
}
