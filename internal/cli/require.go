package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// RequireCmd returns the require command.
func RequireCmd(a *app) *Command {
	fs := flag.NewFlagSet("require", flag.ContinueOnError)
	fs.Bool("not-sunday", false, "Only actionable on days other than Sunday")
	fs.Bool("focus-time", false, "Only actionable during focus time")

	return &Command{
		Flags: fs,
		Usage: "require <id> [flags]",
		Short: "Set the circumstances an item needs",
		Long: `Replace the circumstance requirements of an item.

Without flags every requirement is cleared. Items without a focus-time
requirement are hidden during focus time.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, err := oneID(args)
			if err != nil {
				return err
			}

			var kinds []item.RequirementKind

			if v, _ := fs.GetBool("not-sunday"); v {
				kinds = append(kinds, item.RequirementNotSunday)
			}

			if v, _ := fs.GetBool("focus-time"); v {
				kinds = append(kinds, item.RequirementFocusTime)
			}

			w, items, err := a.lookup(ctx, ref)
			if err != nil {
				return err
			}

			_, err = w.SetRequirements(ctx, items[0].ID, kinds)
			if err != nil {
				return err
			}

			o.Printf("%s requires: %s\n", items[0].ShortID(), formatRequirementKinds(kinds))

			return nil
		},
	}
}

func formatRequirementKinds(kinds []item.RequirementKind) string {
	if len(kinds) == 0 {
		return "nothing"
	}

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	return strings.Join(names, ", ")
}
