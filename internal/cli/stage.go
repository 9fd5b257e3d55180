package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// StageCmd returns the stage command.
func StageCmd(a *app) *Command {
	fs := flag.NewFlagSet("stage", flag.ContinueOnError)
	fs.String("enter", "0s", "Enter the list after this duration (mentally-resident, on-deck)")
	fs.String("lap", "1d", "Revisit interval once on the list (mentally-resident, on-deck)")

	return &Command{
		Flags: fs,
		Usage: "stage <id> <staging> [flags]",
		Short: "Set how present an item is in your mind",
		Long: `Set an item's staging. 'op next --by-staging' orders by it.

Stagings: ` + joinStagingKinds() + `

Examples:
  op stage 01AB on-deck --enter 2h --lap 1d
  op stage 01AB released`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, name, err := twoIDs(args)
			if err != nil {
				return err
			}

			kind, err := item.ParseStagingKind(name)
			if err != nil {
				return err
			}

			staging := item.Staging{Kind: kind}

			if kind.HasTiming() {
				enterFlag, _ := fs.GetString("enter")
				lapFlag, _ := fs.GetString("lap")

				enter, parseErr := parseDuration(enterFlag)
				if parseErr != nil {
					return parseErr
				}

				staging.Lap, parseErr = parseDuration(lapFlag)
				if parseErr != nil {
					return parseErr
				}

				staging.EnterList = a.now().Add(enter)
			}

			w, items, err := a.lookup(ctx, ref)
			if err != nil {
				return err
			}

			err = w.SetStaging(ctx, items[0].ID, staging)
			if err != nil {
				return err
			}

			o.Printf("%s staged as %s\n", items[0].ShortID(), kind)

			return nil
		},
	}
}

func joinStagingKinds() string {
	names := make([]string, 0, len(item.StagingKinds))
	for _, k := range item.StagingKinds {
		names = append(names, string(k))
	}

	return strings.Join(names, ", ")
}
