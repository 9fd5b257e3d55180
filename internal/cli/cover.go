package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// CoverCmd returns the cover command.
func CoverCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("cover", flag.ContinueOnError),
		Usage: "cover <id> <blocker-id>",
		Short: "Something else should be done first",
		Long: `Record that <blocker-id> should be done before <id>.

<id> is hidden from 'op next' until every item covering it is finished.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, blockerRef, err := twoIDs(args)
			if err != nil {
				return err
			}

			w, items, err := a.lookup(ctx, ref, blockerRef)
			if err != nil {
				return err
			}

			_, err = w.CoverItem(ctx, items[1].ID, items[0].ID)
			if err != nil {
				return err
			}

			o.Printf("%s now waits on %s\n", items[0].ShortID(), items[1].ShortID())

			return nil
		},
	}
}

// ParentCmd returns the parent command.
func ParentCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("parent", flag.ContinueOnError),
		Usage: "parent <id> <goal-id>",
		Short: "Record that an item serves a larger goal",
		Long: `Record that <id> serves <goal-id>.

The goal is hidden from 'op next' while <id> is unfinished, and shows up in
the ancestor chain of <id>.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, goalRef, err := twoIDs(args)
			if err != nil {
				return err
			}

			w, items, err := a.lookup(ctx, ref, goalRef)
			if err != nil {
				return err
			}

			_, err = w.CoverItem(ctx, items[0].ID, items[1].ID)
			if err != nil {
				return err
			}

			o.Printf("%s serves %s\n", items[0].ShortID(), items[1].ShortID())

			return nil
		},
	}
}

// UncoverCmd returns the uncover command.
func UncoverCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("uncover", flag.ContinueOnError),
		Usage: "uncover <id> <blocker-id>",
		Short: "Remove a covering edge",
		Long:  "Remove the edge recorded by 'op cover <id> <blocker-id>' (or 'op parent <blocker-id> <id>').",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, blockerRef, err := twoIDs(args)
			if err != nil {
				return err
			}

			w, items, err := a.lookup(ctx, ref, blockerRef)
			if err != nil {
				return err
			}

			err = w.RemoveCovering(ctx, items[1].ID, items[0].ID)
			if err != nil {
				return err
			}

			o.Printf("%s no longer waits on %s\n", items[0].ShortID(), items[1].ShortID())

			return nil
		},
	}
}
