package cli

import (
	"context"
	"time"

	flag "github.com/spf13/pflag"
)

// SnoozeCmd returns the snooze command.
func SnoozeCmd(a *app) *Command {
	fs := flag.NewFlagSet("snooze", flag.ContinueOnError)
	fs.String("for", "", "Hide for a duration (e.g. 90m, 3d, 2w)")
	fs.String("until", "", "Hide until a time (RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\")")

	return &Command{
		Flags: fs,
		Usage: "snooze <id> (--for <duration> | --until <time>)",
		Short: "Hide an item until a later time",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, err := oneID(args)
			if err != nil {
				return err
			}

			forFlag, _ := fs.GetString("for")
			untilFlag, _ := fs.GetString("until")

			until, err := snoozeUntil(a.now(), forFlag, untilFlag)
			if err != nil {
				return err
			}

			w, items, err := a.lookup(ctx, ref)
			if err != nil {
				return err
			}

			_, err = w.CoverUntil(ctx, items[0].ID, until)
			if err != nil {
				return err
			}

			o.Printf("snoozed %s until %s\n", items[0].ShortID(), until.Local().Format(time.DateTime))

			return nil
		},
	}
}

func snoozeUntil(now time.Time, forFlag, untilFlag string) (time.Time, error) {
	if (forFlag == "") == (untilFlag == "") {
		return time.Time{}, errSnoozeTarget
	}

	if forFlag != "" {
		d, err := parseDuration(forFlag)
		if err != nil {
			return time.Time{}, err
		}

		return now.Add(d), nil
	}

	return parseTime(untilFlag, now.Location())
}
