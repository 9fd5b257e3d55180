package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show an item with its relationships",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			ref, err := oneID(args)
			if err != nil {
				return err
			}

			_, v, err := a.view(ctx)
			if err != nil {
				return err
			}

			it, err := v.Registry().Resolve(ref)
			if err != nil {
				return err
			}

			return execShow(o, v, it, a.now())
		},
	}
}

func execShow(o *IO, v *item.View, it *item.Item, now time.Time) error {
	idx := v.Index()

	o.Println("id:", it.ID)
	o.Println("short_id:", it.ShortID())
	o.Println("kind:", it.Kind)
	o.Println("summary:", it.Summary)
	o.Println("created:", formatWhen(v.Registry().Created(it.ID), now))

	if it.IsFinished() {
		o.Println("finished:", formatWhen(*it.Finished, now))
	}

	o.Println("staging:", it.Staging)

	reqs := make([]item.RequirementKind, 0, len(it.Requirements))
	for _, r := range it.Requirements {
		reqs = append(reqs, r.Kind)
	}

	o.Println("requirements:", formatRequirementKinds(reqs))

	if it.Is(item.KindToDo) && !it.IsFinished() {
		o.Println("actionable:", item.IsActionable(it, idx, now, false) || item.IsActionable(it, idx, now, true))
	}

	blockers, err := v.BlockersOf(it.ID)
	if err != nil {
		return err
	}

	printItemList(o, "waiting on:", blockers)

	var snoozes []string

	for _, tc := range idx.TimeCoverings(it.ID) {
		if now.Before(tc.Until) {
			snoozes = append(snoozes, formatWhen(tc.Until, now))
		}
	}

	if len(snoozes) > 0 {
		o.Println("snoozed until:", strings.Join(snoozes, "; "))
	}

	printItemList(o, "served by:", idx.Smaller(it.ID))

	node, err := v.AncestorsOf(it.ID)

	var cycle *item.CycleError
	if errors.As(err, &cycle) {
		o.Warn(cycle.Error(), "remove one edge with 'op uncover'")
	} else if err != nil {
		return err
	}

	printItemList(o, "serves:", node.Chain())

	return nil
}

func printItemList(o *IO, heading string, items []*item.Item) {
	if len(items) == 0 {
		return
	}

	o.Println(heading)

	for _, it := range items {
		line := "  " + label(it)
		if it.IsFinished() {
			line += "  (finished)"
		}

		o.Println(line)
	}
}

// formatWhen renders an absolute local time followed by its distance from now.
func formatWhen(t, now time.Time) string {
	return t.Local().Format(time.DateTime) + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}
