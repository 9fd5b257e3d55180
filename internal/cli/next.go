package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// NextCmd returns the next command.
func NextCmd(a *app) *Command {
	fs := flag.NewFlagSet("next", flag.ContinueOnError)
	fs.Bool("focus", false, "Show only items that need focus time")
	fs.Bool("no-focus", false, "Show only items that do not need focus time")
	fs.Bool("json", false, "Output as JSON array")
	fs.Int("limit", 0, "Maximum steps to show (0 = no limit)")
	fs.Bool("by-staging", false, "Order by staging (mentally resident first, released last)")
	fs.String("at", "", "Evaluate at this time instead of now")

	return &Command{
		Flags: fs,
		Usage: "next [flags]",
		Short: "List next steps with the goals they serve",
		Long: `List the to-dos that can be acted on now.

A to-do is a next step if:
  - it is not finished
  - every item covering it is finished
  - it is not snoozed
  - its circumstances hold (not-sunday; focus-time matches the focus mode)

Each step is followed by the chain of goals it serves.
Focus mode defaults to the focus_time config value.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			opts, err := parseNextFlags(fs, a)
			if err != nil {
				return err
			}

			_, v, err := a.view(ctx)
			if err != nil {
				return err
			}

			return execNext(o, v, opts)
		},
	}
}

type nextOptions struct {
	at        time.Time
	focus     bool
	json      bool
	limit     int
	byStaging bool
}

func parseNextFlags(fs *flag.FlagSet, a *app) (nextOptions, error) {
	opts := nextOptions{at: a.now(), focus: a.cfg.FocusTime}

	focus, _ := fs.GetBool("focus")
	noFocus, _ := fs.GetBool("no-focus")

	if focus && noFocus {
		return nextOptions{}, errFocusFlags
	}

	if focus {
		opts.focus = true
	}

	if noFocus {
		opts.focus = false
	}

	opts.json, _ = fs.GetBool("json")
	opts.byStaging, _ = fs.GetBool("by-staging")
	opts.limit, _ = fs.GetInt("limit")

	if opts.limit < 0 {
		return nextOptions{}, errNegativeLimit
	}

	if at, _ := fs.GetString("at"); at != "" {
		t, err := parseTime(at, time.Local)
		if err != nil {
			return nextOptions{}, err
		}

		opts.at = t
	}

	return opts, nil
}

// nextSteps computes the actionable steps, optionally ordered by staging.
func nextSteps(v *item.View, at time.Time, focus, byStaging bool) []item.NextStep {
	steps := v.ActionableItems(at, focus)

	if byStaging {
		slices.SortStableFunc(steps, func(x, y item.NextStep) int {
			return x.Item.Staging.Rank(at) - y.Item.Staging.Rank(at)
		})
	}

	return steps
}

func execNext(o *IO, v *item.View, opts nextOptions) error {
	steps := nextSteps(v, opts.at, opts.focus, opts.byStaging)

	for _, s := range steps {
		if s.Err != nil {
			o.Warn(s.Err.Error(), fmt.Sprintf("remove one edge with 'op uncover' (reached from %s)", s.Item.ShortID()))
		}
	}

	if opts.limit > 0 && len(steps) > opts.limit {
		steps = steps[:opts.limit]
	}

	if opts.json {
		return outputNextJSON(o, steps)
	}

	if len(steps) == 0 {
		o.ErrPrintln("nothing to do right now")

		return nil
	}

	for _, s := range steps {
		o.Println(formatStepLine(s.Item))

		for _, goal := range s.Chain() {
			o.Println("    serves", label(goal))
		}
	}

	return nil
}

func formatStepLine(it *item.Item) string {
	line := label(it)

	if it.Staging.Kind != item.StagingNotSet {
		line += "  [" + string(it.Staging.Kind) + "]"
	}

	return line
}

type goalJSON struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Kind    string `json:"kind"`
}

type nextStepJSON struct {
	ID           string     `json:"id"`
	ShortID      string     `json:"short_id"`
	Summary      string     `json:"summary"`
	Staging      string     `json:"staging"`
	Requirements []string   `json:"requirements"`
	Serves       []goalJSON `json:"serves"`
	Error        string     `json:"error,omitempty"`
}

func outputNextJSON(o *IO, steps []item.NextStep) error {
	out := make([]nextStepJSON, 0, len(steps))

	for _, s := range steps {
		js := nextStepJSON{
			ID:           s.Item.ID,
			ShortID:      s.Item.ShortID(),
			Summary:      s.Item.Summary,
			Staging:      string(s.Item.Staging.Kind),
			Requirements: []string{},
			Serves:       []goalJSON{},
		}

		for _, r := range s.Item.Requirements {
			js.Requirements = append(js.Requirements, string(r.Kind))
		}

		for _, goal := range s.Chain() {
			js.Serves = append(js.Serves, goalJSON{ID: goal.ID, Summary: goal.Summary, Kind: string(goal.Kind)})
		}

		if s.Err != nil {
			js.Error = s.Err.Error()
		}

		out = append(out, js)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	o.Println(string(data))

	return nil
}
