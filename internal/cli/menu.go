package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/datalayer"
	"github.com/calvinalkan/onpurpose/internal/item"
)

// MenuCmd returns the interactive menu command.
func MenuCmd(a *app) *Command {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	fs.Bool("focus", false, "Start in focus time")

	return &Command{
		Flags: fs,
		Usage: "menu [flags]",
		Short: "Work through next steps interactively",
		Long: `Show the next steps and act on them one at a time.

Pick a step by number to finish it, put something else first, connect it to a
goal, snooze it, or change its staging and requirements. Empty input or 'q'
goes back without changing anything.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			focus := a.cfg.FocusTime
			if f, _ := fs.GetBool("focus"); f {
				focus = true
			}

			p := newPrompter(a.in, o)
			defer func() { _ = p.Close() }()

			m := &menu{a: a, o: o, p: p, focus: focus}

			return m.run(ctx)
		},
	}
}

type menu struct {
	a     *app
	o     *IO
	p     prompter
	focus bool
}

func (m *menu) run(ctx context.Context) error {
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}

		w, v, err := m.a.view(ctx)
		if err != nil {
			return err
		}

		now := m.a.now()
		steps := nextSteps(v, now, m.focus, true)

		m.o.Println()

		if len(steps) == 0 {
			m.o.Println("Nothing to do right now.")
		}

		for i, s := range steps {
			m.o.Printf("%2d. %s\n", i+1, formatStepLine(s.Item))

			if s.Err != nil {
				m.o.ErrPrintln("warning:", s.Err)
			}

			if chain := s.Chain(); len(chain) > 0 {
				m.o.Printf("      serves %s\n", chain[0].Summary)
			}
		}

		m.o.Printf("\nfocus time: %s\n", onOff(m.focus))
		m.o.Println("[#] work on a step  [c] capture  [f] toggle focus time  [q] quit")

		choice, err := m.p.Prompt("> ")
		if isCancel(err) {
			return nil
		}

		if err != nil {
			return err
		}

		switch choice {
		case "", "q":
			return nil
		case "f":
			m.focus = !m.focus

			continue
		case "c":
			err = m.capture(ctx, w)
		default:
			var n int

			n, err = pickNumber(choice, len(steps))
			if err == nil {
				err = m.step(ctx, w, v, steps[n])
			}
		}

		if err == nil {
			continue
		}

		if ctx.Err() != nil {
			return err
		}

		if isCancel(err) {
			m.o.Println("cancelled")

			continue
		}

		m.o.ErrPrintln("error:", err)
	}
}

// ask prompts for a value. Empty input and "q" cancel.
func (m *menu) ask(label string) (string, error) {
	s, err := m.p.Prompt(label)
	if err != nil {
		return "", err
	}

	if s == "" || s == "q" {
		return "", errPromptCancelled
	}

	return s, nil
}

// askDefault prompts for a value. Empty input selects def; "q" cancels.
func (m *menu) askDefault(label, def string) (string, error) {
	s, err := m.p.Prompt(fmt.Sprintf("%s [%s]> ", label, def))
	if err != nil {
		return "", err
	}

	switch s {
	case "q":
		return "", errPromptCancelled
	case "":
		return def, nil
	default:
		return s, nil
	}
}

func (m *menu) askYesNo(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	s, err := m.p.Prompt(fmt.Sprintf("%s [%s]> ", label, hint))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "q":
		return false, errPromptCancelled
	default:
		return false, fmt.Errorf("%w: %q", errInvalidSelection, s)
	}
}

func (m *menu) capture(ctx context.Context, w *datalayer.Worker) error {
	kindName, err := m.askDefault("kind (todo|hope|motivation|question)", string(item.KindToDo))
	if err != nil {
		return err
	}

	kind, err := item.ParseKind(kindName)
	if err != nil {
		return err
	}

	summary, err := m.ask("summary> ")
	if err != nil {
		return err
	}

	rec, err := w.CreateItem(ctx, kind, summary)
	if err != nil {
		return err
	}

	m.o.Println("captured", item.ShortID(rec.ID))

	return nil
}

func (m *menu) step(ctx context.Context, w *datalayer.Worker, v *item.View, s item.NextStep) error {
	it := s.Item

	m.o.Println()
	m.o.Println(label(it))

	for _, goal := range s.Chain() {
		m.o.Println("  serves", label(goal))
	}

	m.o.Println()
	m.o.Println("1. I finished")
	m.o.Println("2. Something else should be done first")
	m.o.Println("3. This serves a larger goal")
	m.o.Println("4. Snooze")
	m.o.Println("5. Set staging")
	m.o.Println("6. Set requirements")
	m.o.Println("7. Rename")

	choice, err := m.ask("> ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		err = w.FinishItem(ctx, it.ID, m.a.now())
		if err == nil {
			m.o.Println("finished", label(it))
		}

		return err
	case "2":
		return m.somethingFirst(ctx, w, v, it)
	case "3":
		return m.servesGoal(ctx, w, v, it)
	case "4":
		return m.snooze(ctx, w, it)
	case "5":
		return m.stage(ctx, w, it)
	case "6":
		return m.require(ctx, w, it)
	case "7":
		summary, askErr := m.ask("new summary> ")
		if askErr != nil {
			return askErr
		}

		return w.UpdateSummary(ctx, it.ID, summary)
	default:
		return fmt.Errorf("%w: %q", errInvalidSelection, choice)
	}
}

func (m *menu) somethingFirst(ctx context.Context, w *datalayer.Worker, v *item.View, it *item.Item) error {
	m.o.Println("1. A new to-do")
	m.o.Println("2. An existing item")

	choice, err := m.ask("> ")
	if err != nil {
		return err
	}

	var (
		blockerID string
		created   bool
	)

	switch choice {
	case "1":
		summary, askErr := m.ask("summary> ")
		if askErr != nil {
			return askErr
		}

		rec, createErr := w.CreateItem(ctx, item.KindToDo, summary)
		if createErr != nil {
			return createErr
		}

		blockerID, created = rec.ID, true
	case "2":
		ref, askErr := m.ask("id> ")
		if askErr != nil {
			return askErr
		}

		blocker, resolveErr := v.Registry().Resolve(ref)
		if resolveErr != nil {
			return resolveErr
		}

		blockerID = blocker.ID
	default:
		return fmt.Errorf("%w: %q", errInvalidSelection, choice)
	}

	_, err = w.CoverItem(ctx, blockerID, it.ID)
	if err != nil && created {
		return fmt.Errorf("captured %s, but %s does not wait on it: %w", item.ShortID(blockerID), it.ShortID(), err)
	}

	if err != nil {
		return err
	}

	m.o.Printf("%s now waits on %s\n", it.ShortID(), item.ShortID(blockerID))

	return nil
}

func (m *menu) servesGoal(ctx context.Context, w *datalayer.Worker, v *item.View, it *item.Item) error {
	var goals []*item.Item

	for _, g := range v.Registry().Items() {
		if g.ID != it.ID && !g.IsFinished() && (g.Is(item.KindMotivation) || g.Is(item.KindHope)) {
			goals = append(goals, g)
		}
	}

	for i, g := range goals {
		m.o.Printf("%2d. %s  (%s)\n", i+1, g.Summary, g.Kind)
	}

	m.o.Println(" n. A new motivation")
	m.o.Println("    or enter an item id")

	choice, err := m.ask("> ")
	if err != nil {
		return err
	}

	var (
		goalID  string
		created bool
	)

	switch {
	case choice == "n":
		summary, askErr := m.ask("summary> ")
		if askErr != nil {
			return askErr
		}

		rec, createErr := w.CreateItem(ctx, item.KindMotivation, summary)
		if createErr != nil {
			return createErr
		}

		goalID, created = rec.ID, true
	default:
		if n, pickErr := pickNumber(choice, len(goals)); pickErr == nil {
			goalID = goals[n].ID

			break
		}

		goal, resolveErr := v.Registry().Resolve(choice)
		if resolveErr != nil {
			return resolveErr
		}

		goalID = goal.ID
	}

	_, err = w.CoverItem(ctx, it.ID, goalID)
	if err != nil && created {
		return fmt.Errorf("captured %s, but %s does not serve it: %w", item.ShortID(goalID), it.ShortID(), err)
	}

	if err != nil {
		return err
	}

	m.o.Printf("%s serves %s\n", it.ShortID(), item.ShortID(goalID))

	return nil
}

func (m *menu) snooze(ctx context.Context, w *datalayer.Worker, it *item.Item) error {
	input, err := m.ask("for how long (e.g. 2h, 3d) or until when (2006-01-02 15:04)> ")
	if err != nil {
		return err
	}

	now := m.a.now()

	until, err := snoozeUntil(now, input, "")
	if err != nil {
		until, err = snoozeUntil(now, "", input)
		if err != nil {
			return err
		}
	}

	_, err = w.CoverUntil(ctx, it.ID, until)
	if err != nil {
		return err
	}

	m.o.Printf("snoozed %s until %s\n", it.ShortID(), until.Local().Format(time.DateTime))

	return nil
}

func (m *menu) stage(ctx context.Context, w *datalayer.Worker, it *item.Item) error {
	for i, k := range item.StagingKinds {
		m.o.Printf("%d. %s\n", i+1, k)
	}

	choice, err := m.ask("> ")
	if err != nil {
		return err
	}

	n, err := pickNumber(choice, len(item.StagingKinds))
	if err != nil {
		return err
	}

	staging := item.Staging{Kind: item.StagingKinds[n]}

	if staging.Kind.HasTiming() {
		enterIn, askErr := m.askDefault("enter the list in", "0s")
		if askErr != nil {
			return askErr
		}

		enter, parseErr := parseDuration(enterIn)
		if parseErr != nil {
			return parseErr
		}

		lapIn, askErr := m.askDefault("lap", "1d")
		if askErr != nil {
			return askErr
		}

		staging.Lap, parseErr = parseDuration(lapIn)
		if parseErr != nil {
			return parseErr
		}

		staging.EnterList = m.a.now().Add(enter)
	}

	err = w.SetStaging(ctx, it.ID, staging)
	if err != nil {
		return err
	}

	m.o.Printf("%s staged as %s\n", it.ShortID(), staging.Kind)

	return nil
}

func (m *menu) require(ctx context.Context, w *datalayer.Worker, it *item.Item) error {
	var kinds []item.RequirementKind

	for _, rk := range []item.RequirementKind{item.RequirementNotSunday, item.RequirementFocusTime} {
		yes, err := m.askYesNo(string(rk), it.HasRequirement(rk))
		if err != nil {
			return err
		}

		if yes {
			kinds = append(kinds, rk)
		}
	}

	_, err := w.SetRequirements(ctx, it.ID, kinds)
	if err != nil {
		return err
	}

	m.o.Printf("%s requires: %s\n", it.ShortID(), formatRequirementKinds(kinds))

	return nil
}

// pickNumber parses a 1-based menu choice into a 0-based index.
func pickNumber(choice string, n int) (int, error) {
	i, err := strconv.Atoi(choice)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: %q", errInvalidSelection, choice)
	}

	return i - 1, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
