package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/onpurpose/internal/cli"
)

func Test_Show_Prints_Item_With_Relationships(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	goal := c.Capture("--kind", "hope", "a tidy flat")
	step := c.Capture("clear the desk")
	first := c.Capture("buy a shelf")

	c.MustRun("parent", step, goal)
	c.MustRun("cover", step, first)
	c.MustRun("require", step, "--not-sunday")
	c.MustRun("stage", step, "intention")

	stdout := c.MustRun("show", step)

	cli.AssertContains(t, stdout, "short_id: "+step)
	cli.AssertContains(t, stdout, "kind: todo")
	cli.AssertContains(t, stdout, "summary: clear the desk")
	cli.AssertContains(t, stdout, "staging: intention")
	cli.AssertContains(t, stdout, "requirements: not-sunday")
	cli.AssertContains(t, stdout, "actionable: false")
	cli.AssertContains(t, stdout, "waiting on:\n  "+first+"  buy a shelf")
	cli.AssertContains(t, stdout, "serves:\n  "+goal+"  a tidy flat")
	cli.AssertNotContains(t, stdout, "finished:")

	stdout = c.MustRun("show", goal)
	cli.AssertContains(t, stdout, "served by:\n  "+step+"  clear the desk")
	cli.AssertNotContains(t, stdout, "actionable:")
}

func Test_Show_Marks_Finished_Items(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	goal := c.Capture("--kind", "motivation", "fitness")
	step := c.Capture("run 5k")
	c.MustRun("parent", step, goal)
	c.MustRun("finish", step)

	stdout := c.MustRun("show", step)
	cli.AssertContains(t, stdout, "finished: ")
	cli.AssertNotContains(t, stdout, "actionable:")

	stdout = c.MustRun("show", goal)
	cli.AssertContains(t, stdout, step+"  run 5k  (finished)")
}

func Test_Show_Resolves_Lowercase_Prefix(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.Capture("only item")

	stdout := c.MustRun("show", strings.ToLower(id[:6]))
	cli.AssertContains(t, stdout, "short_id: "+id)
	cli.AssertContains(t, stdout, "actionable: true")
}

func Test_Show_Warns_When_Ancestry_Has_Cycle(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	a := c.Capture("a")
	b := c.Capture("b")
	c.MustRun("parent", a, b)
	c.MustRun("parent", b, a)

	stdout, stderr, code := c.Run("show", a)
	if code != 1 {
		t.Fatalf("code=%d, want=1", code)
	}

	cli.AssertContains(t, stdout, "summary: a")
	cli.AssertContains(t, stderr, "warning: cycle in covering graph: "+a+" -> "+b+" -> "+a)
}

func Test_Show_Fails_When_Args_Wrong(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("show")
	cli.AssertContains(t, stderr, "item id is required")

	stderr = c.MustFail("show", "a", "b")
	cli.AssertContains(t, stderr, "too many arguments")
}
