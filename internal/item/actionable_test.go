package item_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/onpurpose/internal/item"
)

func TestActionableItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		snap  item.Snapshot
		now   time.Time
		focus bool
		want  []string
	}{
		{
			name: "new to-do is a next step",
			snap: item.Snapshot{Items: []item.ItemRecord{todo("1", "New item")}},
			now:  wednesday,
			want: []string{"1"},
		},
		{
			name: "finished to-do is not shown",
			snap: item.Snapshot{Items: []item.ItemRecord{finished(todo("1", "Finished item"))}},
			now:  wednesday,
			want: []string{},
		},
		{
			name: "covered parent disappears, smaller is shown",
			snap: item.Snapshot{
				Items:     []item.ItemRecord{todo("1", "Covered"), todo("2", "Covering")},
				Coverings: []item.CoveringRecord{{ID: "c1", Smaller: "2", Parent: "1"}},
			},
			now:  wednesday,
			want: []string{"2"},
		},
		{
			name: "parent returns once the smaller item is finished",
			snap: item.Snapshot{
				Items:     []item.ItemRecord{todo("1", "Covered"), finished(todo("2", "Covering"))},
				Coverings: []item.CoveringRecord{{ID: "c1", Smaller: "2", Parent: "1"}},
			},
			now:  wednesday,
			want: []string{"1"},
		},
		{
			name: "one unfinished blocker among several still covers",
			snap: item.Snapshot{
				Items: []item.ItemRecord{todo("1", "Parent"), finished(todo("2", "done")), todo("3", "open")},
				Coverings: []item.CoveringRecord{
					{ID: "c1", Smaller: "2", Parent: "1"},
					{ID: "c2", Smaller: "3", Parent: "1"},
				},
			},
			now:  wednesday,
			want: []string{"3"},
		},
		{
			name: "all blockers finished releases the parent",
			snap: item.Snapshot{
				Items: []item.ItemRecord{todo("1", "Parent"), finished(todo("2", "a")), finished(todo("3", "b"))},
				Coverings: []item.CoveringRecord{
					{ID: "c1", Smaller: "2", Parent: "1"},
					{ID: "c2", Smaller: "3", Parent: "1"},
				},
			},
			now:  wednesday,
			want: []string{"1"},
		},
		{
			name: "one smaller item may cover several parents",
			snap: item.Snapshot{
				Items: []item.ItemRecord{todo("1", "a"), todo("2", "b"), todo("3", "blocker")},
				Coverings: []item.CoveringRecord{
					{ID: "c1", Smaller: "3", Parent: "1"},
					{ID: "c2", Smaller: "3", Parent: "2"},
				},
			},
			now:  wednesday,
			want: []string{"3"},
		},
		{
			name: "covered by a hope still hides the to-do",
			snap: item.Snapshot{
				Items: []item.ItemRecord{
					todo("1", "to-do"),
					{ID: "2", Summary: "hope", Kind: item.KindHope},
				},
				Coverings: []item.CoveringRecord{{ID: "c1", Smaller: "2", Parent: "1"}},
			},
			now:  wednesday,
			want: []string{},
		},
		{
			name: "only to-dos are next steps",
			snap: item.Snapshot{Items: []item.ItemRecord{
				{ID: "1", Summary: "hope", Kind: item.KindHope},
				{ID: "2", Summary: "motivation", Kind: item.KindMotivation},
				{ID: "3", Summary: "question", Kind: item.KindQuestion},
				todo("4", "to-do"),
			}},
			now:  wednesday,
			want: []string{"4"},
		},
		{
			name: "order follows the snapshot",
			snap: item.Snapshot{Items: []item.ItemRecord{todo("b", "b"), todo("a", "a"), todo("c", "c")}},
			now:  wednesday,
			want: []string{"b", "a", "c"},
		},
		{
			name: "not-sunday hidden on sunday",
			snap: item.Snapshot{
				Items:        []item.ItemRecord{todo("1", "Can't do this on Sunday")},
				Requirements: []item.RequirementRecord{{ID: "r1", For: "1", Kind: item.RequirementNotSunday}},
			},
			now:  sunday,
			want: []string{},
		},
		{
			name: "not-sunday shown on wednesday",
			snap: item.Snapshot{
				Items:        []item.ItemRecord{todo("1", "Can't do this on Sunday")},
				Requirements: []item.RequirementRecord{{ID: "r1", For: "1", Kind: item.RequirementNotSunday}},
			},
			now:  wednesday,
			want: []string{"1"},
		},
		{
			name: "not-sunday shown on saturday",
			snap: item.Snapshot{
				Items:        []item.ItemRecord{todo("1", "Can't do this on Sunday")},
				Requirements: []item.RequirementRecord{{ID: "r1", For: "1", Kind: item.RequirementNotSunday}},
			},
			now:  saturday,
			want: []string{"1"},
		},
		{
			name: "focus item hidden outside focus time",
			snap: item.Snapshot{
				Items:        []item.ItemRecord{todo("1", "deep work")},
				Requirements: []item.RequirementRecord{{ID: "r1", For: "1", Kind: item.RequirementFocusTime}},
			},
			now:   wednesday,
			focus: false,
			want:  []string{},
		},
		{
			name: "focus item shown during focus time",
			snap: item.Snapshot{
				Items:        []item.ItemRecord{todo("1", "deep work")},
				Requirements: []item.RequirementRecord{{ID: "r1", For: "1", Kind: item.RequirementFocusTime}},
			},
			now:   wednesday,
			focus: true,
			want:  []string{"1"},
		},
		{
			name:  "plain item hidden during focus time",
			snap:  item.Snapshot{Items: []item.ItemRecord{todo("1", "email")}},
			now:   wednesday,
			focus: true,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view := mustResolve(t, tt.snap)
			got := stepIDs(view.ActionableItems(tt.now, tt.focus))

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("actionable (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionableTimeCovering(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name  string
		until time.Time
		want  []string
	}{
		{name: "until in the future hides", until: now.Add(60 * time.Second), want: []string{}},
		{name: "until in the past shows", until: now.Add(-60 * time.Second), want: []string{"1"}},
		{name: "until exactly now shows", until: now, want: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view := mustResolve(t, item.Snapshot{
				Items:         []item.ItemRecord{todo("1", "snoozed")},
				TimeCoverings: []item.TimeCoveringRecord{{ID: "t1", Item: "1", Until: tt.until}},
			})

			got := stepIDs(view.ActionableItems(now, false))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("actionable (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionableAnyActiveTimeCoveringHides(t *testing.T) {
	t.Parallel()

	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{todo("1", "snoozed twice")},
		TimeCoverings: []item.TimeCoveringRecord{
			{ID: "t1", Item: "1", Until: wednesday.Add(-time.Hour)},
			{ID: "t2", Item: "1", Until: wednesday.Add(time.Hour)},
		},
	})

	if got := view.ActionableItems(wednesday, false); len(got) != 0 {
		t.Errorf("actionable=%v, want none", stepIDs(got))
	}

	if got := view.ActionableItems(wednesday.Add(2*time.Hour), false); len(got) != 1 {
		t.Errorf("actionable after both expire=%v, want [1]", stepIDs(got))
	}
}

func TestFinishedNeverActionable(t *testing.T) {
	t.Parallel()

	// Finished regardless of edges, time coverings or requirements.
	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{
			finished(todo("1", "done")),
			finished(todo("2", "done blocker")),
			finished(todo("3", "done focus")),
		},
		Coverings:     []item.CoveringRecord{{ID: "c1", Smaller: "2", Parent: "1"}},
		TimeCoverings: []item.TimeCoveringRecord{{ID: "t1", Item: "2", Until: wednesday.Add(-time.Hour)}},
		Requirements:  []item.RequirementRecord{{ID: "r1", For: "3", Kind: item.RequirementFocusTime}},
	})

	for _, focus := range []bool{false, true} {
		for _, now := range []time.Time{sunday, wednesday, saturday} {
			if got := view.ActionableItems(now, focus); len(got) != 0 {
				t.Errorf("focus=%v now=%s actionable=%v, want none", focus, now.Weekday(), stepIDs(got))
			}
		}
	}
}

func TestActionableItemsIdempotent(t *testing.T) {
	t.Parallel()

	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{todo("1", "goal"), todo("2", "step"), todo("3", "other"), todo("4", "more")},
		Coverings: []item.CoveringRecord{
			{ID: "c1", Smaller: "2", Parent: "1"},
		},
	})

	first := view.ActionableItems(wednesday, false)
	second := view.ActionableItems(wednesday, false)

	if diff := cmp.Diff(stepIDs(first), stepIDs(second)); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}

	for i := range first {
		if diff := cmp.Diff(itemIDs(first[i].Chain()), itemIDs(second[i].Chain())); diff != "" {
			t.Errorf("chain of %s differs:\n%s", first[i].Item.ID, diff)
		}
	}
}

func TestActionableItemCarriesAncestorChain(t *testing.T) {
	t.Parallel()

	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{
			{ID: "m", Summary: "be healthy", Kind: item.KindMotivation},
			{ID: "h", Summary: "run a marathon", Kind: item.KindHope},
			todo("t", "buy shoes"),
		},
		Coverings: []item.CoveringRecord{
			{ID: "c1", Smaller: "h", Parent: "m"},
			{ID: "c2", Smaller: "t", Parent: "h"},
		},
	})

	steps := view.ActionableItems(wednesday, false)
	if len(steps) != 1 {
		t.Fatalf("actionable=%v, want [t]", stepIDs(steps))
	}

	if steps[0].Err != nil {
		t.Fatalf("unexpected err: %v", steps[0].Err)
	}

	if diff := cmp.Diff([]string{"h", "m"}, itemIDs(steps[0].Chain())); diff != "" {
		t.Errorf("chain (-want +got):\n%s", diff)
	}
}

func TestActionableCycleDoesNotFailOtherSteps(t *testing.T) {
	t.Parallel()

	// 1 and 2 cover each other, so both stay hidden; 3 serves 1 and is actionable
	// but its ancestry loops.
	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{todo("1", "a"), todo("2", "b"), todo("3", "c"), todo("4", "free")},
		Coverings: []item.CoveringRecord{
			{ID: "c1", Smaller: "1", Parent: "2"},
			{ID: "c2", Smaller: "2", Parent: "1"},
			{ID: "c3", Smaller: "3", Parent: "1"},
		},
	})

	steps := view.ActionableItems(wednesday, false)
	if diff := cmp.Diff([]string{"3", "4"}, stepIDs(steps)); diff != "" {
		t.Fatalf("actionable (-want +got):\n%s", diff)
	}

	if !isCycle(steps[0].Err) {
		t.Errorf("step 3 err=%v, want cycle", steps[0].Err)
	}

	if steps[1].Err != nil {
		t.Errorf("step 4 err=%v, want nil", steps[1].Err)
	}
}

func TestBlockersOf(t *testing.T) {
	t.Parallel()

	view := mustResolve(t, item.Snapshot{
		Items: []item.ItemRecord{todo("1", "parent"), todo("2", "open"), finished(todo("3", "done")), todo("4", "open too")},
		Coverings: []item.CoveringRecord{
			{ID: "c1", Smaller: "2", Parent: "1"},
			{ID: "c2", Smaller: "3", Parent: "1"},
			{ID: "c3", Smaller: "4", Parent: "1"},
		},
	})

	blockers, err := view.BlockersOf("1")
	if err != nil {
		t.Fatalf("BlockersOf: %v", err)
	}

	if diff := cmp.Diff([]string{"2", "4"}, itemIDs(blockers)); diff != "" {
		t.Errorf("blockers (-want +got):\n%s", diff)
	}

	if _, err := view.BlockersOf("missing"); !isNotFound(err) {
		t.Errorf("BlockersOf(missing) err=%v, want not found", err)
	}
}
