package item_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/onpurpose/internal/item"
)

var (
	sunday    = time.Date(1983, time.April, 17, 12, 9, 14, 0, time.UTC)
	saturday  = time.Date(1983, time.April, 16, 12, 9, 14, 0, time.UTC)
	wednesday = time.Date(1983, time.April, 13, 12, 9, 14, 0, time.UTC)
)

func todo(id, summary string) item.ItemRecord {
	return item.ItemRecord{ID: id, Summary: summary, Kind: item.KindToDo}
}

func finished(rec item.ItemRecord) item.ItemRecord {
	at := time.Date(1983, time.April, 1, 0, 0, 0, 0, time.UTC)
	rec.Finished = &at

	return rec
}

func mustResolve(t *testing.T, snap item.Snapshot) *item.View {
	t.Helper()

	view, err := item.Resolve(snap)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	return view
}

func stepIDs(steps []item.NextStep) []string {
	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.Item.ID)
	}

	return ids
}

func itemIDs(items []*item.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	return ids
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    item.Kind
		wantErr bool
	}{
		{in: "todo", want: item.KindToDo},
		{in: "to-do", want: item.KindToDo},
		{in: "hope", want: item.KindHope},
		{in: "motivation", want: item.KindMotivation},
		{in: "question", want: item.KindQuestion},
		{in: "goal", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := item.ParseKind(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) succeeded, want error", tt.in)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}

			if got != tt.want {
				t.Errorf("ParseKind(%q)=%q, want=%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	const id = "01890a5d-ac96-774b-bcce-b302099a8057"

	got := item.ShortID(id)
	if len(got) != 12 {
		t.Fatalf("ShortID(%q)=%q, want 12 chars", id, got)
	}

	if again := item.ShortID(id); again != got {
		t.Errorf("ShortID not stable: %q vs %q", got, again)
	}

	if got, want := item.ShortID("42"), "42"; got != want {
		t.Errorf("ShortID(non-uuid)=%q, want=%q", got, want)
	}
}

func TestRegistryAttachesOnlyOwnRequirements(t *testing.T) {
	t.Parallel()

	reg, err := item.NewRegistry(item.Snapshot{
		Items: []item.ItemRecord{todo("1", "a"), todo("2", "b")},
		Requirements: []item.RequirementRecord{
			{ID: "r1", For: "1", Kind: item.RequirementNotSunday},
			{ID: "r2", For: "2", Kind: item.RequirementFocusTime},
			{ID: "r3", For: "1", Kind: item.RequirementFocusTime},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	one, err := reg.Lookup("1")
	if err != nil {
		t.Fatalf("Lookup(1): %v", err)
	}

	want := []item.Requirement{
		{ID: "r1", Kind: item.RequirementNotSunday},
		{ID: "r3", Kind: item.RequirementFocusTime},
	}
	if diff := cmp.Diff(want, one.Requirements); diff != "" {
		t.Errorf("requirements of 1 (-want +got):\n%s", diff)
	}

	two, _ := reg.Lookup("2")
	if !two.RequiresFocusTime() || two.HasRequirement(item.RequirementNotSunday) {
		t.Errorf("requirements of 2 = %+v", two.Requirements)
	}

	if got, want := itemIDs(reg.Items()), []string{"1", "2"}; !cmp.Equal(got, want) {
		t.Errorf("Items()=%v, want=%v", got, want)
	}
}

func TestRegistryLookupMiss(t *testing.T) {
	t.Parallel()

	reg, err := item.NewRegistry(item.Snapshot{Items: []item.ItemRecord{todo("1", "a")}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = reg.Lookup("nope")
	if !errors.Is(err, item.ErrNotFound) {
		t.Errorf("Lookup miss err=%v, want ErrNotFound", err)
	}
}

func TestRegistryResolveShortIDPrefix(t *testing.T) {
	t.Parallel()

	const (
		idA = "01890a5d-ac96-774b-bcce-b302099a8057"
		idB = "01890a5d-ac96-7c4b-8cce-b302099a8057"
	)

	reg, err := item.NewRegistry(item.Snapshot{Items: []item.ItemRecord{todo(idA, "a"), todo(idB, "b")}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	shortA := item.ShortID(idA)

	got, err := reg.Resolve(shortA)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", shortA, err)
	}

	if got.ID != idA {
		t.Errorf("Resolve(%s)=%s, want=%s", shortA, got.ID, idA)
	}

	got, err = reg.Resolve(idB)
	if err != nil || got.ID != idB {
		t.Errorf("Resolve(full id)=%v,%v", got, err)
	}

	if _, err := reg.Resolve("ZZZZZZZZZZZZZ"); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("Resolve(unknown) err=%v, want ErrNotFound", err)
	}
}

func TestRegistryResolveAmbiguous(t *testing.T) {
	t.Parallel()

	reg, err := item.NewRegistry(item.Snapshot{Items: []item.ItemRecord{todo("a1", "a"), todo("a2", "b")}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, err := reg.Resolve("a"); !errors.Is(err, item.ErrAmbiguousID) {
		t.Errorf("Resolve(a) err=%v, want ErrAmbiguousID", err)
	}
}

func TestStagingRank(t *testing.T) {
	t.Parallel()

	now := wednesday

	tests := []struct {
		name    string
		staging item.Staging
		want    int
	}{
		{name: "zero", staging: item.Staging{}, want: 3},
		{name: "resident", staging: item.Staging{Kind: item.StagingMentallyResident, EnterList: now.Add(-time.Hour)}, want: 0},
		{name: "resident later", staging: item.Staging{Kind: item.StagingMentallyResident, EnterList: now.Add(time.Hour)}, want: 3},
		{name: "on deck", staging: item.Staging{Kind: item.StagingOnDeck, EnterList: now}, want: 1},
		{name: "intention", staging: item.Staging{Kind: item.StagingIntention}, want: 2},
		{name: "released", staging: item.Staging{Kind: item.StagingReleased}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.staging.Rank(now); got != tt.want {
				t.Errorf("Rank=%d, want=%d", got, tt.want)
			}
		})
	}
}
