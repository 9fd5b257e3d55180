package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/onpurpose/internal/datalayer"
	"github.com/calvinalkan/onpurpose/internal/item"
)

var errCoverFailed = errors.New("disk full")

// coverFailsBackend creates items but refuses every covering edge.
type coverFailsBackend struct {
	datalayer.Backend

	created []item.ItemRecord
}

func (b *coverFailsBackend) CreateItem(_ context.Context, kind item.Kind, summary string) (item.ItemRecord, error) {
	rec := item.ItemRecord{ID: "new-item", Kind: kind, Summary: summary, Staging: item.Staging{Kind: item.StagingNotSet}}
	b.created = append(b.created, rec)

	return rec, nil
}

func (b *coverFailsBackend) CoverItem(context.Context, string, string) (item.CoveringRecord, error) {
	return item.CoveringRecord{}, errCoverFailed
}

func newFlowMenu(t *testing.T, input string) (*menu, *datalayer.Worker, *coverFailsBackend, *item.View, *item.Item) {
	t.Helper()

	backend := &coverFailsBackend{}
	w := datalayer.New(backend, 0, nil)
	t.Cleanup(func() { _ = w.Close() })

	v, err := item.Resolve(item.Snapshot{Items: []item.ItemRecord{{
		ID:      "fence",
		Summary: "paint the fence",
		Kind:    item.KindToDo,
		Created: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		Staging: item.Staging{Kind: item.StagingNotSet},
	}}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	it, err := v.Registry().Lookup("fence")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	m := &menu{
		a: &app{now: time.Now},
		o: o,
		p: &scanPrompter{r: bufio.NewReader(strings.NewReader(input)), o: o},
	}

	return m, w, backend, v, it
}

func Test_SomethingFirst_Names_Captured_Blocker_When_Cover_Fails(t *testing.T) {
	t.Parallel()

	m, w, backend, v, it := newFlowMenu(t, "1\nbuy paint\n")

	err := m.somethingFirst(t.Context(), w, v, it)
	if !errors.Is(err, errCoverFailed) {
		t.Fatalf("err=%v, want %v", err, errCoverFailed)
	}

	if len(backend.created) != 1 {
		t.Fatalf("created=%d items, want=1", len(backend.created))
	}

	if got, want := err.Error(), "captured new-item, but fence does not wait on it: disk full"; got != want {
		t.Errorf("err=%q, want=%q", got, want)
	}
}

func Test_ServesGoal_Names_Captured_Goal_When_Cover_Fails(t *testing.T) {
	t.Parallel()

	m, w, backend, v, it := newFlowMenu(t, "n\nlive long\n")

	err := m.servesGoal(t.Context(), w, v, it)
	if !errors.Is(err, errCoverFailed) {
		t.Fatalf("err=%v, want %v", err, errCoverFailed)
	}

	if len(backend.created) != 1 || backend.created[0].Kind != item.KindMotivation {
		t.Fatalf("created=%+v, want one motivation", backend.created)
	}

	if got, want := err.Error(), "captured new-item, but fence does not serve it: disk full"; got != want {
		t.Errorf("err=%q, want=%q", got, want)
	}
}
