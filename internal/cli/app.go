package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/calvinalkan/onpurpose/internal/config"
	"github.com/calvinalkan/onpurpose/internal/datalayer"
	"github.com/calvinalkan/onpurpose/internal/item"
	"github.com/calvinalkan/onpurpose/internal/store"
)

// app carries what commands share: resolved config, stdin, the logger and
// the data layer, which is opened on first use.
type app struct {
	cfg    *config.Config
	in     io.Reader
	log    *slog.Logger
	now    func() time.Time
	worker *datalayer.Worker
}

// data opens the store and starts the data layer worker on first call.
func (a *app) data(ctx context.Context) (*datalayer.Worker, error) {
	if a.worker != nil {
		return a.worker, nil
	}

	s, err := store.Open(ctx, a.cfg.DBPathAbs, a.log)
	if err != nil {
		return nil, err
	}

	a.worker = datalayer.New(s, a.cfg.MailboxSize, a.log)

	return a.worker, nil
}

// view takes a fresh snapshot and resolves it.
func (a *app) view(ctx context.Context) (*datalayer.Worker, *item.View, error) {
	w, err := a.data(ctx)
	if err != nil {
		return nil, nil, err
	}

	v, err := w.View(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load items: %w", err)
	}

	return w, v, nil
}

// lookup resolves a full id or short-id prefix against a fresh view.
func (a *app) lookup(ctx context.Context, refs ...string) (*datalayer.Worker, []*item.Item, error) {
	w, v, err := a.view(ctx)
	if err != nil {
		return nil, nil, err
	}

	items := make([]*item.Item, 0, len(refs))

	for _, ref := range refs {
		it, resolveErr := v.Registry().Resolve(ref)
		if resolveErr != nil {
			return nil, nil, resolveErr
		}

		items = append(items, it)
	}

	return w, items, nil
}

// close drains and stops the data layer if it was started.
func (a *app) close() error {
	if a.worker == nil {
		return nil
	}

	return a.worker.Close()
}

// label renders an item as "<short id>  <summary>".
func label(it *item.Item) string {
	return it.ShortID() + "  " + it.Summary
}
