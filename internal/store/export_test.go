package store

import (
	"context"
	"log/slog"
	"time"
)

// OpenWithTimeout exposes the lock timeout so contention tests stay fast.
func OpenWithTimeout(ctx context.Context, path string, timeout time.Duration) (*Store, error) {
	return openWithTimeout(ctx, path, slog.New(slog.DiscardHandler), timeout)
}

// SetNow pins the clock used for created timestamps.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}
