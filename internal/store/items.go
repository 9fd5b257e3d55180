package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// CreateItem inserts an unfinished item with staging not-set.
func (s *Store) CreateItem(ctx context.Context, kind item.Kind, summary string) (item.ItemRecord, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return item.ItemRecord{}, fmt.Errorf("create item: %w", ErrSummaryEmpty)
	}

	if !slices.Contains(item.Kinds, kind) {
		return item.ItemRecord{}, fmt.Errorf("create item: %w: %q", ErrInvalidKind, kind)
	}

	id, err := newID()
	if err != nil {
		return item.ItemRecord{}, fmt.Errorf("create item: %w", err)
	}

	rec := item.ItemRecord{
		ID:      id,
		Summary: summary,
		Kind:    kind,
		Created: s.now().UTC(),
		Staging: item.Staging{Kind: item.StagingNotSet},
	}

	err = s.withTx(ctx, "create item", func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx,
			"INSERT INTO items (id, summary, kind, created_at, staging) VALUES (?, ?, ?, ?, ?)",
			rec.ID, rec.Summary, string(rec.Kind), timeToNanos(rec.Created), string(rec.Staging.Kind))

		return execErr
	})
	if err != nil {
		return item.ItemRecord{}, err
	}

	s.log.Debug("item created", "id", rec.ID, "kind", rec.Kind)

	return rec, nil
}

// FinishItem stamps the item as finished at the given time. Finishing is
// one-way: an already finished item fails with [ErrAlreadyFinished].
func (s *Store) FinishItem(ctx context.Context, id string, at time.Time) error {
	return s.withTx(ctx, "finish item", func(tx *sql.Tx) error {
		var finished sql.NullInt64

		err := tx.QueryRowContext(ctx, "SELECT finished_at FROM items WHERE id = ?", id).Scan(&finished)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}

		if err != nil {
			return fmt.Errorf("read item: %w", err)
		}

		if finished.Valid {
			return fmt.Errorf("%w: %s", ErrAlreadyFinished, id)
		}

		_, err = tx.ExecContext(ctx, "UPDATE items SET finished_at = ? WHERE id = ?", timeToNanos(at), id)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		return nil
	})
}

// CoverItem records that parent is suppressed while smaller is unfinished.
func (s *Store) CoverItem(ctx context.Context, smaller, parent string) (item.CoveringRecord, error) {
	if smaller == parent {
		return item.CoveringRecord{}, fmt.Errorf("cover item: %w: %s", ErrCannotCoverSelf, smaller)
	}

	id, err := newID()
	if err != nil {
		return item.CoveringRecord{}, fmt.Errorf("cover item: %w", err)
	}

	rec := item.CoveringRecord{ID: id, Smaller: smaller, Parent: parent}

	err = s.withTx(ctx, "cover item", func(tx *sql.Tx) error {
		for _, ref := range []string{smaller, parent} {
			existsErr := requireItem(ctx, tx, ref)
			if existsErr != nil {
				return existsErr
			}
		}

		var n int

		scanErr := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM coverings WHERE smaller = ? AND parent = ?", smaller, parent).Scan(&n)
		if scanErr != nil {
			return fmt.Errorf("read coverings: %w", scanErr)
		}

		if n > 0 {
			return fmt.Errorf("%w: %s covers %s", ErrAlreadyCovered, smaller, parent)
		}

		_, execErr := tx.ExecContext(ctx,
			"INSERT INTO coverings (id, smaller, parent) VALUES (?, ?, ?)", rec.ID, rec.Smaller, rec.Parent)

		return execErr
	})
	if err != nil {
		return item.CoveringRecord{}, err
	}

	s.log.Debug("covering added", "smaller", smaller, "parent", parent)

	return rec, nil
}

// RemoveCovering deletes the edge smaller→parent.
func (s *Store) RemoveCovering(ctx context.Context, smaller, parent string) error {
	return s.withTx(ctx, "remove covering", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM coverings WHERE smaller = ? AND parent = ?", smaller, parent)
		if err != nil {
			return fmt.Errorf("delete covering: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete covering: rows affected: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("%w: %s covers %s", ErrCoveringNotFound, smaller, parent)
		}

		return nil
	})
}

// CoverUntil suppresses the item until the given time.
func (s *Store) CoverUntil(ctx context.Context, itemID string, until time.Time) (item.TimeCoveringRecord, error) {
	id, err := newID()
	if err != nil {
		return item.TimeCoveringRecord{}, fmt.Errorf("cover until: %w", err)
	}

	rec := item.TimeCoveringRecord{ID: id, Item: itemID, Until: until.UTC()}

	err = s.withTx(ctx, "cover until", func(tx *sql.Tx) error {
		existsErr := requireItem(ctx, tx, itemID)
		if existsErr != nil {
			return existsErr
		}

		_, execErr := tx.ExecContext(ctx,
			"INSERT INTO time_coverings (id, item_id, until_ns) VALUES (?, ?, ?)",
			rec.ID, rec.Item, timeToNanos(rec.Until))

		return execErr
	})
	if err != nil {
		return item.TimeCoveringRecord{}, err
	}

	return rec, nil
}

// SetRequirements replaces the item's requirements with kinds. Duplicates are
// collapsed; an empty list clears every requirement.
func (s *Store) SetRequirements(ctx context.Context, itemID string, kinds []item.RequirementKind) ([]item.RequirementRecord, error) {
	var unique []item.RequirementKind

	for _, k := range kinds {
		_, err := item.ParseRequirementKind(string(k))
		if err != nil {
			return nil, fmt.Errorf("set requirements: %w: %q", ErrInvalidRequirement, k)
		}

		if !slices.Contains(unique, k) {
			unique = append(unique, k)
		}
	}

	records := make([]item.RequirementRecord, 0, len(unique))

	for _, k := range unique {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("set requirements: %w", err)
		}

		records = append(records, item.RequirementRecord{ID: id, For: itemID, Kind: k})
	}

	err := s.withTx(ctx, "set requirements", func(tx *sql.Tx) error {
		existsErr := requireItem(ctx, tx, itemID)
		if existsErr != nil {
			return existsErr
		}

		_, execErr := tx.ExecContext(ctx, "DELETE FROM requirements WHERE item_id = ?", itemID)
		if execErr != nil {
			return fmt.Errorf("clear requirements: %w", execErr)
		}

		for _, rec := range records {
			_, execErr = tx.ExecContext(ctx,
				"INSERT INTO requirements (id, item_id, kind) VALUES (?, ?, ?)", rec.ID, rec.For, string(rec.Kind))
			if execErr != nil {
				return fmt.Errorf("insert requirement: %w", execErr)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// SetStaging replaces the item's staging. Timing is dropped for kinds that
// carry none.
func (s *Store) SetStaging(ctx context.Context, itemID string, staging item.Staging) error {
	if staging.Kind == "" {
		staging.Kind = item.StagingNotSet
	}

	_, err := item.ParseStagingKind(string(staging.Kind))
	if err != nil {
		return fmt.Errorf("set staging: %w: %q", ErrInvalidStaging, staging.Kind)
	}

	if staging.Lap < 0 {
		return fmt.Errorf("set staging: %w: negative lap %s", ErrInvalidStaging, staging.Lap)
	}

	staging = staging.Normalized()

	var enterList, lap sql.NullInt64
	if staging.Kind.HasTiming() {
		enterList = nullableNanos(&staging.EnterList)
		lap = sql.NullInt64{Int64: int64(staging.Lap), Valid: true}
	}

	return s.withTx(ctx, "set staging", func(tx *sql.Tx) error {
		return updateItem(ctx, tx, itemID,
			"UPDATE items SET staging = ?, enter_list_at = ?, lap_ns = ? WHERE id = ?",
			string(staging.Kind), enterList, lap, itemID)
	})
}

// UpdateSummary replaces the item's summary.
func (s *Store) UpdateSummary(ctx context.Context, itemID, summary string) error {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fmt.Errorf("update summary: %w", ErrSummaryEmpty)
	}

	return s.withTx(ctx, "update summary", func(tx *sql.Tx) error {
		return updateItem(ctx, tx, itemID, "UPDATE items SET summary = ? WHERE id = ?", summary, itemID)
	})
}

// updateItem runs a single-row UPDATE and maps zero affected rows to
// [ErrItemNotFound].
func updateItem(ctx context.Context, tx *sql.Tx, id, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: rows affected: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	return nil
}

func requireItem(ctx context.Context, tx *sql.Tx, id string) error {
	var one int

	err := tx.QueryRowContext(ctx, "SELECT 1 FROM items WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	if err != nil {
		return fmt.Errorf("read item %s: %w", id, err)
	}

	return nil
}
