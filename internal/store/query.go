package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// Snapshot reads every item, covering, time covering and requirement inside one
// read transaction. Items come back in creation order; relationship records in
// insertion order.
func (s *Store) Snapshot(ctx context.Context) (item.Snapshot, error) {
	if ctx == nil {
		return item.Snapshot{}, errors.New("snapshot: context is nil")
	}

	if s == nil || s.sql == nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: %w", ErrNotOpen)
	}

	tx, err := s.sql.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: begin: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	var snap item.Snapshot

	snap.Items, err = queryItems(ctx, tx)
	if err != nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	snap.Coverings, err = queryCoverings(ctx, tx)
	if err != nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	snap.TimeCoverings, err = queryTimeCoverings(ctx, tx)
	if err != nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	snap.Requirements, err = queryRequirements(ctx, tx)
	if err != nil {
		return item.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	return snap, nil
}

func queryItems(ctx context.Context, tx *sql.Tx) ([]item.ItemRecord, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, summary, kind, created_at, finished_at, staging, enter_list_at, lap_ns
		FROM items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var out []item.ItemRecord

	for rows.Next() {
		rec, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan item: %w", scanErr)
		}

		out = append(out, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (item.ItemRecord, error) {
	var (
		rec       item.ItemRecord
		kind      string
		staging   string
		createdNS int64
		finished  sql.NullInt64
		enterList sql.NullInt64
		lap       sql.NullInt64
	)

	err := row.Scan(&rec.ID, &rec.Summary, &kind, &createdNS, &finished, &staging, &enterList, &lap)
	if err != nil {
		return item.ItemRecord{}, err
	}

	rec.Kind = item.Kind(kind)
	rec.Created = nanosToTime(createdNS)

	if finished.Valid {
		t := nanosToTime(finished.Int64)
		rec.Finished = &t
	}

	rec.Staging = item.Staging{Kind: item.StagingKind(staging)}
	if enterList.Valid {
		rec.Staging.EnterList = nanosToTime(enterList.Int64)
	}

	if lap.Valid {
		rec.Staging.Lap = time.Duration(lap.Int64)
	}

	return rec, nil
}

func queryCoverings(ctx context.Context, tx *sql.Tx) ([]item.CoveringRecord, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, smaller, parent FROM coverings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query coverings: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var out []item.CoveringRecord

	for rows.Next() {
		var rec item.CoveringRecord

		err = rows.Scan(&rec.ID, &rec.Smaller, &rec.Parent)
		if err != nil {
			return nil, fmt.Errorf("scan covering: %w", err)
		}

		out = append(out, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate coverings: %w", err)
	}

	return out, nil
}

func queryTimeCoverings(ctx context.Context, tx *sql.Tx) ([]item.TimeCoveringRecord, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, item_id, until_ns FROM time_coverings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query time coverings: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var out []item.TimeCoveringRecord

	for rows.Next() {
		var (
			rec     item.TimeCoveringRecord
			untilNS int64
		)

		err = rows.Scan(&rec.ID, &rec.Item, &untilNS)
		if err != nil {
			return nil, fmt.Errorf("scan time covering: %w", err)
		}

		rec.Until = nanosToTime(untilNS)
		out = append(out, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate time coverings: %w", err)
	}

	return out, nil
}

func queryRequirements(ctx context.Context, tx *sql.Tx) ([]item.RequirementRecord, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, item_id, kind FROM requirements ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query requirements: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var out []item.RequirementRecord

	for rows.Next() {
		var (
			rec  item.RequirementRecord
			kind string
		)

		err = rows.Scan(&rec.ID, &rec.For, &kind)
		if err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}

		rec.Kind = item.RequirementKind(kind)
		out = append(out, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate requirements: %w", err)
	}

	return out, nil
}
