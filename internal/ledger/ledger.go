package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (l *implLedger) Start(ctx context.Context, podcast, episode string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Podcast:   podcast,
		Episode:   episode,
		Status:    StatusRunning,
		StartedAt: time.UnixMilli(time.Now().UnixMilli()),
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, podcast, episode, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Podcast, run.Episode, string(run.Status), run.StartedAt.UnixMilli(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Record appends a stage value. A stage and seq can be recorded once per
// run, and only while the run is in progress.
func (l *implLedger) Record(ctx context.Context, runID, stage string, seq int, content string) error {
	run, err := l.Run(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status != StatusRunning {
		return ErrRunFinished
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO stages (run_id, stage, seq, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, stage, seq, content, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert stage %s/%d: %w", stage, seq, err)
	}
	return nil
}

// Finish closes a run as succeeded, or failed when runErr is set.
func (l *implLedger) Finish(ctx context.Context, runID string, runErr error) error {
	status := StatusSucceeded
	var msg sql.NullString
	if runErr != nil {
		status = StatusFailed
		msg = sql.NullString{String: runErr.Error(), Valid: true}
	}

	res, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ? AND status = ?`,
		string(status), msg, time.Now().UnixMilli(), runID, string(StatusRunning),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		if _, err := l.Run(ctx, runID); err != nil {
			return err
		}
		return ErrRunFinished
	}
	return nil
}

const runColumns = `id, podcast, episode, status, error, started_at, finished_at`

func (l *implLedger) Run(ctx context.Context, runID string) (Run, error) {
	row := l.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return run, err
}

// Runs returns the most recent runs first.
func (l *implLedger) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (l *implLedger) Stages(ctx context.Context, runID string) ([]StageRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, stage, seq, content, created_at FROM stages WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		var (
			r       StageRecord
			created int64
		)
		if err := rows.Scan(&r.RunID, &r.Stage, &r.Seq, &r.Content, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.UnixMilli(created)
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run      Run
		status   string
		runErr   sql.NullString
		started  int64
		finished sql.NullInt64
	)
	if err := s.Scan(&run.ID, &run.Podcast, &run.Episode, &status, &runErr, &started, &finished); err != nil {
		return Run{}, err
	}
	run.Status = Status(status)
	run.Error = runErr.String
	run.StartedAt = time.UnixMilli(started)
	if finished.Valid {
		run.FinishedAt = time.UnixMilli(finished.Int64)
	}
	return run, nil
}
