package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendGenerationRun(ctx context.Context, data GenerationRunData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO generation_runs (
		sequence, timestamp_ms, request_id, requested_count, max_attempts,
		attempts, success, error_kind, error_message, latency_ms
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.RequestID, data.RequestedCount, data.MaxAttempts,
		data.Attempts, boolToInt(data.Success), data.ErrorKind, data.ErrorMessage, data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("save generation run: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGenerationRuns(ctx context.Context, opts QueryOpts) ([]GenerationRunRecord, error) {
	where, args := buildWhere(opts)
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp_ms, request_id,
		requested_count, max_attempts, attempts, success, error_kind, error_message, latency_ms
		FROM generation_runs`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation runs: %w", err)
	}
	defer rows.Close()

	var out []GenerationRunRecord
	for rows.Next() {
		var (
			rec     GenerationRunRecord
			ts      int64
			success int
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.RequestID,
			&rec.RequestedCount, &rec.MaxAttempts, &rec.Attempts, &success,
			&rec.ErrorKind, &rec.ErrorMessage, &rec.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan generation run: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}
