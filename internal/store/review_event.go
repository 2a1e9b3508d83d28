package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const reviewEventTable = "review_events"

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(reviewEventTable).
		Columns(
			"sequence", "timestamp", "session_id", "category", "word", "card_id",
			"correct", "reason", "direction", "learner_answer",
			"level_before", "level_after", "due_at", "time_ms",
		).
		Values(
			seqNum, time.Now().UnixMilli(), data.SessionID, data.Category, data.Word, data.CardID,
			data.Correct, data.Reason, data.Direction, data.LearnerAnswer,
			data.LevelBefore, data.LevelAfter, data.DueAt.UnixMilli(), data.TimeMs,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"sequence", "timestamp", "session_id", "category", "word", "card_id",
			"correct", "reason", "direction", "learner_answer",
			"level_before", "level_after", "due_at", "time_ms",
		).
		From(entsql.Table(reviewEventTable))
	query, args := applyQueryOpts(sel, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var records []ReviewEventRecord
	for rows.Next() {
		var (
			rec       ReviewEventRecord
			ts, dueAt int64
		)
		err := rows.Scan(
			&rec.Sequence, &ts, &rec.SessionID, &rec.Category, &rec.Word, &rec.CardID,
			&rec.Correct, &rec.Reason, &rec.Direction, &rec.LearnerAnswer,
			&rec.LevelBefore, &rec.LevelAfter, &dueAt, &rec.TimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.DueAt = time.UnixMilli(dueAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CardAccuracy(ctx context.Context, cardID string) (float64, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), "COALESCE(SUM(correct), 0)").
		From(entsql.Table(reviewEventTable)).
		Where(entsql.EQ("card_id", cardID)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, 0, fmt.Errorf("query card accuracy: %w", err)
	}
	defer rows.Close()

	var total, correct int
	if rows.Next() {
		if err := rows.Scan(&total, &correct); err != nil {
			return 0, 0, fmt.Errorf("scan card accuracy: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("query card accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}
