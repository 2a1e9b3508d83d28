package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Category string    // exact category match ("" = any)
}

// KVRepo is a string key/value store. It satisfies srs.KeyValueStore.
type KVRepo interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ReviewEventData captures a single answered flashcard.
type ReviewEventData struct {
	SessionID     string
	Category      string
	Word          string
	CardID        string
	Correct       bool
	Reason        string
	Direction     string
	LearnerAnswer string
	LevelBefore   int
	LevelAfter    int
	DueAt         time.Time
	TimeMs        int
}

// ReviewEventRecord is a stored review event.
type ReviewEventRecord struct {
	ReviewEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Category        string
	Action          string // "start" or "end"
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord is a completed session read back from the log.
type SessionSummaryRecord struct {
	SessionID       string
	Category        string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendReviewEvent records one answered card.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryReviewEvents returns review events, newest first.
	QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error)

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CardAccuracy returns the share of correct answers recorded for a card
	// and the number of answers it is based on.
	CardAccuracy(ctx context.Context, cardID string) (float64, int, error)
}
