package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
)

// DefaultDailyCount is the number of questions served per session.
const DefaultDailyCount = 20

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseLoading  SessionPhase = iota // Loading cards and words
	PhaseActive                       // Waiting for an answer
	PhaseFeedback                     // Showing answer feedback
	PhaseEnding                       // Daily count reached, deck exhausted or quit confirmed
	PhaseSummary                      // Showing summary screen
)

// Direction is the way a flashcard is asked.
type Direction string

const (
	// DirectionWordToMeaning shows the word and expects its meaning.
	DirectionWordToMeaning Direction = "word-meaning"
	// DirectionMeaningToWord shows the meaning and expects the word.
	DirectionMeaningToWord Direction = "meaning-word"
)

// Question is one flashcard being asked.
type Question struct {
	Word      vocab.Word
	Index     int // position in the deck
	Reason    srs.Reason
	Direction Direction
}

// Prompt returns the text shown to the learner.
func (q *Question) Prompt() string {
	if q.Direction == DirectionMeaningToWord {
		return q.Word.Meaning
	}
	return q.Word.Word
}

// Expected returns the answer the learner must type.
func (q *Question) Expected() string {
	if q.Direction == DirectionMeaningToWord {
		return q.Word.Word
	}
	return q.Word.Meaning
}

// AnswerResult is the outcome of one answered question.
type AnswerResult struct {
	Correct       bool
	LearnerAnswer string
	Expected      string
	LevelBefore   int
	Card          srs.Card // state after the review
}

// Options configures a new session.
type Options struct {
	SessionID  string
	Category   string
	Words      []vocab.Word
	Repo       *srs.Repo      // nil keeps progress in memory only
	Events     store.EventRepo // nil disables the review log
	Policy     srs.Policy
	Rand       srs.RandomSource
	DailyCount int
	Now        time.Time
}

// SessionState tracks the runtime state of an active session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Category is the deck being studied.
	Category string

	// Words is the deck in tie-break order.
	Words []vocab.Word

	// Cards is the category's card store, loaded at start and saved after
	// every answer.
	Cards srs.CardStore

	Repo      *srs.Repo
	EventRepo store.EventRepo
	Policy    srs.Policy
	Rand      srs.RandomSource

	// DailyCount caps the questions served in this session.
	DailyCount int

	// CurrentQuestion is the active question (nil between questions).
	CurrentQuestion *Question

	// LastResult is the most recent answer outcome, shown as feedback.
	LastResult *AnswerResult

	TotalQuestions int
	TotalCorrect   int

	// ByReason counts served questions per selection tier.
	ByReason map[srs.Reason]int

	// Missed lists words answered wrong, in order, without repeats.
	Missed []vocab.Word

	StartTime         time.Time
	Elapsed           time.Duration
	QuestionStartTime time.Time

	Phase              SessionPhase
	ShowingFeedback    bool
	ShowingQuitConfirm bool
}

// NewSessionState loads the category's cards and returns a session ready to
// serve its first question.
func NewSessionState(ctx context.Context, opts Options) *SessionState {
	cards := srs.NewCardStore()
	if opts.Repo != nil {
		cards = opts.Repo.Load(ctx, opts.Category)
	}
	if opts.DailyCount <= 0 {
		opts.DailyCount = DefaultDailyCount
	}
	if opts.Policy.Intervals == nil {
		opts.Policy = srs.DefaultPolicy()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(opts.Now.UnixNano()), 0))
	}

	return &SessionState{
		SessionID:  opts.SessionID,
		Category:   opts.Category,
		Words:      opts.Words,
		Cards:      cards,
		Repo:       opts.Repo,
		EventRepo:  opts.Events,
		Policy:     opts.Policy,
		Rand:       opts.Rand,
		DailyCount: opts.DailyCount,
		ByReason:   make(map[srs.Reason]int),
		StartTime:  opts.Now,
		Phase:      PhaseActive,
	}
}
