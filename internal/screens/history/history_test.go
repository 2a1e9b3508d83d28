package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordbox/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	sessions  []store.SessionSummaryRecord
	reviews   []store.ReviewEventRecord
	reviewErr error
}

func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return m.sessions, nil
}

func (m *mockEventRepo) QueryReviewEvents(_ context.Context, _ store.QueryOpts) ([]store.ReviewEventRecord, error) {
	return m.reviews, m.reviewErr
}

func review(seq int64, session, word string, correct bool) store.ReviewEventRecord {
	return store.ReviewEventRecord{
		ReviewEventData: store.ReviewEventData{SessionID: session, Word: word, Correct: correct, Reason: "new"},
		Sequence:        seq,
	}
}

func testRepo() *mockEventRepo {
	return &mockEventRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Category: "it", Timestamp: time.Now(), QuestionsServed: 2, CorrectAnswers: 1, DurationSecs: 75},
			{SessionID: "s1", Category: "advanced", Timestamp: time.Now().Add(-time.Hour), QuestionsServed: 1, CorrectAnswers: 1},
		},
		// Newest first, as the store returns them.
		reviews: []store.ReviewEventRecord{
			review(3, "s2", "ram", false),
			review(2, "s2", "cpu", true),
			review(1, "s1", "ephemeral", true),
		},
	}
}

func TestLoad_GroupsReviewsInAnswerOrder(t *testing.T) {
	msg := load(context.Background(), testRepo())
	if msg.Err != nil {
		t.Fatalf("load error: %v", msg.Err)
	}
	got := msg.Reviews["s2"]
	if len(got) != 2 {
		t.Fatalf("len(s2 reviews) = %d, want 2", len(got))
	}
	if got[0].Word != "cpu" || got[1].Word != "ram" {
		t.Errorf("order = %s, %s; want cpu, ram", got[0].Word, got[1].Word)
	}
}

func TestLoad_ReviewErrorKeepsSessions(t *testing.T) {
	repo := testRepo()
	repo.reviewErr = errors.New("boom")
	msg := load(context.Background(), repo)
	if msg.Err != nil || len(msg.Sessions) != 2 {
		t.Errorf("expected sessions despite review error, got %+v", msg)
	}
}

func TestHistoryScreen_ExpandShowsCards(t *testing.T) {
	s := New(testRepo())
	s.Update(s.Init()())

	view := s.View(100, 30)
	if strings.Contains(view, "cpu") {
		t.Error("cards should be hidden before expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	if !strings.Contains(view, "cpu") || !strings.Contains(view, "ram") {
		t.Error("expected expanded session to list its cards")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(testRepo())
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 (clamped)", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a pop command on Esc")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&mockEventRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No sessions yet") {
		t.Error("expected empty state message")
	}
}
