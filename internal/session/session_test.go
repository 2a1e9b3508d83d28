package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// seqRand returns its values in order, cycling.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type memKV struct {
	data   map[string]string
	setErr error
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type fakeEvents struct {
	store.EventRepo
	reviews  []store.ReviewEventData
	sessions []store.SessionEventData
}

func (f *fakeEvents) AppendReviewEvent(_ context.Context, d store.ReviewEventData) error {
	f.reviews = append(f.reviews, d)
	return nil
}

func (f *fakeEvents) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	f.sessions = append(f.sessions, d)
	return nil
}

func testWords() []vocab.Word {
	return []vocab.Word{
		{Word: "cpu", Meaning: "bộ xử lý"},
		{Word: "ram", Meaning: "bộ nhớ"},
		{Word: "network", Meaning: "mạng"},
	}
}

func testState(t *testing.T, kv *memKV, events *fakeEvents, rnd srs.RandomSource) *SessionState {
	t.Helper()
	opts := Options{
		SessionID:  "test-session-id",
		Category:   "it",
		Words:      testWords(),
		Repo:       srs.NewRepo(kv, srs.DefaultNamespace),
		Rand:       rnd,
		DailyCount: 5,
		Now:        testNow,
	}
	if events != nil {
		opts.Events = events
	}
	return NewSessionState(context.Background(), opts)
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		answer, expected string
		want             bool
	}{
		{"cpu", "cpu", true},
		{"  CPU ", "cpu", true},
		{"Bộ Xử Lý", "bộ xử lý", true},
		{"bo\u0323\u0302 nhớ", "bộ nhớ", true},
		{"bo nho", "bộ nhớ", false},
		{"cp", "cpu", false},
		{"", "cpu", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.answer, tt.expected); got != tt.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}

func TestNewSessionState_Defaults(t *testing.T) {
	state := NewSessionState(context.Background(), Options{Category: "it", Words: testWords()})

	if state.DailyCount != DefaultDailyCount {
		t.Errorf("DailyCount = %d, want %d", state.DailyCount, DefaultDailyCount)
	}
	if state.Policy.MasteredLevel != srs.DefaultMasteredLevel {
		t.Errorf("MasteredLevel = %d, want %d", state.Policy.MasteredLevel, srs.DefaultMasteredLevel)
	}
	if state.Rand == nil {
		t.Error("expected a default random source")
	}
	if len(state.Cards) != 0 {
		t.Errorf("len(Cards) = %d, want 0", len(state.Cards))
	}
}

func TestNextQuestion_NewWordAndDirection(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{1, 1}})

	q, ok := NextQuestion(state, testNow)
	if !ok {
		t.Fatal("expected a question")
	}
	if q.Word.Word != "ram" {
		t.Errorf("Word = %q, want %q", q.Word.Word, "ram")
	}
	if q.Reason != srs.ReasonNew {
		t.Errorf("Reason = %q, want %q", q.Reason, srs.ReasonNew)
	}
	if q.Direction != DirectionMeaningToWord {
		t.Errorf("Direction = %q, want %q", q.Direction, DirectionMeaningToWord)
	}
	if q.Prompt() != "bộ nhớ" || q.Expected() != "ram" {
		t.Errorf("Prompt/Expected = %q/%q, want %q/%q", q.Prompt(), q.Expected(), "bộ nhớ", "ram")
	}
	if state.CurrentQuestion != q {
		t.Error("CurrentQuestion not set")
	}
}

func TestNextQuestion_EmptyDeck(t *testing.T) {
	state := NewSessionState(context.Background(), Options{Category: "it", Rand: &seqRand{vals: []int{0}}})
	if _, ok := NextQuestion(state, testNow); ok {
		t.Error("expected no question for an empty deck")
	}
}

func TestHandleAnswer_Correct(t *testing.T) {
	kv := newMemKV()
	events := &fakeEvents{}
	state := testState(t, kv, events, &seqRand{vals: []int{0, 0}})

	q, _ := NextQuestion(state, testNow)
	answeredAt := testNow.Add(3 * time.Second)
	res, err := HandleAnswer(context.Background(), state, " "+q.Expected()+" ", answeredAt)
	if err != nil {
		t.Fatalf("HandleAnswer error: %v", err)
	}

	if !res.Correct {
		t.Error("expected correct answer")
	}
	if res.LevelBefore != 0 || res.Card.Level != 1 {
		t.Errorf("level %d -> %d, want 0 -> 1", res.LevelBefore, res.Card.Level)
	}
	if want := answeredAt.Add(10 * time.Minute); !res.Card.DueTime().Equal(want) {
		t.Errorf("DueTime = %v, want %v", res.Card.DueTime(), want)
	}
	if state.TotalQuestions != 1 || state.TotalCorrect != 1 {
		t.Errorf("totals = %d/%d, want 1/1", state.TotalCorrect, state.TotalQuestions)
	}
	if state.ByReason[srs.ReasonNew] != 1 {
		t.Errorf("ByReason[new] = %d, want 1", state.ByReason[srs.ReasonNew])
	}
	if !state.ShowingFeedback || state.Phase != PhaseFeedback {
		t.Error("expected feedback phase")
	}

	if _, ok := kv.data["vocabSrs:it"]; !ok {
		t.Error("card store was not saved")
	}
	if len(events.reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(events.reviews))
	}
	ev := events.reviews[0]
	if ev.CardID != "it::cpu" || !ev.Correct || ev.LevelAfter != 1 || ev.TimeMs != 3000 {
		t.Errorf("unexpected review event %+v", ev)
	}
	if ev.SessionID != "test-session-id" {
		t.Errorf("SessionID = %q, want %q", ev.SessionID, "test-session-id")
	}
}

func TestHandleAnswer_WrongRecordsMiss(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0, 0}})

	NextQuestion(state, testNow)
	res, err := HandleAnswer(context.Background(), state, "nope", testNow)
	if err != nil {
		t.Fatalf("HandleAnswer error: %v", err)
	}
	if res.Correct {
		t.Error("expected wrong answer")
	}
	if res.Expected != "bộ xử lý" {
		t.Errorf("Expected = %q, want %q", res.Expected, "bộ xử lý")
	}
	if res.Card.Level != 0 || res.Card.Streak != 0 || res.Card.Attempts != 1 {
		t.Errorf("card = %+v, want level 0, streak 0, attempts 1", res.Card)
	}
	if len(state.Missed) != 1 || state.Missed[0].Word != "cpu" {
		t.Errorf("Missed = %v, want [cpu]", state.Missed)
	}
}

func TestHandleAnswer_NoQuestion(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0}})
	if _, err := HandleAnswer(context.Background(), state, "cpu", testNow); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("err = %v, want ErrNoQuestion", err)
	}
}

func TestHandleAnswer_SaveErrorKeepsReview(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("disk full")
	state := testState(t, kv, nil, &seqRand{vals: []int{0, 0}})

	NextQuestion(state, testNow)
	res, err := HandleAnswer(context.Background(), state, "bộ xử lý", testNow)
	if err == nil {
		t.Fatal("expected save error")
	}
	if res == nil || !res.Correct {
		t.Fatal("expected a result despite the save error")
	}
	if c, ok := state.Cards.Lookup("it::cpu"); !ok || c.Level != 1 {
		t.Error("review not applied in memory")
	}
}

func TestSession_DailyCountEndsSession(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0}})
	state.DailyCount = 2

	for i := 0; i < 2; i++ {
		if _, ok := NextQuestion(state, testNow); !ok {
			t.Fatalf("question %d: expected a question", i)
		}
		if _, err := HandleAnswer(context.Background(), state, "x", testNow); err != nil {
			t.Fatalf("HandleAnswer error: %v", err)
		}
	}
	if !ShouldEnd(state) {
		t.Error("expected ShouldEnd after daily count")
	}
	if _, ok := NextQuestion(state, testNow); ok {
		t.Error("expected no question after daily count")
	}
}

func TestSession_WrongCardComesBackDue(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0}})

	NextQuestion(state, testNow)
	HandleAnswer(context.Background(), state, "wrong", testNow)

	// A missed level-0 card is due immediately and wins over new words.
	q, ok := NextQuestion(state, testNow)
	if !ok {
		t.Fatal("expected a question")
	}
	if q.Word.Word != "cpu" || q.Reason != srs.ReasonDue {
		t.Errorf("got %q (%s), want cpu (due)", q.Word.Word, q.Reason)
	}
}

func TestSession_ProgressSurvivesReload(t *testing.T) {
	kv := newMemKV()
	state := testState(t, kv, nil, &seqRand{vals: []int{0}})
	NextQuestion(state, testNow)
	HandleAnswer(context.Background(), state, "bộ xử lý", testNow)

	reloaded := testState(t, kv, nil, &seqRand{vals: []int{0}})
	c, ok := reloaded.Cards.Lookup("it::cpu")
	if !ok {
		t.Fatal("card not found after reload")
	}
	if c.Level != 1 || c.Correct != 1 {
		t.Errorf("reloaded card = %+v, want level 1, correct 1", c)
	}
}

func TestRecordStartAndEnd(t *testing.T) {
	events := &fakeEvents{}
	state := testState(t, newMemKV(), events, &seqRand{vals: []int{0}})

	if err := RecordStart(context.Background(), state); err != nil {
		t.Fatalf("RecordStart error: %v", err)
	}
	NextQuestion(state, testNow)
	HandleAnswer(context.Background(), state, "bộ xử lý", testNow)
	if err := RecordEnd(context.Background(), state, testNow.Add(90*time.Second)); err != nil {
		t.Fatalf("RecordEnd error: %v", err)
	}

	if len(events.sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(events.sessions))
	}
	end := events.sessions[1]
	if end.Action != "end" || end.QuestionsServed != 1 || end.CorrectAnswers != 1 || end.DurationSecs != 90 {
		t.Errorf("unexpected end event %+v", end)
	}
	if state.Phase != PhaseEnding {
		t.Errorf("Phase = %v, want PhaseEnding", state.Phase)
	}
}

func TestBuildSummary(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0}})

	NextQuestion(state, testNow)
	HandleAnswer(context.Background(), state, "bộ xử lý", testNow)
	NextQuestion(state, testNow)
	HandleAnswer(context.Background(), state, "wrong", testNow)

	summary := BuildSummary(state, testNow)

	if summary.TotalQuestions != 2 || summary.TotalCorrect != 1 {
		t.Errorf("totals = %d/%d, want 1/2", summary.TotalCorrect, summary.TotalQuestions)
	}
	if summary.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", summary.Accuracy)
	}
	if summary.Progress.Total != 3 || summary.Progress.Learned != 2 {
		t.Errorf("Progress = %+v, want total 3, learned 2", summary.Progress)
	}
	if summary.Progress.Due != 1 {
		t.Errorf("Progress.Due = %d, want 1", summary.Progress.Due)
	}
	if len(summary.Missed) != 1 {
		t.Errorf("len(Missed) = %d, want 1", len(summary.Missed))
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	state := testState(t, newMemKV(), nil, &seqRand{vals: []int{0}})
	summary := BuildSummary(state, testNow)
	if summary.Accuracy != 0 || summary.TotalQuestions != 0 {
		t.Errorf("summary = %+v, want zero counters", summary)
	}
}
