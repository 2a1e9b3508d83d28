package srs

import (
	"testing"
	"time"
)

type testWord string

func (w testWord) Term() string { return string(w) }

// fixedRand always returns the same index, clamped to n.
type fixedRand struct {
	n     int
	calls int
}

func (f *fixedRand) IntN(n int) int {
	f.calls++
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func reviewed(level int, due time.Time) *Card {
	return &Card{Level: level, DueAt: due.UnixMilli(), Attempts: level + 1, Correct: level}
}

func TestSelectNext_EmptyCandidates(t *testing.T) {
	sel := SelectNext[testWord]("it", nil, NewCardStore(), t0, &fixedRand{})
	if sel.Found() {
		t.Errorf("Chosen = %v, want nil", *sel.Chosen)
	}
	if sel.Reason != ReasonStale {
		t.Errorf("Reason = %q, want %q", sel.Reason, ReasonStale)
	}
}

func TestSelectNext_DuePrefersLowestLevel(t *testing.T) {
	s := CardStore{
		CardID("it", "a"): reviewed(1, t0.Add(-time.Minute)),
		CardID("it", "b"): reviewed(3, t0.Add(-time.Hour)),
	}
	sel := SelectNext("it", []testWord{"a", "b"}, s, t0, &fixedRand{})
	if !sel.Found() || *sel.Chosen != "a" {
		t.Fatalf("Chosen = %v, want a", sel.Chosen)
	}
	if sel.Reason != ReasonDue {
		t.Errorf("Reason = %q, want %q", sel.Reason, ReasonDue)
	}
}

func TestSelectNext_DueTieBrokenByOrder(t *testing.T) {
	s := CardStore{
		CardID("it", "a"): reviewed(2, t0.Add(-time.Minute)),
		CardID("it", "b"): reviewed(2, t0.Add(-time.Hour)),
	}
	sel := SelectNext("it", []testWord{"b", "a"}, s, t0, &fixedRand{})
	if *sel.Chosen != "b" {
		t.Errorf("Chosen = %v, want b", *sel.Chosen)
	}
	if sel.Index != 0 {
		t.Errorf("Index = %d, want 0", sel.Index)
	}
}

func TestSelectNext_DueBeatsNew(t *testing.T) {
	s := CardStore{CardID("it", "b"): reviewed(5, t0)}
	r := &fixedRand{}
	sel := SelectNext("it", []testWord{"a", "b"}, s, t0, r)
	if *sel.Chosen != "b" || sel.Reason != ReasonDue {
		t.Errorf("got %v/%q, want b/due", *sel.Chosen, sel.Reason)
	}
	if r.calls != 0 {
		t.Errorf("random source called %d times, want 0", r.calls)
	}
}

func TestSelectNext_NewOnlyFromUntouched(t *testing.T) {
	s := CardStore{
		CardID("it", "a"): reviewed(1, t0.Add(time.Hour)),
		CardID("it", "c"): {},
	}
	words := []testWord{"a", "b", "c"}
	for i := 0; i < 3; i++ {
		sel := SelectNext("it", words, s, t0, &fixedRand{n: i})
		if sel.Reason != ReasonNew {
			t.Fatalf("Reason = %q, want %q", sel.Reason, ReasonNew)
		}
		if *sel.Chosen == "a" {
			t.Errorf("rand %d: picked touched card a", i)
		}
	}
}

func TestSelectNext_NewUsesRandomSource(t *testing.T) {
	words := []testWord{"cpu", "ram", "ssd"}
	tests := []struct {
		n    int
		want testWord
	}{
		{0, "cpu"},
		{1, "ram"},
		{2, "ssd"},
	}
	for _, tt := range tests {
		sel := SelectNext("it", words, NewCardStore(), t0, &fixedRand{n: tt.n})
		if *sel.Chosen != tt.want {
			t.Errorf("IntN=%d: Chosen = %v, want %v", tt.n, *sel.Chosen, tt.want)
		}
	}
}

func TestSelectNext_ScenarioEmptyStore(t *testing.T) {
	s := NewCardStore()
	sel := SelectNext("it", []testWord{"cpu", "ram"}, s, t0, &fixedRand{n: 1})
	if sel.Reason != ReasonNew {
		t.Errorf("Reason = %q, want %q", sel.Reason, ReasonNew)
	}
	if *sel.Chosen != "cpu" && *sel.Chosen != "ram" {
		t.Errorf("Chosen = %v, want cpu or ram", *sel.Chosen)
	}
	if len(s) != 0 {
		t.Errorf("store size = %d, want 0 (read-only)", len(s))
	}
}

func TestSelectNext_StalePicksEarliestDue(t *testing.T) {
	s := CardStore{
		CardID("it", "a"): reviewed(3, t0.Add(3*time.Hour)),
		CardID("it", "b"): reviewed(1, t0.Add(time.Hour)),
		CardID("it", "c"): reviewed(2, t0.Add(time.Hour)),
	}
	sel := SelectNext("it", []testWord{"a", "b", "c"}, s, t0, &fixedRand{})
	if *sel.Chosen != "b" {
		t.Errorf("Chosen = %v, want b", *sel.Chosen)
	}
	if sel.Reason != ReasonStale {
		t.Errorf("Reason = %q, want %q", sel.Reason, ReasonStale)
	}
}

func TestSelectNext_CaseInsensitiveLookup(t *testing.T) {
	s := CardStore{"it::cpu": reviewed(1, t0.Add(-time.Minute))}
	sel := SelectNext("IT", []testWord{"ram", "CPU"}, s, t0, &fixedRand{})
	if *sel.Chosen != "CPU" || sel.Reason != ReasonDue {
		t.Errorf("got %v/%q, want CPU/due", *sel.Chosen, sel.Reason)
	}
}

func TestSelectNext_DoesNotMutate(t *testing.T) {
	s := CardStore{
		CardID("it", "a"): reviewed(1, t0.Add(-time.Minute)),
	}
	before := *s[CardID("it", "a")]
	SelectNext("it", []testWord{"a", "b"}, s, t0, &fixedRand{})
	if len(s) != 1 {
		t.Errorf("store size = %d, want 1", len(s))
	}
	if *s[CardID("it", "a")] != before {
		t.Error("card was modified by SelectNext")
	}
}
