package srs

import (
	"testing"
	"time"
)

func TestCardID_Lowercases(t *testing.T) {
	got := CardID("IT", "CPU")
	if got != "it::cpu" {
		t.Errorf("CardID = %q, want %q", got, "it::cpu")
	}
}

func TestCardID_DistinctCategories(t *testing.T) {
	if CardID("it", "ram") == CardID("all", "ram") {
		t.Error("expected different ids for different categories")
	}
}

func TestGetOrCreate_NewCardIsZero(t *testing.T) {
	s := NewCardStore()
	c := s.GetOrCreate("it::cpu")
	if c.Level != 0 || c.DueAt != 0 || c.Attempts != 0 || c.Correct != 0 || c.Streak != 0 {
		t.Errorf("new card = %+v, want zero state", *c)
	}
	if c.LastReviewedAt != nil {
		t.Error("expected nil LastReviewedAt on new card")
	}
	if len(s) != 1 {
		t.Errorf("store size = %d, want 1", len(s))
	}
}

func TestGetOrCreate_ReturnsExisting(t *testing.T) {
	s := NewCardStore()
	first := s.GetOrCreate("it::cpu")
	first.Level = 3
	second := s.GetOrCreate("it::cpu")
	if second != first {
		t.Error("expected the same card pointer on second lookup")
	}
	if second.Level != 3 {
		t.Errorf("Level = %d, want 3", second.Level)
	}
}

func TestLookup_DoesNotCreate(t *testing.T) {
	s := NewCardStore()
	if _, ok := s.Lookup("it::cpu"); ok {
		t.Error("expected missing card")
	}
	if len(s) != 0 {
		t.Errorf("store size = %d, want 0", len(s))
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"untouched", Card{}, false},
		{"due in past", Card{Attempts: 1, DueAt: now.Add(-time.Minute).UnixMilli()}, true},
		{"due now", Card{Attempts: 1, DueAt: now.UnixMilli()}, true},
		{"due later", Card{Attempts: 1, DueAt: now.Add(time.Minute).UnixMilli()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardValid(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"zero", Card{}, true},
		{"reviewed", Card{Level: 2, DueAt: 10, Attempts: 3, Correct: 2, Streak: 2}, true},
		{"level too high", Card{Level: 7, Attempts: 7, Correct: 7}, false},
		{"negative level", Card{Level: -1, Attempts: 1}, false},
		{"correct over attempts", Card{Level: 1, Attempts: 1, Correct: 2}, false},
		{"streak over attempts", Card{Level: 1, Attempts: 1, Correct: 1, Streak: 2}, false},
		{"untouched with level", Card{Level: 1}, false},
		{"untouched with due", Card{DueAt: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.valid(); got != tt.want {
				t.Errorf("valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
