package session

import (
	"context"
	"testing"

	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/vocab"
)

func TestOverview(t *testing.T) {
	kv := newMemKV()
	repo := srs.NewRepo(kv, srs.DefaultNamespace)
	ctx := context.Background()

	cards := srs.NewCardStore()
	srs.RecordReview(cards, srs.CardID("it", "cpu"), true, testNow)
	srs.RecordReview(cards, srs.CardID("it", "ram"), false, testNow)
	if err := repo.Save(ctx, "it", cards); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	stats, err := Overview(ctx, vocab.Builtin(), repo, srs.Policy{}, testNow)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("len(stats) = %d, want 4", len(stats))
	}

	var it DeckStat
	for _, s := range stats {
		if s.Category.Key == "it" {
			it = s
		}
	}
	if it.Progress.Learned != 2 {
		t.Errorf("it.Learned = %d, want 2", it.Progress.Learned)
	}
	if it.Progress.Due != 1 {
		t.Errorf("it.Due = %d, want 1 (the missed card)", it.Progress.Due)
	}

	total := Totals(stats)
	if total.Learned != 2 {
		t.Errorf("Totals.Learned = %d, want 2", total.Learned)
	}
	if total.Total <= it.Progress.Total {
		t.Errorf("Totals.Total = %d, want more than one deck", total.Total)
	}
}

func TestOverview_NilRepo(t *testing.T) {
	stats, err := Overview(context.Background(), vocab.Builtin(), nil, srs.DefaultPolicy(), testNow)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if Totals(stats).Learned != 0 {
		t.Error("expected nothing learned without a repo")
	}
}
