package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/wordbox/internal/config"
	"github.com/abhisek/wordbox/internal/srs"
	"github.com/abhisek/wordbox/internal/store"
	"github.com/abhisek/wordbox/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func testConfig() config.Config {
	return config.Config{
		Namespace:     srs.DefaultNamespace,
		DailyCount:    20,
		MasteredLevel: srs.DefaultMasteredLevel,
	}
}

func newTestEnv(t *testing.T, decksDir string) (*appEnv, *bytes.Buffer) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	env := newEnv(testConfig(), st, decksDir)
	var stderr bytes.Buffer
	env.stderr = &stderr
	t.Cleanup(func() { env.Close() })
	return env, &stderr
}

func TestCategory_CaseInsensitive(t *testing.T) {
	env, _ := newTestEnv(t, "")
	cat, err := env.category(context.Background(), "IT")
	require.NoError(t, err)
	assert.Equal(t, "it", cat.Key)

	_, err = env.category(context.Background(), "nope")
	assert.ErrorIs(t, err, vocab.ErrUnknownCategory)
}

func TestPrintCategories(t *testing.T) {
	env, _ := newTestEnv(t, "")
	var out bytes.Buffer
	require.NoError(t, printCategories(context.Background(), &out, env))
	assert.Contains(t, out.String(), "communication")
	assert.Contains(t, out.String(), "Advanced")
}

func TestApplyReview_SavesCardAndLogsEvent(t *testing.T) {
	env, stderr := newTestEnv(t, "")
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, applyReview(ctx, &out, env, "it", "CPU", true, testNow))
	assert.Contains(t, out.String(), "cpu: correct, level 0 -> 1")
	assert.Empty(t, stderr.String())

	cards := env.repo.Load(ctx, "it")
	c, ok := cards.Lookup(srs.CardID("it", "cpu"))
	require.True(t, ok)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 1, c.Attempts)
	assert.Equal(t, testNow.Add(10*time.Minute).UnixMilli(), c.DueAt)

	records, err := env.store.EventRepo().QueryReviewEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cpu", records[0].Word)
	assert.Equal(t, manualReason, records[0].Reason)
	assert.Equal(t, 1, records[0].LevelAfter)
}

func TestApplyReview_UnknownWord(t *testing.T) {
	env, _ := newTestEnv(t, "")
	err := applyReview(context.Background(), &bytes.Buffer{}, env, "it", "banana", true, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banana")
}

func TestPrintNext_NewThenDue(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, printNext(ctx, &out, env, "it", testNow, zeroRand{}))
	assert.Contains(t, out.String(), "cpu  [new]")

	// A miss at level 0 is due immediately.
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "ram", false, testNow))
	out.Reset()
	require.NoError(t, printNext(ctx, &out, env, "it", testNow, zeroRand{}))
	assert.Contains(t, out.String(), "ram  [due]")
	assert.Contains(t, out.String(), "level 0, 0/1 correct")
}

func TestPrintNext_AccuracyAcrossReset(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()

	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "cpu", true, testNow))
	require.NoError(t, resetDeck(ctx, &bytes.Buffer{}, env, "it"))
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "cpu", false, testNow))

	var out bytes.Buffer
	require.NoError(t, printNext(ctx, &out, env, "it", testNow, zeroRand{}))
	assert.Contains(t, out.String(), "cpu  [due]")
	assert.Contains(t, out.String(), "all-time 50% over 2 answers")
}

func TestPrintStats(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "cpu", true, testNow))

	var out bytes.Buffer
	require.NoError(t, printOverview(ctx, &out, env, testNow))
	assert.Contains(t, out.String(), "Total")
	assert.Contains(t, out.String(), "IT")

	out.Reset()
	require.NoError(t, printDeckStats(ctx, &out, env, "it", testNow))
	assert.Contains(t, out.String(), "Learned:   1")
	assert.Contains(t, out.String(), "L1     1")
}

func TestReset(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "cpu", true, testNow))
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "all", "hello", true, testNow))

	require.NoError(t, resetDeck(ctx, &bytes.Buffer{}, env, "it"))
	assert.Empty(t, env.repo.Load(ctx, "it"))
	assert.NotEmpty(t, env.repo.Load(ctx, "all"))

	var out bytes.Buffer
	require.NoError(t, resetAll(ctx, &out, env))
	assert.Contains(t, out.String(), "Reset all.")
	assert.Empty(t, env.repo.Load(ctx, "all"))
}

func TestPrintReviews_Empty(t *testing.T) {
	env, _ := newTestEnv(t, "")
	var out bytes.Buffer
	require.NoError(t, printReviews(context.Background(), &out, env.store.EventRepo(), store.QueryOpts{}))
	assert.Equal(t, "No reviews found.\n", out.String())
}

func TestImportDeck(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Travel.csv")
	require.NoError(t, os.WriteFile(src, []byte("word,meaning\nticket,vé\nluggage,hành lý\n"), 0o644))
	decks := filepath.Join(t.TempDir(), "decks")

	var out bytes.Buffer
	require.NoError(t, importDeck(context.Background(), &out, src, decks, ""))
	assert.Contains(t, out.String(), "2 words")
	assert.FileExists(t, filepath.Join(decks, "travel.csv"))

	env, _ := newTestEnv(t, decks)
	words, err := env.provider.Words(context.Background(), "travel")
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestImportDeck_CheckOnly(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	err := importDeck(context.Background(), &bytes.Buffer{}, src, "", "")
	assert.ErrorIs(t, err, vocab.ErrUnsupportedFormat)
}

func TestImportDeck_RejectsBadNames(t *testing.T) {
	src := filepath.Join(t.TempDir(), "travel.csv")
	require.NoError(t, os.WriteFile(src, []byte("ticket,vé\n"), 0o644))
	root := t.TempDir()
	decks := filepath.Join(root, "decks")

	for _, name := range []string{"   ", "../evil", "sub/deck", `sub\deck`, ".hidden", "..", "Favorites"} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := importDeck(context.Background(), &out, src, decks, name)
			require.Error(t, err)
			assert.NotContains(t, out.String(), "Imported")
		})
	}
	assert.NoDirExists(t, decks)
	assert.NoFileExists(t, filepath.Join(root, "evil.csv"))
}

func TestResetAll_KeepsOtherNamespaces(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()
	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "it", "cpu", true, testNow))

	other := srs.NewRepo(env.store.KVRepo(), "VOCABSRS")
	cards := srs.NewCardStore()
	srs.RecordReview(cards, srs.CardID("it", "cpu"), true, testNow)
	require.NoError(t, other.Save(ctx, "it", cards))
	_, err := env.favs.Add(ctx, "cpu")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, resetAll(ctx, &out, env))
	assert.Contains(t, out.String(), "Reset 1 deck(s).")
	assert.Empty(t, env.repo.Load(ctx, "it"))
	assert.NotEmpty(t, other.Load(ctx, "it"))

	favs, err := env.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu"}, favs)
}

func TestFavorites_AddListRemove(t *testing.T) {
	env, stderr := newTestEnv(t, "")
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, favAdd(ctx, &out, env, []string{" CPU ", "hello", "zzz"}))
	assert.Contains(t, out.String(), "★ cpu")
	assert.Contains(t, stderr.String(), `"zzz" is not in any deck`)

	out.Reset()
	require.NoError(t, favList(ctx, &out, env))
	assert.Contains(t, out.String(), "bộ xử lý trung tâm")
	assert.Contains(t, out.String(), "(not in any deck)")

	words, err := env.provider.Words(ctx, "favorites")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "cpu", words[0].Word)
	assert.Equal(t, "hello", words[1].Word)

	out.Reset()
	require.NoError(t, favRemove(ctx, &out, env, []string{"cpu", "cpu"}))
	assert.Contains(t, out.String(), "removed cpu")
	assert.Contains(t, out.String(), "cpu is not a favorite")

	require.NoError(t, env.favs.Clear(ctx))
	out.Reset()
	require.NoError(t, favList(ctx, &out, env))
	assert.Equal(t, "No favorites yet.\n", out.String())
}

func TestFavoritesDeck_Reviewable(t *testing.T) {
	env, _ := newTestEnv(t, "")
	ctx := context.Background()
	require.NoError(t, favAdd(ctx, &bytes.Buffer{}, env, []string{"ram"}))

	var out bytes.Buffer
	require.NoError(t, printNext(ctx, &out, env, "favorites", testNow, zeroRand{}))
	assert.Contains(t, out.String(), "ram  [new]")

	require.NoError(t, applyReview(ctx, &bytes.Buffer{}, env, "favorites", "ram", true, testNow))
	assert.NotEmpty(t, env.repo.Load(ctx, "favorites"))
	assert.Empty(t, env.repo.Load(ctx, "it"))
}
