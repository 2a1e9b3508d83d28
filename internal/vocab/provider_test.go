package vocab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Categories(t *testing.T) {
	cats, err := Builtin().Categories(context.Background())
	require.NoError(t, err)

	keys := make([]string, len(cats))
	for i, c := range cats {
		keys[i] = c.Key
	}
	assert.Equal(t, []string{"all", "advanced", "communication", "it"}, keys)
}

func TestBuiltin_WordsAreCopies(t *testing.T) {
	ctx := context.Background()
	words, err := Builtin().Words(ctx, "it")
	require.NoError(t, err)
	require.NotEmpty(t, words)
	words[0].Word = "mutated"

	again, err := Builtin().Words(ctx, "IT")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Word)
}

func TestBuiltin_UnknownCategory(t *testing.T) {
	_, err := Builtin().Words(context.Background(), "cooking")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDir_CategoriesAndWords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "it.csv", "cpu,bộ xử lý\n")
	writeFile(t, dir, "travel.json", `{"words": [{"word": "ticket", "meaning": "vé"}]}`)
	writeFile(t, dir, "notes.txt", "ignored")

	p := Dir(dir)
	ctx := context.Background()

	cats, err := p.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Key: "it", Label: "IT"}, {Key: "travel", Label: "Travel"}}, cats)

	words, err := p.Words(ctx, "travel")
	require.NoError(t, err)
	assert.Equal(t, []Word{{Word: "ticket", Meaning: "vé"}}, words)

	_, err = p.Words(ctx, "notes")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDir_Missing(t *testing.T) {
	_, err := Dir("/nonexistent/wordbox/decks").Categories(context.Background())
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "it.csv", "CPU,duplicate\nkernel,nhân hệ điều hành\n")
	writeFile(t, dir, "travel.csv", "ticket,vé\n")

	p := Merge(Builtin(), Dir(dir))
	ctx := context.Background()

	cats, err := p.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "travel", cats[4].Key)

	words, err := p.Words(ctx, "it")
	require.NoError(t, err)
	builtinIT, _ := Builtin().Words(ctx, "it")
	require.Len(t, words, len(builtinIT)+1)
	assert.Equal(t, "cpu", words[0].Word)
	assert.Equal(t, "bộ xử lý trung tâm", words[0].Meaning)
	assert.Equal(t, "kernel", words[len(words)-1].Word)

	_, err = p.Words(ctx, "cooking")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	ok, err := HasCategory(ctx, p, "TRAVEL")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWordTerm(t *testing.T) {
	assert.Equal(t, "hello", Word{Word: "hello", Meaning: "xin chào"}.Term())
}
