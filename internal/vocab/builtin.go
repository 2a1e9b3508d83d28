package vocab

import (
	"context"
	"fmt"
	"strings"
)

var builtinCategories = []Category{
	{Key: "all", Label: "All"},
	{Key: "advanced", Label: "Advanced"},
	{Key: "communication", Label: "Communication"},
	{Key: "it", Label: "IT"},
}

var builtinDecks = map[string][]Word{
	"all": {
		{Word: "hello", Meaning: "xin chào", Phonetic: "/həˈləʊ/"},
		{Word: "world", Meaning: "thế giới", Phonetic: "/wɜːld/"},
		{Word: "computer", Meaning: "máy tính", Phonetic: "/kəmˈpjuːtər/"},
		{Word: "book", Meaning: "quyển sách", Phonetic: "/bʊk/"},
		{Word: "water", Meaning: "nước", Phonetic: "/ˈwɔːtər/"},
		{Word: "friend", Meaning: "bạn bè", Phonetic: "/frend/"},
	},
	"advanced": {
		{Word: "ubiquitous", Meaning: "phổ biến khắp nơi", Phonetic: "/juːˈbɪkwɪtəs/"},
		{Word: "meticulous", Meaning: "tỉ mỉ", Phonetic: "/məˈtɪkjələs/"},
		{Word: "ephemeral", Meaning: "phù du", Phonetic: "/ɪˈfemərəl/"},
		{Word: "pragmatic", Meaning: "thực dụng", Phonetic: "/præɡˈmætɪk/"},
		{Word: "resilient", Meaning: "kiên cường", Phonetic: "/rɪˈzɪliənt/"},
	},
	"communication": {
		{Word: "negotiate", Meaning: "đàm phán", Phonetic: "/nɪˈɡəʊʃieɪt/"},
		{Word: "clarify", Meaning: "làm rõ", Phonetic: "/ˈklærəfaɪ/"},
		{Word: "feedback", Meaning: "phản hồi", Phonetic: "/ˈfiːdbæk/"},
		{Word: "persuade", Meaning: "thuyết phục", Phonetic: "/pəˈsweɪd/"},
		{Word: "apologize", Meaning: "xin lỗi", Phonetic: "/əˈpɒlədʒaɪz/"},
	},
	"it": {
		{Word: "cpu", Meaning: "bộ xử lý trung tâm", Phonetic: "/ˌsiː piː ˈjuː/"},
		{Word: "ram", Meaning: "bộ nhớ truy cập ngẫu nhiên", Phonetic: "/ræm/"},
		{Word: "database", Meaning: "cơ sở dữ liệu", Phonetic: "/ˈdeɪtəbeɪs/"},
		{Word: "network", Meaning: "mạng", Phonetic: "/ˈnetwɜːk/"},
		{Word: "compiler", Meaning: "trình biên dịch", Phonetic: "/kəmˈpaɪlər/"},
		{Word: "bandwidth", Meaning: "băng thông", Phonetic: "/ˈbændwɪdθ/"},
	},
}

type builtinProvider struct{}

// Builtin returns the decks shipped with the binary.
func Builtin() Provider {
	return builtinProvider{}
}

func (builtinProvider) Categories(context.Context) ([]Category, error) {
	out := make([]Category, len(builtinCategories))
	copy(out, builtinCategories)
	return out, nil
}

func (builtinProvider) Words(_ context.Context, category string) ([]Word, error) {
	words, ok := builtinDecks[strings.ToLower(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]Word, len(words))
	copy(out, words)
	return out, nil
}
