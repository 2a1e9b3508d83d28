package vocab

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/xuri/excelize/v2"
)

// Supported deck file extensions.
var deckExtensions = []string{".json", ".csv", ".xlsx"}

// LoadFile reads a deck file. The format is chosen by extension:
//
//   - .json: {"words": [{"word": ..., "meaning": ..., "phonetic": ..., "audio": ...}]}
//   - .csv:  columns word, meaning, phonetic, audio; a header row is skipped
//   - .xlsx: first sheet, same columns as CSV
//
// Words are trimmed; rows without a word or meaning and repeated words are
// dropped.
func LoadFile(path string) ([]Word, error) {
	var (
		words []Word
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		words, err = loadJSON(path)
	case ".csv":
		words, err = loadCSV(path)
	case ".xlsx":
		words, err = loadXLSX(path)
	default:
		return nil, &DeckError{File: path, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, err
	}
	return normalize(words), nil
}

// CategoryFromPath returns the deck key for a file: its base name without
// extension, lowercased.
func CategoryFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func isDeckFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range deckExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

type jsonDeck struct {
	Words []Word `json:"words"`
}

func loadJSON(path string) ([]Word, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DeckError{File: path, Err: err}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DeckError{File: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	sch, err := deckSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &DeckError{File: path, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var deck jsonDeck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, &DeckError{File: path, Err: err}
	}
	return deck.Words, nil
}

func loadCSV(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DeckError{File: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, &DeckError{File: path, Row: line, Err: err}
		}
		if len(rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
		}
		rows = append(rows, rec)
	}
	return wordsFromRows(path, rows)
}

// utf8BOM is written at the start of "CSV UTF-8" exports.
const utf8BOM = "\ufeff"

func loadXLSX(path string) ([]Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DeckError{File: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DeckError{File: path, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DeckError{File: path, Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}
	return wordsFromRows(path, rows)
}

// wordsFromRows maps tabular rows (word, meaning, phonetic, audio) to words.
// The first non-empty row is a header when its first cell is "word".
func wordsFromRows(path string, rows [][]string) ([]Word, error) {
	var (
		words   []Word
		seenRow bool
	)
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		first := !seenRow
		seenRow = true
		if first && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}
		if len(row) < 2 {
			return nil, &DeckError{File: path, Row: i + 1, Err: errors.New("expected at least word and meaning columns")}
		}
		w := Word{Word: row[0], Meaning: row[1]}
		if len(row) > 2 {
			w.Phonetic = row[2]
		}
		if len(row) > 3 {
			w.Audio = row[3]
		}
		words = append(words, w)
	}
	return words, nil
}

var (
	deckSchemaOnce     sync.Once
	deckSchemaCompiled *jsonschema.Schema
	deckSchemaErr      error
)

const deckSchemaURL = "schema://deck.json"

func deckSchema() (*jsonschema.Schema, error) {
	deckSchemaOnce.Do(func() {
		def := map[string]any{
			"type":     "object",
			"required": []any{"words"},
			"properties": map[string]any{
				"words": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"word", "meaning"},
						"properties": map[string]any{
							"word":     map[string]any{"type": "string", "minLength": 1},
							"meaning":  map[string]any{"type": "string"},
							"phonetic": map[string]any{"type": "string"},
							"audio":    map[string]any{"type": "string"},
						},
					},
				},
			},
		}
		b, err := json.Marshal(def)
		if err != nil {
			deckSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			deckSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(deckSchemaURL, parsed); err != nil {
			deckSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		deckSchemaCompiled, deckSchemaErr = c.Compile(deckSchemaURL)
	})
	return deckSchemaCompiled, deckSchemaErr
}
