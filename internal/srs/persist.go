package srs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultNamespace prefixes every category key in the key/value store.
const DefaultNamespace = "vocabSrs"

// KeyValueStore is the persistence contract for card stores. Get reports a
// missing key with ok == false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Repo loads and saves per-category card stores as one JSON value each.
type Repo struct {
	kv        KeyValueStore
	namespace string
}

// NewRepo creates a Repo. An empty namespace falls back to DefaultNamespace.
func NewRepo(kv KeyValueStore, namespace string) *Repo {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Repo{kv: kv, namespace: namespace}
}

// Load reads a category's store with the default namespace.
func Load(ctx context.Context, kv KeyValueStore, category string) CardStore {
	return NewRepo(kv, DefaultNamespace).Load(ctx, category)
}

// Save writes a category's store with the default namespace.
func Save(ctx context.Context, kv KeyValueStore, category string, store CardStore) error {
	return NewRepo(kv, DefaultNamespace).Save(ctx, category, store)
}

// Key returns the storage key for a category.
func (r *Repo) Key(category string) string {
	return r.namespace + ":" + category
}

// Namespace returns the key prefix used by this repo.
func (r *Repo) Namespace() string {
	return r.namespace
}

// CategoryFromKey extracts the category from a storage key, or false if the
// key belongs to another namespace.
func (r *Repo) CategoryFromKey(key string) (string, bool) {
	prefix := r.namespace + ":"
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return key[len(prefix):], true
}

// Load returns the stored cards for category. A missing key, a read error,
// malformed JSON or a payload that fails validation all yield an empty store.
func (r *Repo) Load(ctx context.Context, category string) CardStore {
	raw, ok, err := r.kv.Get(ctx, r.Key(category))
	if err != nil || !ok || raw == "" {
		return NewCardStore()
	}
	store, err := decodeStore([]byte(raw))
	if err != nil {
		return NewCardStore()
	}
	return store
}

// Save serializes the whole store under the category key in one write.
func (r *Repo) Save(ctx context.Context, category string, store CardStore) error {
	b, err := encodeStore(store)
	if err != nil {
		return fmt.Errorf("encode card store: %w", err)
	}
	if err := r.kv.Set(ctx, r.Key(category), string(b)); err != nil {
		return fmt.Errorf("save card store %q: %w", category, err)
	}
	return nil
}

func encodeStore(store CardStore) ([]byte, error) {
	out := make(map[string]*Card, len(store))
	for id, c := range store {
		if c != nil {
			out[id] = c
		}
	}
	return json.Marshal(out)
}

// decodeStore parses and validates a persisted store.
func decodeStore(raw []byte) (CardStore, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := storeSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var store CardStore
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	for id, c := range store {
		if c == nil || !c.valid() {
			return nil, fmt.Errorf("card %q violates invariants", id)
		}
	}
	return store, nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

const storeSchemaURL = "schema://card-store.json"

// storeSchema compiles the card store schema once.
func storeSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		count := map[string]any{"type": "integer", "minimum": 0}
		def := map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"level", "dueAt", "attempts", "correct", "streak"},
				"properties": map[string]any{
					"level":          map[string]any{"type": "integer", "minimum": 0, "maximum": MaxLevel},
					"dueAt":          count,
					"attempts":       count,
					"correct":        count,
					"streak":         count,
					"lastReviewedAt": map[string]any{"type": []any{"integer", "null"}},
				},
			},
		}

		// The compiler wants plain decoded JSON values.
		b, err := json.Marshal(def)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(storeSchemaURL, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(storeSchemaURL)
	})
	return schemaCompiled, schemaErr
}
