package vocab

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dirProvider serves every deck file found in a directory.
type dirProvider struct {
	dir string
}

// Dir returns a Provider reading deck files from dir. Each file
// <category>.(json|csv|xlsx) is one deck. Files are read on every call so
// edits show up without a restart.
func Dir(dir string) Provider {
	return &dirProvider{dir: dir}
}

func (p *dirProvider) files() (map[string]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read deck dir: %w", err)
	}
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isDeckFile(e.Name()) {
			continue
		}
		key := CategoryFromPath(e.Name())
		if _, dup := files[key]; dup {
			continue
		}
		files[key] = filepath.Join(p.dir, e.Name())
	}
	return files, nil
}

func (p *dirProvider) Categories(context.Context) ([]Category, error) {
	files, err := p.files()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cats := make([]Category, len(keys))
	for i, k := range keys {
		cats[i] = Category{Key: k, Label: labelFor(k)}
	}
	return cats, nil
}

func (p *dirProvider) Words(_ context.Context, category string) ([]Word, error) {
	files, err := p.files()
	if err != nil {
		return nil, err
	}
	path, ok := files[strings.ToLower(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return LoadFile(path)
}

// multiProvider combines providers.
type multiProvider struct {
	providers []Provider
}

// Merge combines providers. Categories keep the order of first appearance;
// a category present in several providers gets the words of all of them in
// provider order, with repeated words dropped.
func Merge(providers ...Provider) Provider {
	return &multiProvider{providers: providers}
}

func (m *multiProvider) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	seen := make(map[string]bool)
	for _, p := range m.providers {
		cats, err := p.Categories(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			key := strings.ToLower(c.Key)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *multiProvider) Words(ctx context.Context, category string) ([]Word, error) {
	var (
		words []Word
		found bool
	)
	for _, p := range m.providers {
		ws, err := p.Words(ctx, category)
		if errors.Is(err, ErrUnknownCategory) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		words = append(words, ws...)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return normalize(words), nil
}

// HasCategory reports whether p serves category.
func HasCategory(ctx context.Context, p Provider, category string) (bool, error) {
	cats, err := p.Categories(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cats {
		if strings.EqualFold(c.Key, category) {
			return true, nil
		}
	}
	return false, nil
}
