// Package words provides the immutable word catalog rounds draw from.
package words

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/utils"
)

//go:embed default_words.csv
var defaultCSV []byte

var ErrEmptyCatalog = errors.New("word catalog is empty")

// Bank is a read-only word catalog. It is safe for concurrent use.
type Bank struct {
	entries    []internal.WordEntry
	categories []string
}

// Source supplies catalog entries from outside the binary, e.g. a database.
type Source interface {
	LoadWords(ctx context.Context) ([]internal.WordEntry, error)
}

// New builds a bank from entries. Blank entries and exact duplicates
// (same word in the same category, case-insensitive) are dropped.
func New(entries []internal.WordEntry) (*Bank, error) {
	seen := make(map[string]bool, len(entries))
	cats := make(map[string]bool)
	b := &Bank{entries: make([]internal.WordEntry, 0, len(entries))}

	for _, e := range entries {
		word := strings.TrimSpace(e.Word)
		category := strings.TrimSpace(e.Category)
		if word == "" || category == "" {
			continue
		}
		key := strings.ToLower(category) + "\x00" + strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		b.entries = append(b.entries, internal.WordEntry{Word: word, Category: category})
		if !cats[category] {
			cats[category] = true
			b.categories = append(b.categories, category)
		}
	}

	if len(b.entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	sort.Strings(b.categories)
	return b, nil
}

// Default returns the catalog embedded in the binary.
func Default() *Bank {
	entries, err := utils.ReadWordsCSV(bytes.NewReader(defaultCSV))
	if err != nil {
		panic(fmt.Sprintf("words: embedded catalog: %v", err))
	}
	b, err := New(entries)
	if err != nil {
		panic(fmt.Sprintf("words: embedded catalog: %v", err))
	}
	return b
}

// FromCSVFile builds a bank from a `word,category` file.
func FromCSVFile(path string) (*Bank, error) {
	entries, err := utils.ReadCsvFile(path)
	if err != nil {
		return nil, err
	}
	b, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Load builds a bank from src, falling back to the embedded catalog when the
// source holds no words.
func Load(ctx context.Context, src Source) (*Bank, error) {
	entries, err := src.LoadWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	b, err := New(entries)
	if errors.Is(err, ErrEmptyCatalog) {
		return Default(), nil
	}
	return b, err
}

// Random draws one word uniformly from the flattened catalog.
func (b *Bank) Random() (word, category string) {
	e := b.entries[rand.Intn(len(b.entries))]
	return e.Word, e.Category
}

// All returns every catalog word tagged with its category. The slice is a
// copy and may be modified by the caller.
func (b *Bank) All() []internal.WordEntry {
	out := make([]internal.WordEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Bank) Categories() []string {
	out := make([]string, len(b.categories))
	copy(out, b.categories)
	return out
}

func (b *Bank) Len() int {
	return len(b.entries)
}
