/*
Package finder finds every dictionary word that can be spelled with some
subset of a set of input letters.

The input is lowercased and its runes sorted into a canonical key. The key is
then explored recursively: the words whose sorted letters equal the key are
matched against the dictionary group of the same length, and every key obtained
by deleting one rune is explored in turn. Deleting one rune from a sorted key
keeps it sorted, so every sub-key is canonical without sorting again.

Many deletion paths lead to the same sub-multiset: "acst" reaches "at" through
both "ast" and "act". Each Finder memoizes the union of words found under
every key it has explored, so each distinct sub-multiset is evaluated once per
Finder no matter how many paths reach it.

	loader := dictionary.NewLoader(dictionary.FileSource{Path: "words.txt"}, 3)
	f := finder.New(loader)
	res, err := f.FindAllWords("tacs")
	// res[4] = [cast cats scat], res[3] = [act cat sac ...]
*/
package finder

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordfind/internal/utils"
	"github.com/bastiangx/wordfind/pkg/dictionary"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultMaxInputLength caps input length. The cache holds up to 2^n keys for
// an input of n distinct letters, so 16 keeps a cold query near 65k keys.
const DefaultMaxInputLength = 16

// ErrInputTooLong is returned when an input exceeds the Finder's length cap.
var ErrInputTooLong = errors.New("input too long")

// Result maps a word length to the sorted words of that length.
type Result map[int][]string

// Lengths returns the word lengths present, longest first.
func (r Result) Lengths() []int {
	lengths := maps.Keys(r)
	slices.Sort(lengths)
	slices.Reverse(lengths)
	return lengths
}

// Count returns the total number of words.
func (r Result) Count() int {
	n := 0
	for _, words := range r {
		n += len(words)
	}
	return n
}

// Canonicalize lowercases s and sorts its runes.
func Canonicalize(s string) string {
	return utils.SortRunes(strings.ToLower(s))
}

// Finder runs subset searches against a lazily loaded dictionary.
// It is safe for concurrent use.
type Finder struct {
	loader   *dictionary.Loader
	cache    *Cache
	maxInput int
	mu       sync.Mutex
}

// Option configures a Finder.
type Option func(*Finder)

// WithMaxInputLength sets the longest accepted input in runes. Zero disables the cap.
func WithMaxInputLength(n int) Option {
	return func(f *Finder) {
		f.maxInput = n
	}
}

// WithCache makes the Finder use c instead of a fresh Cache.
// c must not be shared with another Finder.
func WithCache(c *Cache) Option {
	return func(f *Finder) {
		f.cache = c
	}
}

// New creates a Finder backed by loader.
func New(loader *dictionary.Loader, opts ...Option) *Finder {
	f := &Finder{
		loader:   loader,
		cache:    NewCache(),
		maxInput: DefaultMaxInputLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindAllWords returns every dictionary word that is an anagram of some
// sub-multiset of input's letters, grouped by word length.
//
// Matching ignores case. Empty input yields an empty Result without loading
// the dictionary. If the dictionary cannot be loaded the error wraps
// dictionary.ErrSourceUnavailable.
func (f *Finder) FindAllWords(input string) (Result, error) {
	if input == "" {
		return Result{}, nil
	}

	key := Canonicalize(input)
	if n := utf8.RuneCountInString(key); f.maxInput > 0 && n > f.maxInput {
		return nil, fmt.Errorf("%w: %d characters (max %d)", ErrInputTooLong, n, f.maxInput)
	}

	idx, err := f.loader.Load()
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	words := f.explore(idx, key)
	f.mu.Unlock()

	log.Debugf("Found %d words for key %q", len(words), key)
	return groupByLength(words), nil
}

// explore returns the words reachable from key. Callers must hold f.mu.
// Recursion depth is bounded by the rune length of key.
func (f *Finder) explore(idx *dictionary.Index, key string) []string {
	if words, ok := f.cache.get(key); ok {
		return words
	}

	runes := []rune(key)
	found := make(map[string]struct{})
	for _, entry := range idx.Group(len(runes)) {
		if entry.Canonical == key {
			found[entry.Word] = struct{}{}
		}
	}

	for i := range runes {
		// equal neighbours yield the same sub-key
		if i > 0 && runes[i] == runes[i-1] {
			continue
		}
		for _, word := range f.explore(idx, utils.RemoveRuneAt(runes, i)) {
			found[word] = struct{}{}
		}
	}

	words := maps.Keys(found)
	f.cache.put(key, words)
	return words
}

func groupByLength(words []string) Result {
	result := make(Result)
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		result[n] = append(result[n], word)
	}
	for _, group := range result {
		slices.Sort(group)
	}
	return result
}

// Loader returns the dictionary loader backing f.
func (f *Finder) Loader() *dictionary.Loader {
	return f.loader
}

// MaxInputLength returns the input cap in runes, zero if disabled.
func (f *Finder) MaxInputLength() int {
	return f.maxInput
}

// Stats returns cache counters and, once loaded, index counters.
func (f *Finder) Stats() map[string]int {
	f.mu.Lock()
	stats := f.cache.Stats()
	f.mu.Unlock()

	stats["dictLoaded"] = 0
	if f.loader.Loaded() {
		stats["dictLoaded"] = 1
		if idx, err := f.loader.Load(); err == nil {
			for k, v := range idx.Stats() {
				stats[k] = v
			}
		}
	}
	return stats
}
