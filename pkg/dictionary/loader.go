/*
Package dictionary loads word lists and indexes them by word length.

A Loader owns the one-time build of an Index from a Source. The first call to
Load reads the source, normalizes every line and groups the surviving words by
their rune length. Later calls return the same Index without touching the
source again.

Each line of a source is trimmed, reduced to its first whitespace-delimited
token and lowercased. Tokens that start or end with a hyphen, or that are
shorter than the configured minimum length, are dropped:

	Apple pie     -> apple
	-ism          -> (dropped)
	at            -> (dropped, shorter than 3)

Every Entry carries its canonical form, the word's runes sorted in ascending
order, so that multiset comparisons never need to sort at query time.
*/
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordfind/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MinWordLength is the default shortest word kept in an Index.
const MinWordLength = 3

// ErrSourceUnavailable is returned when a dictionary source cannot be opened or read.
var ErrSourceUnavailable = errors.New("dictionary source unavailable")

// Entry is a single dictionary word.
type Entry struct {
	Word      string
	Canonical string
	Length    int
}

// NewEntry builds an Entry for an already normalized word.
func NewEntry(word string) Entry {
	return Entry{
		Word:      word,
		Canonical: utils.SortRunes(word),
		Length:    utf8.RuneCountInString(word),
	}
}

// Source yields the raw lines of a word list.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// ReadLines calls yield once per line, in order.
	ReadLines(yield func(line string)) error
}

// FileSource reads a plain-text word list, one entry per line.
type FileSource struct {
	Path         string
	ShowProgress bool
}

// Name returns the file path.
func (fs FileSource) Name() string {
	return fs.Path
}

// ReadLines streams the file line by line.
func (fs FileSource) ReadLines(yield func(line string)) error {
	file, err := os.Open(fs.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()

	var reader io.Reader = file
	var bar *progressbar.ProgressBar
	if fs.ShowProgress {
		if info, err := file.Stat(); err == nil {
			bar = progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("loading "+fs.Path),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
			reader = io.TeeReader(file, bar)
		}
	}

	if err := scanLines(reader, yield); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrSourceUnavailable, fs.Path, err)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// ReaderSource adapts any io.Reader into a Source.
type ReaderSource struct {
	Label  string
	Reader io.Reader
}

// Name returns the label given to the reader.
func (rs ReaderSource) Name() string {
	if rs.Label == "" {
		return "reader"
	}
	return rs.Label
}

// ReadLines streams the reader line by line.
func (rs ReaderSource) ReadLines(yield func(line string)) error {
	if rs.Reader == nil {
		return fmt.Errorf("%w: %s has no reader", ErrSourceUnavailable, rs.Name())
	}
	if err := scanLines(rs.Reader, yield); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrSourceUnavailable, rs.Name(), err)
	}
	return nil
}

func scanLines(r io.Reader, yield func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		yield(scanner.Text())
	}
	return scanner.Err()
}

// NormalizeLine reduces a raw source line to a dictionary word.
// It returns false if the line holds no usable word.
func NormalizeLine(line string, minLen int) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.ToLower(fields[0])
	if strings.HasPrefix(word, "-") || strings.HasSuffix(word, "-") {
		return "", false
	}
	if utf8.RuneCountInString(word) < minLen {
		return "", false
	}
	return word, true
}

// Index groups dictionary entries by their length in runes.
// It is immutable once returned by a Loader.
type Index struct {
	groups  map[int][]Entry
	words   *patricia.Trie
	total   int
	skipped int
	minLen  int
}

func newIndex(minLen int) *Index {
	return &Index{
		groups: make(map[int][]Entry),
		words:  patricia.NewTrie(),
		minLen: minLen,
	}
}

// add inserts a normalized word, ignoring repeats.
func (idx *Index) add(word string) {
	if idx.Contains(word) {
		return
	}
	idx.words.Insert(patricia.Prefix(word), struct{}{})
	entry := NewEntry(word)
	idx.groups[entry.Length] = append(idx.groups[entry.Length], entry)
	idx.total++
}

// Group returns the entries of exactly n runes in first-seen order.
// The slice is shared with the index and must not be modified.
func (idx *Index) Group(n int) []Entry {
	return idx.groups[n]
}

// Lengths returns every word length present, ascending.
func (idx *Index) Lengths() []int {
	lengths := maps.Keys(idx.groups)
	slices.Sort(lengths)
	return lengths
}

// Len returns the number of distinct words.
func (idx *Index) Len() int {
	return idx.total
}

// MinLength returns the shortest word length the index accepted.
func (idx *Index) MinLength() int {
	return idx.minLen
}

// Contains reports whether word is in the index. The word is compared as is.
func (idx *Index) Contains(word string) bool {
	return idx.words.Match(patricia.Prefix(word))
}

// Words returns all words grouped by ascending length, each group in first-seen order.
func (idx *Index) Words() []string {
	words := make([]string, 0, idx.total)
	for _, n := range idx.Lengths() {
		for _, e := range idx.groups[n] {
			words = append(words, e.Word)
		}
	}
	return words
}

// Stats returns basic counters about the index.
func (idx *Index) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":   idx.total,
		"skippedLines": idx.skipped,
		"groups":       len(idx.groups),
		"minWordLen":   idx.minLen,
	}
	if lengths := idx.Lengths(); len(lengths) > 0 {
		stats["maxWordLen"] = lengths[len(lengths)-1]
	}
	return stats
}

// Loader builds an Index from a Source at most once.
// A failed build leaves the Loader empty so a later Load can try again.
type Loader struct {
	source Source
	minLen int
	index  *Index
	reads  int
	mu     sync.Mutex
}

// NewLoader creates a Loader. A minLen below 1 falls back to MinWordLength.
func NewLoader(source Source, minLen int) *Loader {
	if minLen < 1 {
		minLen = MinWordLength
	}
	return &Loader{
		source: source,
		minLen: minLen,
	}
}

// Load returns the Index, building it from the source on first use.
func (l *Loader) Load() (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index != nil {
		return l.index, nil
	}
	if l.source == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrSourceUnavailable)
	}

	l.reads++
	log.Debugf("Loading dictionary from %s (min length %d)", l.source.Name(), l.minLen)

	idx := newIndex(l.minLen)
	err := l.source.ReadLines(func(line string) {
		word, ok := NormalizeLine(line, l.minLen)
		if !ok {
			if strings.TrimSpace(line) != "" {
				idx.skipped++
			}
			return
		}
		idx.add(word)
	})
	if err != nil {
		log.Errorf("Failed to load dictionary %s: %v", l.source.Name(), err)
		return nil, err
	}

	log.Debugf("Dictionary loaded: %d words in %d length groups, %d lines skipped",
		idx.total, len(idx.groups), idx.skipped)
	l.index = idx
	return idx, nil
}

// Loaded reports whether the Index has been built.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index != nil
}

// Reads returns how many times the source has been read.
func (l *Loader) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}

// Source returns the configured source.
func (l *Loader) Source() Source {
	return l.source
}
