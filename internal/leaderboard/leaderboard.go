// Package leaderboard keeps the top-N list of named scores and persists it as
// a single JSON blob in a key-value store.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Entry is one leaderboard line.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// KV is the persistence the board writes through.
// Get reports false when the key has never been set; deleting a missing key
// is not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Board is a sorted, size-bounded list of entries.
// A Board is safe for concurrent use; SSH sessions share one.
type Board struct {
	mu       sync.Mutex
	entries  []Entry
	kv       KV
	key      string
	maxSize  int
	logger   *log.Logger
	onChange func([]Entry)
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for load and persist warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithOnChange registers a callback invoked with a copy of the entries
// after every change.
func WithOnChange(fn func([]Entry)) Option {
	return func(b *Board) {
		b.onChange = fn
	}
}

// New creates an empty board persisted under key in kv.
// kv may be nil for a memory-only board.
func New(kv KV, key string, maxSize int, opts ...Option) *Board {
	if maxSize < 1 {
		maxSize = 1
	}
	b := &Board{
		kv:      kv,
		key:     key,
		maxSize: maxSize,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the in-memory list with the persisted one.
// Missing or unreadable data leaves the board empty; it never fails.
func (b *Board) Load() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = nil
	if b.kv == nil {
		return
	}

	raw, ok, err := b.kv.Get(b.key)
	if err != nil {
		b.logger.Warn("leaderboard unavailable", "key", b.key, "err", err)
		return
	}
	if !ok {
		return
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		b.logger.Warn("leaderboard data is corrupt, starting empty", "key", b.key, "err", err)
		return
	}

	b.entries = normalize(entries, b.maxSize)
}

// AddEntry inserts a score, keeps the list sorted by descending score and
// truncated to the maximum size, then persists the whole list.
// Ties keep insertion order. A persistence failure is returned but the
// in-memory list stays updated.
func (b *Board) AddEntry(name string, score int) error {
	b.mu.Lock()
	b.entries = normalize(append(b.entries, Entry{Name: name, Score: score}), b.maxSize)
	snapshot := slices.Clone(b.entries)
	err := b.persistLocked()
	b.mu.Unlock()

	b.notify(snapshot)
	return err
}

// Entries returns a copy of the current list, best first.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.entries)
}

// Qualifies reports whether score would make it onto the board.
func (b *Board) Qualifies(score int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) < b.maxSize {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}

// Clear empties the board and removes the persisted list.
func (b *Board) Clear() error {
	b.mu.Lock()
	b.entries = nil
	var err error
	if b.kv != nil {
		if err = b.kv.Delete(b.key); err != nil {
			err = fmt.Errorf("leaderboard: cannot clear: %w", err)
		}
	}
	b.mu.Unlock()

	b.notify(nil)
	return err
}

func (b *Board) persistLocked() error {
	if b.kv == nil {
		return nil
	}
	entries := b.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode: %w", err)
	}
	if err := b.kv.Set(b.key, string(data)); err != nil {
		b.logger.Warn("leaderboard not saved", "key", b.key, "err", err)
		return fmt.Errorf("leaderboard: cannot persist: %w", err)
	}
	return nil
}

func (b *Board) notify(entries []Entry) {
	if b.onChange != nil {
		b.onChange(entries)
	}
}

// normalize stable-sorts by descending score and truncates.
func normalize(entries []Entry, maxSize int) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(entries) > maxSize {
		entries = entries[:maxSize]
	}
	return entries
}
