// Package journal implements the persistent, append-only journal store. Two
// independent store instances exist at runtime (one per pipeline writer);
// Merge keeps them converged to the same id-keyed entry set.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sridhareguram/aura/fileutil"
)

const (
	persistAttempts = 3
	persistDelay    = 200 * time.Millisecond

	// timestampFormat is fixed-width (no trimmed fraction zeros) so persisted
	// timestamps are unambiguous regardless of sub-second precision.
	timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one journal record. The id is globally unique across stores and
// merges; entries are never mutated after they are appended.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Entry     string `json:"entry"`
	UserInput string `json:"user_input"`
	Mood      string `json:"mood"`
	Response  string `json:"response,omitempty"`
}

// Store is a file-backed, append-only collection of journal entries keyed by
// id. All operations are serialized by one lock; persistence is atomic
// (temp file + rename) so a partial file is never observable.
type Store struct {
	mu      sync.Mutex
	path    string
	logger  *zap.Logger
	entries []Entry
	byID    map[string]struct{}
}

// NewStore opens the journal file at path, loading any existing entries. A
// backing file that is unreadable or not a JSON array is backed up with a
// timestamp suffix and the store starts empty.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		path:   path,
		logger: logger,
		byID:   make(map[string]struct{}),
	}
	s.load()
	return s
}

func (s *Store) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("journal unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	if len(b) == 0 {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		backup, berr := fileutil.BackupCorrupt(s.path)
		if berr != nil {
			s.logger.Error("journal corrupt and backup failed", zap.String("path", s.path), zap.Error(berr))
		} else {
			s.logger.Warn("journal corrupt, backed up and reset",
				zap.String("path", s.path), zap.String("backup", backup), zap.Error(err))
		}
		return
	}

	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, ok := s.byID[e.ID]; ok {
			continue
		}
		s.entries = append(s.entries, e)
		s.byID[e.ID] = struct{}{}
	}
}

// Append assigns a fresh unique id, records the entry in memory, and persists
// the collection. The entry is returned even when persistence ultimately
// fails; the error reports the persistence failure.
func (s *Store) Append(entryText, userInput, mood, response string) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(timestampFormat),
		Entry:     entryText,
		UserInput: userInput,
		Mood:      mood,
		Response:  response,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	s.byID[e.ID] = struct{}{}

	if err := s.persistLocked(); err != nil {
		return e, fmt.Errorf("journal append %s: %w", e.ID, err)
	}
	return e, nil
}

// Merge adds every incoming entry whose id is not already present and returns
// the number added. Existing entries are never replaced (first-writer-wins),
// so merging the same sequence twice is a no-op the second time.
func (s *Store) Merge(others []Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, e := range others {
		if e.ID == "" {
			continue
		}
		if _, ok := s.byID[e.ID]; ok {
			continue
		}
		s.entries = append(s.entries, e)
		s.byID[e.ID] = struct{}{}
		added++
	}

	if added > 0 {
		if err := s.persistLocked(); err != nil {
			s.logger.Error("journal merge persist failed", zap.String("path", s.path), zap.Error(err))
		}
	}
	return added
}

// MostRecent returns the entry text of the record with the maximum timestamp.
// Among equal timestamps the earliest-inserted record wins.
func (s *Store) MostRecent() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := -1
	var bestAt time.Time
	for i, e := range s.entries {
		at := entryTime(e)
		if best == -1 || at.After(bestAt) {
			best = i
			bestAt = at
		}
	}
	if best == -1 {
		return ""
	}
	return s.entries[best].Entry
}

// entryTime parses an entry timestamp for chronological comparison. Merged
// entries may carry variable-precision fractions, so timestamps are never
// compared as strings. Malformed timestamps sort before everything else.
func entryTime(e Entry) time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Recent returns the last n entries in insertion order.
func (s *Store) Recent(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || len(s.entries) == 0 {
		return []Entry{}
	}
	start := len(s.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Entries returns a copy of the full collection in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset discards every entry and persists the empty collection. This is the
// manual corruption-recovery escape hatch, not part of normal operation.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.byID = make(map[string]struct{})
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("journal reset: %w", err)
	}
	return nil
}

func (s *Store) persistLocked() error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	var err error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		err = fileutil.WriteJSONFileAtomic(s.path, entries, true)
		if err == nil {
			return nil
		}
		if attempt < persistAttempts-1 {
			s.logger.Warn("journal persist failed, retrying",
				zap.String("path", s.path), zap.Int("attempt", attempt+1), zap.Error(err))
			time.Sleep(persistDelay)
		}
	}
	return err
}
