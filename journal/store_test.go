package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "journal_entries.json"), zap.NewNop())
}

func TestAppend_AssignsUniqueIDsAndPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal_entries.json")
	s := NewStore(path, zap.NewNop())

	a, err := s.Append("first reflection", "hello", "calm", "hi there")
	require.NoError(t, err)
	b, err := s.Append("second reflection", "again", "happy", "")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "first reflection", a.Entry)
	assert.Equal(t, "hi there", a.Response)

	// Reopen from disk: both entries survive.
	reopened := NewStore(path, zap.NewNop())
	require.Equal(t, 2, reopened.Len())
	assert.Equal(t, a.ID, reopened.Entries()[0].ID)
}

func TestMerge_IsIdempotentAndFirstWriterWins(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	mine, err := s.Append("my entry", "input", "sad", "")
	require.NoError(t, err)

	incoming := []Entry{
		{ID: mine.ID, Timestamp: mine.Timestamp, Entry: "OVERWRITTEN", UserInput: "x", Mood: "sad"},
		{ID: "other-1", Timestamp: "2026-01-02T00:00:00Z", Entry: "theirs", UserInput: "y", Mood: "happy"},
	}

	added := s.Merge(incoming)
	assert.Equal(t, 1, added)
	require.Equal(t, 2, s.Len())

	// Second merge of the same sequence adds nothing.
	assert.Equal(t, 0, s.Merge(incoming))
	assert.Equal(t, 2, s.Len())

	// The pre-existing id kept its original content.
	for _, e := range s.Entries() {
		if e.ID == mine.ID {
			assert.Equal(t, "my entry", e.Entry)
		}
	}
}

func TestMerge_ConvergesBothStores(t *testing.T) {
	t.Parallel()

	a := newTestStore(t)
	b := newTestStore(t)

	_, err := a.Append("from a", "ia", "calm", "")
	require.NoError(t, err)
	_, err = b.Append("from b1", "ib1", "sad", "")
	require.NoError(t, err)
	_, err = b.Append("from b2", "ib2", "happy", "")
	require.NoError(t, err)

	a.Merge(b.Entries())
	b.Merge(a.Entries())

	ids := func(s *Store) map[string]bool {
		out := map[string]bool{}
		for _, e := range s.Entries() {
			out[e.ID] = true
		}
		return out
	}
	assert.Equal(t, ids(a), ids(b))
	assert.Len(t, ids(a), 3)
}

func TestSync_ConvergesAllReplicas(t *testing.T) {
	t.Parallel()

	a := newTestStore(t)
	b := newTestStore(t)
	_, err := a.Append("alpha", "", "calm", "")
	require.NoError(t, err)
	_, err = b.Append("beta", "", "calm", "")
	require.NoError(t, err)

	Sync(a, b)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
	// Sync again: no growth.
	Sync(a, b)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestMostRecent_MaxTimestampWins(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Merge([]Entry{
		{ID: "1", Timestamp: "2026-03-01T10:00:00Z", Entry: "old"},
		{ID: "2", Timestamp: "2026-03-03T10:00:00Z", Entry: "newest"},
		{ID: "3", Timestamp: "2026-03-02T10:00:00Z", Entry: "middle"},
	})

	assert.Equal(t, "newest", s.MostRecent())
}

func TestMostRecent_EmptyStore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", newTestStore(t).MostRecent())
}

func TestRecent_LastNInInsertionOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Merge([]Entry{
		{ID: "1", Timestamp: "t1", Entry: "a"},
		{ID: "2", Timestamp: "t2", Entry: "b"},
		{ID: "3", Timestamp: "t3", Entry: "c"},
	})

	got := s.Recent(2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Entry)
	assert.Equal(t, "c", got[1].Entry)

	assert.Len(t, s.Recent(10), 3)
	assert.Empty(t, s.Recent(0))
}

func TestHistory_TimestampDescendingWithPagination(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Merge([]Entry{
		{ID: "1", Timestamp: "2026-03-01T10:00:00Z", Entry: "oldest"},
		{ID: "2", Timestamp: "2026-03-03T10:00:00Z", Entry: "newest"},
		{ID: "3", Timestamp: "2026-03-02T10:00:00Z", Entry: "middle"},
	})

	all := s.History(0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Entry)
	assert.Equal(t, "oldest", all[2].Entry)

	page := s.History(1, 1)
	require.Len(t, page, 1)
	assert.Equal(t, "middle", page[0].Entry)

	assert.Empty(t, s.History(5, 10))
}

func TestNewStore_CorruptFileBackedUpAndReset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal_entries.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := NewStore(path, zap.NewNop())
	assert.Equal(t, 0, s.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	backedUp := false
	for _, e := range entries {
		if strings.Contains(e.Name(), ".backup.") {
			backedUp = true
		}
	}
	assert.True(t, backedUp, "corrupt file should be backed up")

	// Store is usable after the reset.
	_, err = s.Append("fresh start", "", "calm", "")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestAppend_ConcurrentWritersKeepDistinctIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Append("concurrent entry", "input", "calm", "")
			if err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	entries := s.Entries()
	require.Len(t, entries, writers)
	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestPersistedFileIsValidJSONArray(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal_entries.json")
	s := NewStore(path, zap.NewNop())
	_, err := s.Append("entry", "input", "calm", "resp")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "id")
	assert.Contains(t, raw[0], "timestamp")
	assert.Contains(t, raw[0], "entry")
	assert.Contains(t, raw[0], "user_input")
	assert.Contains(t, raw[0], "mood")
}
