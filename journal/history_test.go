package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergedHistory(t *testing.T) {
	t.Parallel()

	a := newTestStore(t)
	b := newTestStore(t)

	shared := Entry{ID: "shared", Timestamp: "2026-03-01T12:00:00Z", Entry: "both"}
	a.Merge([]Entry{
		shared,
		{ID: "a-1", Timestamp: "2026-03-03T12:00:00Z", Entry: "newest"},
	})
	b.Merge([]Entry{
		shared,
		{ID: "b-1", Timestamp: "2026-03-02T12:00:00Z", Entry: "middle"},
	})

	got := MergedHistory(0, 0, a, b)
	require.Len(t, got, 3)
	assert.Equal(t, "a-1", got[0].ID)
	assert.Equal(t, "b-1", got[1].ID)
	assert.Equal(t, "shared", got[2].ID)

	// Pagination applies after the union.
	paged := MergedHistory(1, 1, a, b)
	require.Len(t, paged, 1)
	assert.Equal(t, "b-1", paged[0].ID)

	assert.Empty(t, MergedHistory(5, 10, a, b))
}

func TestTimestampOrdering_SubSecondPrecisionIsChronological(t *testing.T) {
	t.Parallel()

	// ".12Z" sorts before ".1Z" as a string but is the later instant; ordering
	// must follow the parsed time, not the text.
	s := newTestStore(t)
	s.Merge([]Entry{
		{ID: "early", Timestamp: "2026-03-01T10:00:00.1Z", Entry: "early"},
		{ID: "late", Timestamp: "2026-03-01T10:00:00.12Z", Entry: "late"},
	})

	assert.Equal(t, "late", s.MostRecent())

	got := s.History(0, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "late", got[0].ID)
	assert.Equal(t, "early", got[1].ID)

	other := newTestStore(t)
	merged := MergedHistory(0, 0, s, other)
	require.Len(t, merged, 2)
	assert.Equal(t, "late", merged[0].ID)
}

func TestAppend_TimestampIsFixedWidth(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	e, err := s.Append("entry", "input", "calm", "")
	require.NoError(t, err)

	parsed, err := time.Parse(timestampFormat, e.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, e.Timestamp, parsed.UTC().Format(timestampFormat))
}
