package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

func report(id string, index int) domain.BatchReport {
	return domain.BatchReport{ID: id, Index: index, Sent: true, Applied: index}
}

func TestHistory_RecordAndGet(t *testing.T) {
	h, err := New(2)
	require.NoError(t, err)

	if _, ok := h.Get("a"); ok {
		t.Fatalf("expected miss before record")
	}

	h.Record(report("a", 1))
	got, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Applied)

	hits, misses, evictions := h.(Stats).Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Zero(t, evictions)
}

func TestHistory_DropsReportsWithoutID(t *testing.T) {
	h, err := New(2)
	require.NoError(t, err)

	h.Record(domain.BatchReport{Applied: 3})
	assert.Empty(t, h.Recent(0))
}

func TestHistory_Eviction(t *testing.T) {
	h, err := New(2)
	require.NoError(t, err)

	h.Record(report("a", 0))
	h.Record(report("b", 1))
	h.Record(report("c", 2))

	_, ok := h.Get("a")
	assert.False(t, ok, "oldest report evicted")
	_, _, evictions := h.(Stats).Stats()
	assert.Equal(t, uint64(1), evictions)
}

func TestHistory_Recent(t *testing.T) {
	h, err := New(4)
	require.NoError(t, err)

	h.Record(report("a", 0))
	h.Record(report("b", 1))
	h.Record(report("c", 2))

	ids := func(rs []domain.BatchReport) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids(h.Recent(0)))
	assert.Equal(t, []string{"c", "b"}, ids(h.Recent(2)))
	assert.Equal(t, []string{"c", "b", "a"}, ids(h.Recent(10)))

	// a read refreshes recency; Recent itself does not
	h.Get("a")
	assert.Equal(t, []string{"a", "c", "b"}, ids(h.Recent(0)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(h.Recent(0)))
}

func TestHistory_Disabled(t *testing.T) {
	for _, size := range []int{0, -1} {
		h, err := New(size)
		require.NoError(t, err)

		h.Record(report("a", 0))
		_, ok := h.Get("a")
		assert.False(t, ok)
		assert.Nil(t, h.Recent(5))

		hits, misses, evictions := h.(Stats).Stats()
		assert.Zero(t, hits+misses+evictions)
	}
}
