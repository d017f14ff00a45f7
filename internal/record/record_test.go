package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_Independent(t *testing.T) {
	orig := Record{"id": "r1", "nested": map[string]any{"k": "v"}}
	cp := orig.Clone()

	cp["id"] = "r2"
	cp["nested"].(map[string]any)["k"] = "changed"

	assert.Equal(t, "r1", orig.ID())
	assert.Equal(t, "v", orig["nested"].(map[string]any)["k"])
}

func TestClone_NormalizesNumbers(t *testing.T) {
	orig := Record{"balance": 50000}
	cp := orig.Clone()

	_, isFloat := cp["balance"].(float64)
	assert.True(t, isFloat, "numbers should normalize to float64 after clone")
}

func TestMerge_ShallowPatch(t *testing.T) {
	base := Record{"id": "r1", "status": "pending", "city": "Dakar"}
	out := base.Merge(Record{"status": "validated"})

	assert.Equal(t, "validated", out["status"])
	assert.Equal(t, "Dakar", out["city"], "unspecified fields stay untouched")
	assert.Equal(t, "pending", base["status"], "merge must not modify the receiver")
}

func TestCompare_Numbers(t *testing.T) {
	require.Equal(t, -1, Compare(float64(1), float64(2)))
	require.Equal(t, 1, Compare(float64(9), float64(2)))
	require.Equal(t, 0, Compare(float64(3), 3)) // int vs float64 of same value
}

func TestCompare_Strings(t *testing.T) {
	require.Equal(t, -1, Compare("Dakar", "Thies"))
	require.Equal(t, 0, Compare("Dakar", "Dakar"))
}

func TestCompare_MixedTypesByRank(t *testing.T) {
	// nil < bool < number < string
	require.Equal(t, -1, Compare(nil, false))
	require.Equal(t, -1, Compare(true, float64(0)))
	require.Equal(t, -1, Compare(float64(99), "a"))
}

func TestEqual_NumericRepresentations(t *testing.T) {
	assert.True(t, Equal(50000, float64(50000)))
	assert.False(t, Equal(50000, float64(50001)))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("a", float64(1)))
}

func TestEqual_CompositeValues(t *testing.T) {
	assert.True(t, Equal(
		map[string]any{"role": "client"},
		map[string]any{"role": "client"},
	))
	assert.False(t, Equal(
		map[string]any{"role": "client"},
		map[string]any{"role": "moderator"},
	))
	assert.True(t, Equal([]any{"a", "b"}, []any{"a", "b"}))
	assert.False(t, Equal([]any{"a"}, "a"))
	assert.False(t, Equal(map[string]any{}, nil))
}
