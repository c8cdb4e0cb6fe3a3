package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededSourceKeepsOrder(t *testing.T) {
	s := NewSeededSource("Method", "Result", "Claim")

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Method", all[0].Label)
	assert.Equal(t, "Result", all[1].Label)
	assert.Equal(t, "Claim", all[2].Label)

	// palette colors assigned in order, all distinct
	assert.NotEqual(t, all[0].Color, all[1].Color)
	assert.NotEqual(t, all[1].Color, all[2].Color)
}

func TestAddAndGet(t *testing.T) {
	s := NewSource()
	ref := s.Add("Definition", "#c7dbff")

	assert.NotEmpty(t, ref.Id)
	assert.Equal(t, "#c7dbff", ref.Color)

	got, ok := s.Get(ref.Id)
	require.True(t, ok)
	assert.Equal(t, ref, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestAddWithoutColorFallsBackToPalette(t *testing.T) {
	s := NewSource()
	ref := s.Add("Result", "")
	assert.NotEmpty(t, ref.Color)
}
