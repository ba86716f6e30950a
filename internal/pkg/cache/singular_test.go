package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularGetSet(t *testing.T) {
	c := NewSingular[[]string]("bosses")

	var got []string
	assert.ErrorIs(t, c.Get(&got), ErrNotFound)

	require.NoError(t, c.Set([]string{"Lotus", "Damien"}, time.Minute))
	require.NoError(t, c.Get(&got))
	assert.Equal(t, []string{"Lotus", "Damien"}, got)

	require.NoError(t, c.Delete())
	assert.ErrorIs(t, c.Get(&got), ErrNotFound)
}

func TestSingularMutexGetSet(t *testing.T) {
	c := NewSingular[int]("answer")

	calls := 0
	valueFunc := func() (int, error) {
		calls++
		return 42, nil
	}

	var got int
	require.NoError(t, c.MutexGetSet(&got, valueFunc, time.Minute))
	assert.Equal(t, 42, got)

	got = 0
	require.NoError(t, c.MutexGetSet(&got, valueFunc, time.Minute))
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls, "valueFunc should only run on a cold cache")
}
