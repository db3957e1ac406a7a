package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlineNumbers_Next(t *testing.T) {
	t.Run("continues an existing stack", func(t *testing.T) {
		h := headlineNumbers{stack: []int{4, 2}}
		got, err := h.next(2)
		require.NoError(t, err)
		assert.Equal(t, "4.3", got)
	})

	t.Run("sequence", func(t *testing.T) {
		var h headlineNumbers
		levels := []int{1, 2, 2, 3, 1, 2}
		want := []string{"1", "1.1", "1.2", "1.2.1", "2", "2.1"}
		for i, level := range levels {
			got, err := h.next(level)
			require.NoError(t, err)
			assert.Equal(t, want[i], got, "headline %d", i)
		}
	})

	t.Run("skipped level starts at zero", func(t *testing.T) {
		var h headlineNumbers
		got, err := h.next(3)
		require.NoError(t, err)
		assert.Equal(t, "0.0.1", got)
	})

	t.Run("invalid level", func(t *testing.T) {
		var h headlineNumbers
		_, err := h.next(0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid headline level")
	})
}
