package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberGenerator(t *testing.T) {
	gen, err := NewNumberGenerator("test-signing-key")
	require.NoError(t, err)

	t.Run("carries the HB prefix", func(t *testing.T) {
		number, err := gen.Generate()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(number, "HB-"), "got %v", number)
		assert.GreaterOrEqual(t, len(number), len("HB-")+8)
	})

	t.Run("stays inside the readable alphabet", func(t *testing.T) {
		number, err := gen.Generate()
		require.NoError(t, err)
		for _, r := range strings.TrimPrefix(number, "HB-") {
			assert.Contains(t, numberAlphabet, string(r), "unexpected character in %v", number)
		}
	})

	t.Run("does not repeat in a burst", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			number, err := gen.Generate()
			require.NoError(t, err)
			assert.False(t, seen[number], "duplicate number %v", number)
			seen[number] = true
		}
	})
}
