package blacklist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewStatic([]string{" BLOCK123 ", "BLOCK123", "", "bad-pass"})

	t.Run("exact match is blacklisted", func(t *testing.T) {
		ok, err := reg.IsBlacklisted(ctx, "BLOCK123")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("membership is case sensitive", func(t *testing.T) {
		ok, err := reg.IsBlacklisted(ctx, "block123")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("codes are not trimmed on lookup", func(t *testing.T) {
		ok, err := reg.IsBlacklisted(ctx, " BLOCK123")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown and empty codes are not blacklisted", func(t *testing.T) {
		for _, code := range []string{"GOOD777", ""} {
			ok, err := reg.IsBlacklisted(ctx, code)
			require.NoError(t, err)
			assert.False(t, ok, code)
		}
	})

	t.Run("list is deduplicated and sorted", func(t *testing.T) {
		codes, err := reg.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"BLOCK123", "bad-pass"}, codes)
	})
}

func TestStaticRegistryEmpty(t *testing.T) {
	reg := NewStatic(nil)
	ok, err := reg.IsBlacklisted(context.Background(), "BLOCK123")
	require.NoError(t, err)
	assert.False(t, ok)

	codes, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}
