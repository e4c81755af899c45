package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
)

func TestMemoryNonces_FirstWriteWins(t *testing.T) {
	reg := NewMemoryNonces()
	ctx := context.Background()

	_, ok, err := reg.Get(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, ok)

	first := domain.Receipt{ID: "1", Via: domain.ViaRemote}
	require.NoError(t, reg.Put(ctx, "n1", first))

	// Segunda gravação não sobrescreve.
	require.NoError(t, reg.Put(ctx, "n1", domain.Receipt{ID: "2", Via: domain.ViaFallback}))

	got, ok, err := reg.Get(ctx, "n1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)
}
