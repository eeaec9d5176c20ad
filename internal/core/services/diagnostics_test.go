package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

func TestDiagnosticsService_Recent(t *testing.T) {
	store := &recordingStore{}
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, domain.Diagnostic{ID: id}))
	}

	recent, err := NewDiagnosticsService(store).Recent(ctx, 2)

	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
}

func TestDiagnosticsService_DefaultLimit(t *testing.T) {
	store := &recordingStore{}
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		_ = store.Record(ctx, domain.Diagnostic{})
	}

	recent, err := NewDiagnosticsService(store).Recent(ctx, 0)

	require.NoError(t, err)
	assert.Len(t, recent, 20)
}

func TestDiagnosticsService_NoStore(t *testing.T) {
	recent, err := NewDiagnosticsService(nil).Recent(context.Background(), 5)

	assert.NoError(t, err)
	assert.Empty(t, recent)
}
