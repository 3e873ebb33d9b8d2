package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttributionDefaultsToSystem(t *testing.T) {
	id, name := Attribution(context.Background())
	require.Nil(t, id)
	require.Equal(t, SystemName, name)
}

func TestAttributionUsesContextActor(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{ID: "u-1", Name: "Maria Silva", Email: "maria@example.com"})

	id, name := Attribution(ctx)
	require.NotNil(t, id)
	require.Equal(t, "u-1", *id)
	require.Equal(t, "Maria Silva", name)
}

func TestAttributionFallsBackToEmail(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{ID: "u-2", Email: "jose@example.com"})

	_, name := Attribution(ctx)
	require.Equal(t, "jose@example.com", name)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)
}
