package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/adapters/telemetry"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, v := tel.Record(context.Background(), "simulate", ports.WithInternal())
	require.NotNil(t, v)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, fromCtx)

	n, err := v.Stdout().Write([]byte("day 1"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	v.Log(domain.LogLevelWarn, "ignored")
	v.Cached()
	v.Complete(errors.New("boom"))

	assert.NoError(t, tel.Close())
}
