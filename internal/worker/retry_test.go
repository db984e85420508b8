package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_PrimerIntentoExitoso(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 3, func(int) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_AgotaIntentos(t *testing.T) {
	errSend := errors.New("smtp: relay down")
	attempts := 0
	err := withRetry(context.Background(), 1, func(int) error {
		attempts++
		return errSend
	})
	assert.ErrorIs(t, err, errSend)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errSend := errors.New("smtp: relay down")

	attempts := 0
	err := withRetry(ctx, 3, func(int) error {
		attempts++
		cancel() // cancel before the backoff wait
		return errSend
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
