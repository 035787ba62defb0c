package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/jrsteele09/go-fxa-oauth/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, errors.Wrapf(nil, "context %d", 1))
	})

	t.Run("wraps with context", func(t *testing.T) {
		err := errors.Wrapf(errors.ErrInvalidResponse, "POST %s", "/v1/token")
		require.EqualError(t, err, "POST /v1/token: invalid response body")
		require.True(t, errors.Is(err, errors.ErrInvalidResponse))
	})

	t.Run("As finds typed errors", func(t *testing.T) {
		type codedErr struct{ error }
		err := errors.Wrapf(codedErr{stderrors.New("boom")}, "outer")
		var target codedErr
		require.True(t, errors.As(err, &target))
	})
}
