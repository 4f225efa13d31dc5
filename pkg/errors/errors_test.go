package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("request_failed", "request failed", cause)

	require.True(t, IsCode(err, "request_failed"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "request failed: boom", err.Error())
	require.Equal(t, "request failed", MessageOf(err))
}

func TestCodeOfNestedAndForeign(t *testing.T) {
	inner := Wrap("invalid_input", "text cannot be empty", nil)
	outer := fmt.Errorf("handler: %w", inner)

	require.Equal(t, "invalid_input", CodeOf(outer))
	require.Equal(t, "", CodeOf(errors.New("plain")))
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
	require.False(t, IsCode(nil, "invalid_input"))
}
