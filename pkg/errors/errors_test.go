package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("save chart: %w", Wrap("storage_error", "failed to persist chart", cause))

	require.True(t, IsCode(err, "storage_error"))
	require.False(t, IsCode(err, "not_found"))
	require.Equal(t, "storage_error", CodeOf(err))
	require.Equal(t, "failed to persist chart", MessageOf(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "save chart: failed to persist chart: disk full", err.Error())
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")
	require.Empty(t, CodeOf(err))
	require.False(t, IsCode(err, ""))
	require.Equal(t, "boom", MessageOf(err))
	require.Equal(t, "not_found", CodeOf(Wrap("not_found", "chart not found", nil)))
}
