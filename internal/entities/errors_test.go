package entities

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "loader.load",
		Kind: KindFileAccess,
		Path: "dataset1.csv",
		Err:  root,
	}

	assert.True(t, errors.Is(err, root), "expected errors.Is to match cause")
	assert.True(t, errors.Is(err, ErrFileAccess), "expected errors.Is to match kind sentinel")
	assert.False(t, errors.Is(err, ErrTypeMismatch))

	var got *OpError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, KindFileAccess, got.Kind)
	assert.Equal(t, "loader.load: file_access (path=dataset1.csv): root", err.Error())
}

func TestIsKind(t *testing.T) {
	_, statErr := os.Stat("does-not-exist.csv")
	err := &OpError{Op: "loader.load", Kind: KindFileAccess, Err: statErr}

	assert.True(t, IsKind(err, KindFileAccess))
	assert.False(t, IsKind(err, KindMissingColumn))
	assert.False(t, IsKind(errors.New("plain"), KindFileAccess))
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	assert.Equal(t, "<nil>", err.Error())
	assert.Nil(t, err.Unwrap())
}
