// Package test_utils provides helpers shared by package tests.
package test_utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// CopyThruSerialization serializes src into a buffer and deserializes the
// buffer into dst, checking the reported byte counts both ways.
func CopyThruSerialization(t *testing.T, dst io.ReaderFrom, src io.WriterTo) {
	var bb bytes.Buffer

	n, err := src.WriteTo(&bb)
	require.NoError(t, err)
	require.Equal(t, int64(bb.Len()), n)
	n, err = dst.ReadFrom(bytes.NewReader(bb.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int64(bb.Len()), n)
}
