package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeExecutorOptions(t *testing.T) {
	options := EncodeExecutorOptions(DefaultExecutorGasLimit)

	require.Len(t, options, 34)
	// Options type 1, then 900000 (0xdbba0) as a 32-byte big-endian integer.
	require.Equal(t,
		"0001"+"00000000000000000000000000000000000000000000000000000000000dbba0",
		hex.EncodeToString(options),
	)
}

func TestEncodeExecutorOptionsSmallLimit(t *testing.T) {
	options := EncodeExecutorOptions(1)

	require.Len(t, options, 34)
	require.Equal(t, byte(0), options[0])
	require.Equal(t, byte(1), options[1])
	require.Equal(t, byte(1), options[33])
}
