package utils

import (
	"encoding/binary"
	"math/big"
)

const (
	// ZeroAddress represents the zero address.
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// DefaultExecutorGasLimit is the fixed gas-limit hint encoded into every
	// send's extra options.
	DefaultExecutorGasLimit = 900000

	// legacyOptionsType tags the packed options as the legacy executor
	// gas-limit format.
	legacyOptionsType = uint16(1)
)

// EncodeExecutorOptions packs the extra-options byte string the adapter
// expects: a uint16 options type followed by the gas limit as a uint256,
// tightly packed (34 bytes total).
func EncodeExecutorOptions(gasLimit uint64) []byte {
	options := make([]byte, 34)
	binary.BigEndian.PutUint16(options[0:2], legacyOptionsType)
	new(big.Int).SetUint64(gasLimit).FillBytes(options[2:34])
	return options
}
