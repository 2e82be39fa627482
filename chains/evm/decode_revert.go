package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
)

// revertReasons maps known adapter revert selectors to human-readable
// descriptions. Unrecognized selectors are reported generically with the raw
// selector included.
var revertReasons = map[string]string{
	"0x41705130": "Invalid option format - Transaction parameters not supported",
	"0xc0927c56": "Destination chain not configured",
	"0x6592671c": "Insufficient fee provided for cross-chain transaction",
}

// decodeCallError inspects an RPC error for revert data and maps its selector
// through the known-reason table. Errors carrying no usable revert data are
// classified as transport failures.
func (e *evm) decodeCallError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok && strings.HasPrefix(data, "0x") && len(data) >= 10 {
			selector := data[:10]
			return &commonerrors.RevertError{
				Selector: selector,
				Reason:   revertReasons[selector],
			}
		}
	}
	return &commonerrors.TransportError{Err: err}
}
