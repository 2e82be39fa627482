package evm

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// QuoteSend asks the adapter contract for the network fee required to deliver
// the described send. Read-only simulation via quoteSend; the alternate-token
// payment path is never used.
//
// Parameters:
// - ctx: the context for managing the request.
// - desc: the send descriptor to quote.
//
// Returns:
// - *types.FeeQuote: the quoted native and alternate-token fees.
// - error: a decoded revert or transport error if the simulation fails.
func (e *evm) QuoteSend(ctx context.Context, desc *types.SendDescriptor) (*types.FeeQuote, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	data, err := e.adapterABI.Pack("quoteSend", *desc, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack quoteSend data")
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &e.adapterAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, e.decodeCallError(err)
	}

	out, err := e.adapterABI.Unpack("quoteSend", result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack quoteSend result")
	}

	fee := abi.ConvertType(out[0], new(types.FeeQuote)).(*types.FeeQuote)
	return fee, nil
}
