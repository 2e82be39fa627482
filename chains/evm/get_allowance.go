package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
)

// Allowance reads the spending approval the owner has granted the chain's
// adapter contract.
//
// Parameters:
// - ctx: the context for managing the request.
// - owner: the token holder address.
//
// Returns:
// - *big.Int: the raw approved amount.
// - error: a transport error if the read fails.
func (e *evm) Allowance(ctx context.Context, owner common.Address) (*big.Int, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	data, err := e.erc20ABI.Pack("allowance", owner, e.adapterAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack allowance data")
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &e.tokenAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, &commonerrors.TransportError{Err: err}
	}

	out, err := e.erc20ABI.Unpack("allowance", result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack allowance result")
	}

	return out[0].(*big.Int), nil
}
