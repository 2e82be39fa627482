package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
)

// TokenBalance reads the token's decimal precision and the account's raw
// balance. The two reads are independent and issued concurrently.
//
// Parameters:
// - ctx: the context for managing the request.
// - account: the address to check balance for.
//
// Returns:
// - *big.Int: the raw token balance.
// - uint8: the token's decimal precision.
// - error: a transport error if either read fails.
func (e *evm) TokenBalance(ctx context.Context, account common.Address) (*big.Int, uint8, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, 0, errors.New("client not initialized")
	}

	var (
		balance  *big.Int
		decimals uint8
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := e.erc20ABI.Pack("balanceOf", account)
		if err != nil {
			return errors.Wrap(err, "failed to pack balanceOf data")
		}

		result, err := client.CallContract(gctx, ethereum.CallMsg{
			To:   &e.tokenAddress,
			Data: data,
		}, nil)
		if err != nil {
			return &commonerrors.TransportError{Err: err}
		}

		out, err := e.erc20ABI.Unpack("balanceOf", result)
		if err != nil {
			return errors.Wrap(err, "failed to unpack balanceOf result")
		}

		balance = out[0].(*big.Int)
		return nil
	})

	g.Go(func() error {
		data, err := e.erc20ABI.Pack("decimals")
		if err != nil {
			return errors.Wrap(err, "failed to pack decimals data")
		}

		result, err := client.CallContract(gctx, ethereum.CallMsg{
			To:   &e.tokenAddress,
			Data: data,
		}, nil)
		if err != nil {
			return &commonerrors.TransportError{Err: err}
		}

		out, err := e.erc20ABI.Unpack("decimals", result)
		if err != nil {
			return errors.Wrap(err, "failed to unpack decimals result")
		}

		decimals = out[0].(uint8)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return balance, decimals, nil
}

// NativeBalance reads the native currency balance of the account.
func (e *evm) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, &commonerrors.TransportError{Err: err}
	}
	return balance, nil
}
