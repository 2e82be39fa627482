package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// gasLimitBufferPercent pads the estimated gas to absorb small state drift
// between estimation and inclusion.
const gasLimitBufferPercent = 110

// prepareTransaction prepares a legacy transaction with the given parameters,
// estimating gas and fetching the suggested gas price.
//
// Parameters:
// - ctx: the context for managing the request.
// - nonce: the nonce for the transaction.
// - to: the recipient contract address.
// - value: the native value to attach.
// - data: the input data for the transaction.
//
// Returns:
// - *ethtypes.Transaction: the prepared transaction.
// - error: an error if gas estimation or gas price retrieval fails.
func (e *evm) prepareTransaction(ctx context.Context, nonce uint64, to common.Address, value *big.Int, data []byte) (*ethtypes.Transaction, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	e.signerMutex.RLock()
	chainSigner := e.signer
	e.signerMutex.RUnlock()

	if client == nil || chainSigner == nil {
		return nil, errors.New("client or signer not initialized")
	}

	estimatedGas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  chainSigner.Address(),
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Warn("Failed to estimate gas")
		return nil, e.decodeCallError(err)
	}

	gasLimit := estimatedGas * gasLimitBufferPercent / 100

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}

	return ethtypes.NewTransaction(
		nonce,
		to,
		value,
		gasLimit,
		gasPrice,
		data,
	), nil
}

// signAndSendTransaction signs and sends the prepared transaction.
func (e *evm) signAndSendTransaction(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	e.signerMutex.RLock()
	chainSigner := e.signer
	e.signerMutex.RUnlock()

	if client == nil || chainSigner == nil {
		return nil, errors.New("client or signer not initialized")
	}

	chainID := new(big.Int).SetUint64(e.config.ChainID)

	signedTx, err := chainSigner.SignTx(tx, chainID)
	if err != nil {
		e.logger.WithError(err).Error("Failed to sign transaction")
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err = client.SendTransaction(ctx, signedTx); err != nil {
		e.logger.WithError(err).Error("Failed to send transaction")
		return nil, e.decodeCallError(err)
	}

	return signedTx, nil
}
