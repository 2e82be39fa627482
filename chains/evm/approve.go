package evm

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// Approve grants the chain's adapter contract a spending allowance for
// exactly the given amount. No unlimited approvals are issued.
//
// Parameters:
// - ctx: the context for managing the request.
// - amount: the raw amount to approve.
//
// Returns:
// - *types.Transaction: the submitted approval transaction.
// - error: an error if preparation, signing or submission fails.
func (e *evm) Approve(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	e.signerMutex.RLock()
	chainSigner := e.signer
	e.signerMutex.RUnlock()

	if client == nil || chainSigner == nil {
		return nil, errors.New("client or signer not initialized")
	}

	nonce, err := client.PendingNonceAt(ctx, chainSigner.Address())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	data, err := e.erc20ABI.Pack("approve", e.adapterAddress, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack approve data")
	}

	tx, err := e.prepareTransaction(ctx, nonce, e.tokenAddress, big.NewInt(0), data)
	if err != nil {
		return nil, err
	}

	signedTx, err := e.signAndSendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"chain":  e.config.Name,
		"txHash": signedTx.Hash().Hex(),
		"amount": amount.String(),
	}).Info("Approval transaction submitted")

	return &types.Transaction{
		Hash:    signedTx.Hash().Hex(),
		From:    chainSigner.Address().Hex(),
		To:      e.config.Token,
		Value:   "0",
		Nonce:   nonce,
		ChainID: e.config.ChainID,
	}, nil
}
