package evm

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// SendBridge submits the cross-chain send transaction. The quoted native fee
// is attached as transferred value and the signer account receives any refund.
//
// Parameters:
// - ctx: the context for managing the request.
// - desc: the send descriptor, identical to the one used for quoting.
// - fee: the fee quote obtained for the descriptor.
//
// Returns:
// - *types.Transaction: the submitted send transaction.
// - error: a decoded revert or transport error if submission fails.
func (e *evm) SendBridge(ctx context.Context, desc *types.SendDescriptor, fee *types.FeeQuote) (*types.Transaction, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	e.signerMutex.RLock()
	chainSigner := e.signer
	e.signerMutex.RUnlock()

	if client == nil || chainSigner == nil {
		return nil, errors.New("client or signer not initialized")
	}

	messagingFee := types.FeeQuote{
		NativeFee:  fee.NativeFee,
		LzTokenFee: fee.LzTokenFee,
	}
	if messagingFee.LzTokenFee == nil {
		messagingFee.LzTokenFee = big.NewInt(0)
	}

	nonce, err := client.PendingNonceAt(ctx, chainSigner.Address())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	data, err := e.adapterABI.Pack("send", *desc, messagingFee, chainSigner.Address())
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack send data")
	}

	tx, err := e.prepareTransaction(ctx, nonce, e.adapterAddress, messagingFee.NativeFee, data)
	if err != nil {
		return nil, err
	}

	signedTx, err := e.signAndSendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"chain":     e.config.Name,
		"txHash":    signedTx.Hash().Hex(),
		"dstEid":    desc.DstEid,
		"amountLD":  desc.AmountLD.String(),
		"nativeFee": messagingFee.NativeFee.String(),
	}).Info("Bridge transaction submitted")

	return &types.Transaction{
		Hash:    signedTx.Hash().Hex(),
		From:    chainSigner.Address().Hex(),
		To:      e.config.Adapter,
		Value:   messagingFee.NativeFee.String(),
		Nonce:   nonce,
		ChainID: e.config.ChainID,
	}, nil
}
