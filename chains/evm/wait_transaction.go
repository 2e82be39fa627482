package evm

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// receiptPollInterval is the interval between receipt polls.
const receiptPollInterval = time.Second

// WaitTransactionConfirmation waits for the confirmation of a transaction by
// polling for its receipt. No explicit timeout is enforced; the wait ends
// when a receipt appears or the context is cancelled.
//
// Parameters:
// - ctx: the context for managing the request.
// - tx: the transaction to wait for confirmation.
//
// Returns:
// - types.TransactionStatus: TxDone if mined successfully, TxFailed on revert.
// - error: an error if the client is not initialized or the receipt retrieval fails.
func (e *evm) WaitTransactionConfirmation(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return types.TxNeedsRetry, errors.New("client not initialized")
	}

	txHash := common.HexToHash(tx.Hash)

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.WithField("txHash", tx.Hash).Error("WaitTransactionConfirmation: context done")
			return types.TxFailed, ctx.Err()

		case <-ticker.C:
			receipt, err := client.TransactionReceipt(ctx, txHash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					continue
				}
				return types.TxNeedsRetry, errors.Wrap(err, "failed to get transaction receipt")
			}

			if receipt.Status == ethtypes.ReceiptStatusSuccessful {
				return types.TxDone, nil
			}
			return types.TxFailed, nil
		}
	}
}
