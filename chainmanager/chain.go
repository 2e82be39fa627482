package chainmanager

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// ErrNotImplemented is returned when a capability was not configured for a chain.
var ErrNotImplemented = errors.New("functionality not implemented")

// Chain implements types.BridgeChain with thread-safe access to dependencies.
// Each capability is protected by a read-write mutex so implementations can be
// swapped while reads are in flight.
type Chain struct {
	config   *types.ChainConfig       // Chain configuration.
	reader   types.TokenReader        // Token and native balance reads.
	quoter   types.FeeQuoter          // Cross-chain fee quoting.
	approver types.TokenApprover      // Token approval submission.
	sender   types.BridgeSender       // Cross-chain send submission.
	watcher  types.TransactionWatcher // Transaction confirmation waits.
	closer   types.ChainCloser        // Underlying resource teardown.

	// Mutexes for thread-safe access to dependencies.
	readerMutex   sync.RWMutex
	quoterMutex   sync.RWMutex
	approverMutex sync.RWMutex
	senderMutex   sync.RWMutex
	watcherMutex  sync.RWMutex
	closerMutex   sync.RWMutex
}

// NewChain creates a new Chain instance from the configured capabilities.
func NewChain(
	config *types.ChainConfig,
	reader types.TokenReader,
	quoter types.FeeQuoter,
	approver types.TokenApprover,
	sender types.BridgeSender,
	watcher types.TransactionWatcher,
	closer types.ChainCloser,
) *Chain {
	return &Chain{
		config:   config,
		reader:   reader,
		quoter:   quoter,
		approver: approver,
		sender:   sender,
		watcher:  watcher,
		closer:   closer,
	}
}

// TokenBalance reads the raw token balance and decimals with thread-safe access.
func (c *Chain) TokenBalance(ctx context.Context, account common.Address) (*big.Int, uint8, error) {
	c.readerMutex.RLock()
	reader := c.reader
	c.readerMutex.RUnlock()

	if reader == nil {
		return nil, 0, ErrNotImplemented
	}
	return reader.TokenBalance(ctx, account)
}

// NativeBalance reads the native currency balance with thread-safe access.
func (c *Chain) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	c.readerMutex.RLock()
	reader := c.reader
	c.readerMutex.RUnlock()

	if reader == nil {
		return nil, ErrNotImplemented
	}
	return reader.NativeBalance(ctx, account)
}

// Allowance reads the adapter spending approval with thread-safe access.
func (c *Chain) Allowance(ctx context.Context, owner common.Address) (*big.Int, error) {
	c.readerMutex.RLock()
	reader := c.reader
	c.readerMutex.RUnlock()

	if reader == nil {
		return nil, ErrNotImplemented
	}
	return reader.Allowance(ctx, owner)
}

// QuoteSend asks the adapter for the required network fee with thread-safe access.
func (c *Chain) QuoteSend(ctx context.Context, desc *types.SendDescriptor) (*types.FeeQuote, error) {
	c.quoterMutex.RLock()
	quoter := c.quoter
	c.quoterMutex.RUnlock()

	if quoter == nil {
		return nil, ErrNotImplemented
	}
	return quoter.QuoteSend(ctx, desc)
}

// Approve submits a token approval with thread-safe access.
func (c *Chain) Approve(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	c.approverMutex.RLock()
	approver := c.approver
	c.approverMutex.RUnlock()

	if approver == nil {
		return nil, ErrNotImplemented
	}
	return approver.Approve(ctx, amount)
}

// SendBridge submits the cross-chain send with thread-safe access.
func (c *Chain) SendBridge(ctx context.Context, desc *types.SendDescriptor, fee *types.FeeQuote) (*types.Transaction, error) {
	c.senderMutex.RLock()
	sender := c.sender
	c.senderMutex.RUnlock()

	if sender == nil {
		return nil, ErrNotImplemented
	}
	return sender.SendBridge(ctx, desc, fee)
}

// WaitTransactionConfirmation waits for a receipt with thread-safe access.
func (c *Chain) WaitTransactionConfirmation(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	c.watcherMutex.RLock()
	watcher := c.watcher
	c.watcherMutex.RUnlock()

	if watcher == nil {
		return types.TxFailed, ErrNotImplemented
	}
	return watcher.WaitTransactionConfirmation(ctx, tx)
}

// Close releases the underlying chain resources with thread-safe access.
// Chains without a configured closer have nothing to release.
func (c *Chain) Close() {
	c.closerMutex.RLock()
	closer := c.closer
	c.closerMutex.RUnlock()

	if closer == nil {
		return
	}
	closer.Close()
}

// GetConfig returns chain configuration.
func (c *Chain) GetConfig() *types.ChainConfig {
	return c.config
}
