package chainmanager

import (
	"github.com/monbridgedex/bridge-lib/common/types"
)

// ChainBuilder is a builder pattern implementation for chain configuration.
// It allows setting the individual capabilities of a chain before assembling
// them into a types.BridgeChain.
type ChainBuilder struct {
	config   *types.ChainConfig
	reader   types.TokenReader
	quoter   types.FeeQuoter
	approver types.TokenApprover
	sender   types.BridgeSender
	watcher  types.TransactionWatcher
	closer   types.ChainCloser
}

// NewChainBuilder creates a new chain builder instance for the configuration.
func NewChainBuilder(config *types.ChainConfig) *ChainBuilder {
	return &ChainBuilder{
		config: config,
	}
}

// WithTokenReader sets the token reader implementation.
func (b *ChainBuilder) WithTokenReader(reader types.TokenReader) *ChainBuilder {
	b.reader = reader
	return b
}

// WithFeeQuoter sets the fee quoter implementation.
func (b *ChainBuilder) WithFeeQuoter(quoter types.FeeQuoter) *ChainBuilder {
	b.quoter = quoter
	return b
}

// WithTokenApprover sets the token approver implementation.
func (b *ChainBuilder) WithTokenApprover(approver types.TokenApprover) *ChainBuilder {
	b.approver = approver
	return b
}

// WithBridgeSender sets the bridge sender implementation.
func (b *ChainBuilder) WithBridgeSender(sender types.BridgeSender) *ChainBuilder {
	b.sender = sender
	return b
}

// WithTransactionWatcher sets the transaction watcher implementation.
func (b *ChainBuilder) WithTransactionWatcher(watcher types.TransactionWatcher) *ChainBuilder {
	b.watcher = watcher
	return b
}

// WithChainCloser sets the resource teardown implementation.
func (b *ChainBuilder) WithChainCloser(closer types.ChainCloser) *ChainBuilder {
	b.closer = closer
	return b
}

// Build creates a new chain instance with the configured implementations.
func (b *ChainBuilder) Build() types.BridgeChain {
	return NewChain(b.config, b.reader, b.quoter, b.approver, b.sender, b.watcher, b.closer)
}
