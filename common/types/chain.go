package types

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ChainKey identifies a chain in the static deployment table (e.g. "monad").
type ChainKey string

// ChainConfig holds the configuration for a specific chain deployment.
//
// Fields:
// - Key: the registry key of the chain.
// - Type: the chain type dispatched on by the chain factory.
// - Name: the human-readable name of the chain.
// - TokenSymbol: the display symbol of the bridged token.
// - NativeSymbol: the display symbol of the chain's native fee currency.
// - Logo: the logo URL used in notification display metadata.
// - Adapter: the OFT adapter contract address.
// - Token: the ERC20 token contract address.
// - ChainID: the numeric chain id.
// - ChainIDHex: the hex form of the chain id used by wallet switch requests.
// - RpcUrl: the URL for the chain's RPC endpoint.
// - EndpointID: the LayerZero endpoint id of the chain.
// - Endpoint: the LayerZero endpoint contract address.
type ChainConfig struct {
	Key          ChainKey
	Type         ChainType
	Name         string
	TokenSymbol  string
	NativeSymbol string
	Logo         string
	Adapter      string
	Token        string
	ChainID      uint64
	ChainIDHex   string
	RpcUrl       string
	EndpointID   uint32
	Endpoint     string
}

// TokenReader provides read-only token and native balance queries.
type TokenReader interface {
	// TokenBalance returns the raw token balance of the account together with
	// the token's decimal precision.
	TokenBalance(ctx context.Context, account common.Address) (*big.Int, uint8, error)

	// NativeBalance returns the native currency balance of the account.
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)

	// Allowance returns the spending approval the owner has granted the
	// chain's adapter contract.
	Allowance(ctx context.Context, owner common.Address) (*big.Int, error)
}

// FeeQuoter provides cross-chain fee quoting functionality.
type FeeQuoter interface {
	// QuoteSend asks the adapter contract for the network fee required to
	// deliver the described cross-chain send. Read-only simulation; the quote
	// is advisory until the real send executes.
	QuoteSend(ctx context.Context, desc *SendDescriptor) (*FeeQuote, error)
}

// TokenApprover provides token approval functionality.
type TokenApprover interface {
	// Approve grants the chain's adapter contract a spending allowance for
	// exactly the given amount and returns the submitted transaction.
	Approve(ctx context.Context, amount *big.Int) (*Transaction, error)
}

// BridgeSender provides cross-chain send submission functionality.
type BridgeSender interface {
	// SendBridge submits the cross-chain send transaction with the quoted
	// native fee attached as transferred value.
	SendBridge(ctx context.Context, desc *SendDescriptor, fee *FeeQuote) (*Transaction, error)
}

// TransactionWatcher provides transaction confirmation functionality.
type TransactionWatcher interface {
	// WaitTransactionConfirmation waits for the confirmation of a transaction.
	//
	// Returns:
	// - TransactionStatus: TxDone if mined successfully, TxFailed on revert.
	// - error: an error if the confirmation wait itself fails.
	WaitTransactionConfirmation(ctx context.Context, tx *Transaction) (TransactionStatus, error)
}

// ChainCloser releases the resources a chain instance holds.
type ChainCloser interface {
	// Close releases the chain's underlying RPC client. The chain must not be
	// used afterwards.
	Close()
}

// BridgeChain combines all per-chain functionality the orchestrator needs.
type BridgeChain interface {
	TokenReader
	FeeQuoter
	TokenApprover
	BridgeSender
	TransactionWatcher
	ChainCloser
}

// ChainRegistry manages bound chain instances keyed by registry key.
type ChainRegistry interface {
	// Add creates and registers a chain instance for the given configuration.
	Add(ctx context.Context, config *ChainConfig) error

	// Get retrieves a chain instance by its registry key, or nil if absent.
	Get(key ChainKey) BridgeChain

	// Remove removes a chain instance from the registry and closes it.
	Remove(key ChainKey)
}
