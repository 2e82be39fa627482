package types

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// WalletAction names a wallet interaction the user may approve or decline.
type WalletAction string

const (
	ActionConnect         WalletAction = "connect"
	ActionSwitchChain     WalletAction = "switch-chain"
	ActionAddChain        WalletAction = "add-chain"
	ActionApproveToken    WalletAction = "approve-token"
	ActionSendTransaction WalletAction = "send-transaction"
)

// WalletSession abstracts the wallet-adapter collaborator: the active account,
// the connected chain, chain switching, and change subscriptions. Never an
// ambient global; the orchestrator consumes it explicitly.
type WalletSession interface {
	// Connect establishes the session and returns the active account.
	Connect(ctx context.Context) (common.Address, error)

	// Connected reports whether a session is established.
	Connected() bool

	// CurrentAccount returns the active account, or the zero address when
	// disconnected.
	CurrentAccount() common.Address

	// CurrentChainID returns the chain id the wallet is currently on.
	CurrentChainID() uint64

	// SwitchChain asks the wallet to move to the target chain, adding the
	// network first if the wallet does not know it. The switch is verified
	// against the reported chain id before returning.
	SwitchChain(ctx context.Context, target *ChainConfig) error

	// Authorize asks the user to approve a wallet interaction. Returns
	// ErrUserRejected when declined.
	Authorize(action WalletAction) error

	// OnAccountsChanged registers a callback invoked when the active account
	// changes. A zero address signals disconnection.
	OnAccountsChanged(fn func(common.Address))

	// OnChainChanged registers a callback invoked after the wallet moves to a
	// different chain.
	OnChainChanged(fn func(uint64))
}
