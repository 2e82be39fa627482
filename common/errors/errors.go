package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrChainNotFound      = errors.New("chain not found")
	ErrInvalidChainKey    = errors.New("invalid chain key")
	ErrInvalidConfig      = errors.New("invalid chain configuration")
	ErrChainExists        = errors.New("chain already exists in registry")
	ErrFactoryNotProvided = errors.New("chain factory not provided")
	ErrInvalidChainType   = errors.New("invalid chain type")

	// ErrUserRejected indicates the user declined a wallet interaction. Not an
	// application error: never retried, never surfaced as raw failure text.
	ErrUserRejected = errors.New("user rejected request")

	// ErrInsufficientBalance indicates the token balance does not cover the
	// requested amount. Computed locally, never attempted on-chain.
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// ErrInsufficientGas indicates the native balance does not cover the
	// quoted network fee. Computed locally, never attempted on-chain.
	ErrInsufficientGas = errors.New("insufficient native balance for fee")

	// ErrChainMismatch indicates the wallet is connected to a chain other than
	// the route source. Resolved via the chain switch sub-flow.
	ErrChainMismatch = errors.New("wallet connected to wrong chain")

	// ErrChainNotRegistered indicates the wallet lacks the target network and
	// the add-network request failed.
	ErrChainNotRegistered = errors.New("chain not registered in wallet")

	// ErrSwitchVerification indicates a chain switch appeared to succeed but
	// the reported chain id still mismatches. Terminal for the attempt.
	ErrSwitchVerification = errors.New("chain switch verification failed")

	// ErrQuoteUnavailable indicates preconditions for fee quoting were not met.
	ErrQuoteUnavailable = errors.New("fee quote unavailable")

	// ErrBridgeInProgress indicates another bridge attempt is already in
	// flight; the orchestrator runs at most one at a time.
	ErrBridgeInProgress = errors.New("bridge attempt already in progress")

	// ErrWalletNotConnected indicates no wallet session is established.
	ErrWalletNotConnected = errors.New("wallet not connected")
)

// userError attaches user-facing text to a taxonomy sentinel while keeping
// errors.Is against the sentinel working.
type userError struct {
	sentinel error
	msg      string
}

func (e *userError) Error() string {
	return e.msg
}

func (e *userError) Unwrap() error {
	return e.sentinel
}

// WithUserMessage wraps a taxonomy sentinel with composed user-facing text,
// e.g. a quantity comparison for an insufficient balance failure.
func WithUserMessage(sentinel error, format string, args ...interface{}) error {
	return &userError{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

// RevertError is a contract revert decoded from RPC error data. Reason is
// empty when the selector is not in the known map.
type RevertError struct {
	Selector string
	Reason   string
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("contract reverted with selector %s", e.Selector)
}

// TransportError wraps an RPC or HTTP failure. For reads it degrades to an
// unknown display value; for polling it is retried on the next tick.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind buckets an error into the fixed taxonomy, mapped once at the
// collaborator boundary rather than via scattered inline checks.
type Kind int

const (
	KindUnknown Kind = iota
	KindUserRejected
	KindInsufficientBalance
	KindInsufficientGas
	KindChainMismatch
	KindChainNotRegistered
	KindContractRevert
	KindTransport
	KindVerification
)

// Classify maps an error to its taxonomy kind.
func Classify(err error) Kind {
	var revert *RevertError
	var transport *TransportError

	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrUserRejected):
		return KindUserRejected
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrInsufficientGas):
		return KindInsufficientGas
	case errors.Is(err, ErrChainMismatch):
		return KindChainMismatch
	case errors.Is(err, ErrChainNotRegistered):
		return KindChainNotRegistered
	case errors.Is(err, ErrSwitchVerification):
		return KindVerification
	case errors.As(err, &revert):
		return KindContractRevert
	case errors.As(err, &transport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// UserMessage translates an error into user-facing text. Only a curated
// subset gets specific wording; everything else falls back to a generic chain
// error so raw low-level exception text is never the primary message.
func UserMessage(err error) string {
	var revert *RevertError

	switch Classify(err) {
	case KindUserRejected:
		return "Transaction rejected by user"
	case KindInsufficientBalance, KindInsufficientGas, KindChainMismatch:
		// These carry a locally composed quantity or chain comparison.
		var ue *userError
		if errors.As(err, &ue) {
			return ue.msg
		}
		return errors.Cause(err).Error()
	case KindChainNotRegistered:
		return "Network not registered in wallet. Please add it manually."
	case KindVerification:
		return "Chain switch could not be verified. Please retry."
	case KindContractRevert:
		errors.As(err, &revert)
		if revert.Reason != "" {
			return revert.Reason
		}
		return fmt.Sprintf("Smart contract error: %s", revert.Selector)
	case KindTransport:
		return "Network error - Please try again"
	default:
		return "Bridge failed - Please try again"
	}
}
