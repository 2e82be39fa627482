package errors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "user rejected", err: ErrUserRejected, want: KindUserRejected},
		{name: "wrapped user rejected", err: errors.Wrap(ErrUserRejected, "switch chain"), want: KindUserRejected},
		{name: "insufficient balance", err: ErrInsufficientBalance, want: KindInsufficientBalance},
		{name: "insufficient gas", err: ErrInsufficientGas, want: KindInsufficientGas},
		{name: "chain mismatch", err: ErrChainMismatch, want: KindChainMismatch},
		{name: "chain not registered", err: ErrChainNotRegistered, want: KindChainNotRegistered},
		{name: "switch verification", err: ErrSwitchVerification, want: KindVerification},
		{name: "revert", err: &RevertError{Selector: "0x41705130"}, want: KindContractRevert},
		{name: "transport", err: &TransportError{Err: errors.New("connection refused")}, want: KindTransport},
		{name: "wrapped transport", err: errors.Wrap(&TransportError{Err: errors.New("timeout")}, "poll"), want: KindTransport},
		{name: "unrelated", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWithUserMessageKeepsSentinel(t *testing.T) {
	err := WithUserMessage(ErrInsufficientBalance,
		"Insufficient balance: You have %s MBD but need %s MBD", "1.0000", "5.0000")

	require.True(t, errors.Is(err, ErrInsufficientBalance))
	require.Equal(t, KindInsufficientBalance, Classify(err))
	require.Equal(t, "Insufficient balance: You have 1.0000 MBD but need 5.0000 MBD", UserMessage(err))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "user rejected", err: ErrUserRejected, want: "Transaction rejected by user"},
		{name: "transport", err: &TransportError{Err: errors.New("eof")}, want: "Network error - Please try again"},
		{name: "known revert", err: &RevertError{Selector: "0xc0927c56", Reason: "Destination chain not configured"}, want: "Destination chain not configured"},
		{name: "unknown revert", err: &RevertError{Selector: "0xdeadbeef"}, want: "Smart contract error: 0xdeadbeef"},
		{name: "fallback", err: errors.New("boom"), want: "Bridge failed - Please try again"},
		{name: "verification", err: ErrSwitchVerification, want: "Chain switch could not be verified. Please retry."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
