package bridge

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/registry"
)

func newApprovalFixture(t *testing.T) (*ApprovalManager, *mockChain, *mockSession) {
	t.Helper()

	chain := newMockChain()
	chains := newStubChainRegistry()
	chains.chains[registry.Monad] = chain

	session := newMockSession(registry.MustConfig(registry.Monad).ChainID)

	return NewApprovalManager(chains, session, testLogger()), chain, session
}

func TestEnsureAllowanceSufficient(t *testing.T) {
	manager, chain, _ := newApprovalFixture(t)
	chain.allowance = big.NewInt(100)

	outcome, err := manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, big.NewInt(50))
	require.NoError(t, err)
	require.Equal(t, OutcomeSufficient, outcome)
	require.Equal(t, 0, chain.approveCalls)
}

func TestEnsureAllowanceApproves(t *testing.T) {
	manager, chain, _ := newApprovalFixture(t)
	chain.allowance = big.NewInt(10)

	started := 0
	manager.OnApprovalStart = func() { started++ }

	outcome, err := manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, big.NewInt(50))
	require.NoError(t, err)
	require.Equal(t, OutcomeApproved, outcome)
	require.Equal(t, 1, chain.approveCalls)
	require.Equal(t, 1, started)
}

func TestEnsureAllowanceIdempotent(t *testing.T) {
	manager, chain, _ := newApprovalFixture(t)
	chain.allowance = big.NewInt(0)
	required := big.NewInt(50)

	outcome, err := manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, required)
	require.NoError(t, err)
	require.Equal(t, OutcomeApproved, outcome)

	// The first approval covered the amount; a second call issues nothing.
	outcome, err = manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, required)
	require.NoError(t, err)
	require.Equal(t, OutcomeSufficient, outcome)
	require.Equal(t, 1, chain.approveCalls)
}

func TestEnsureAllowanceRevertedApproval(t *testing.T) {
	manager, chain, _ := newApprovalFixture(t)
	chain.allowance = big.NewInt(0)
	chain.waitStatus = types.TxFailed

	_, err := manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, big.NewInt(50))
	require.Error(t, err)
}

func TestEnsureAllowanceUserRejection(t *testing.T) {
	manager, chain, session := newApprovalFixture(t)
	chain.allowance = big.NewInt(0)
	session.authorizeErr[types.ActionApproveToken] = commonerrors.ErrUserRejected

	_, err := manager.EnsureAllowance(context.Background(), registry.Monad, testAccount, big.NewInt(50))
	require.ErrorIs(t, err, commonerrors.ErrUserRejected)
	require.Equal(t, 0, chain.approveCalls)
}
