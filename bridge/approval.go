package bridge

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

// ApprovalOutcome reports how EnsureAllowance satisfied the requirement.
type ApprovalOutcome int

const (
	// OutcomeSufficient means the existing allowance already covered the
	// amount and no transaction was issued.
	OutcomeSufficient ApprovalOutcome = iota

	// OutcomeApproved means an approval transaction was sent and confirmed.
	OutcomeApproved
)

// ApprovalManager grants the adapter exactly the allowance a transfer needs.
// The allowance is checked first, so repeated calls for a covered amount
// never issue a second approval.
type ApprovalManager struct {
	logger  *logrus.Logger
	chains  types.ChainRegistry
	session types.WalletSession

	// OnApprovalStart, when set, is invoked after the allowance check decides
	// an approval transaction is needed and before it is submitted.
	OnApprovalStart func()
}

// NewApprovalManager returns a manager over the given registry and session.
func NewApprovalManager(chains types.ChainRegistry, session types.WalletSession, logger *logrus.Logger) *ApprovalManager {
	return &ApprovalManager{
		logger:  logger,
		chains:  chains,
		session: session,
	}
}

// EnsureAllowance makes sure the adapter on the given chain may spend the
// required amount on behalf of owner. When the current allowance falls short
// it submits an approval for exactly the required amount and waits for the
// receipt.
func (m *ApprovalManager) EnsureAllowance(
	ctx context.Context,
	key types.ChainKey,
	owner common.Address,
	required *big.Int,
) (ApprovalOutcome, error) {
	chain := m.chains.Get(key)
	if chain == nil {
		return OutcomeSufficient, errors.Wrapf(commonerrors.ErrChainNotRegistered, "chain %s", key)
	}

	allowance, err := chain.Allowance(ctx, owner)
	if err != nil {
		return OutcomeSufficient, errors.Wrap(err, "failed to read allowance")
	}

	if allowance.Cmp(required) >= 0 {
		m.logger.WithFields(logrus.Fields{
			"chain":     key,
			"allowance": allowance.String(),
			"required":  required.String(),
		}).Debug("existing allowance is sufficient")
		return OutcomeSufficient, nil
	}

	if m.OnApprovalStart != nil {
		m.OnApprovalStart()
	}

	if err = m.session.Authorize(types.ActionApproveToken); err != nil {
		return OutcomeSufficient, err
	}

	tx, err := chain.Approve(ctx, required)
	if err != nil {
		return OutcomeSufficient, errors.Wrap(err, "failed to submit approval")
	}

	m.logger.WithFields(logrus.Fields{
		"chain":  key,
		"txHash": tx.Hash,
		"amount": required.String(),
	}).Info("approval submitted")

	status, err := chain.WaitTransactionConfirmation(ctx, tx)
	if err != nil {
		return OutcomeSufficient, errors.Wrap(err, "failed waiting for approval confirmation")
	}
	if status != types.TxDone {
		return OutcomeSufficient, errors.Errorf("approval transaction %s reverted", tx.Hash)
	}

	return OutcomeApproved, nil
}
