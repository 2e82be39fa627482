package bridge

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/common/units"
	"github.com/monbridgedex/bridge-lib/notifications"
	"github.com/monbridgedex/bridge-lib/registry"
)

const (
	defaultSettleDelay  = 3 * time.Second
	defaultRefreshDelay = 2 * time.Second

	nativeDecimals = 18
)

// Result is the outcome of a bridge attempt.
type Result struct {
	State  State
	TxHash string
	Err    error

	// UserMessage is the human-readable failure description, empty on
	// success.
	UserMessage string
}

// Orchestrator drives a bridge attempt end to end: input validation, chain
// alignment, balance and fee checks, allowance, submission and receipt
// confirmation. A single attempt runs at a time; concurrent calls are
// rejected, never queued.
type Orchestrator struct {
	logger    *logrus.Logger
	chains    types.ChainRegistry
	session   types.WalletSession
	store     *notifications.Store
	quoter    *Quoter
	approvals *ApprovalManager

	settleDelay  time.Duration
	refreshDelay time.Duration
	onState      func(State)
	refresh      func(keys ...types.ChainKey)

	inFlight atomic.Bool // single-flight guard for Bridge
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStateObserver registers a callback invoked on every phase change.
func WithStateObserver(fn func(State)) Option {
	return func(o *Orchestrator) { o.onState = fn }
}

// WithBalanceRefresher registers a callback asked to re-read balances on the
// named chains after a confirmed submission.
func WithBalanceRefresher(fn func(keys ...types.ChainKey)) Option {
	return func(o *Orchestrator) { o.refresh = fn }
}

// WithSettleDelay overrides the pause before a settled attempt returns to
// idle.
func WithSettleDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.settleDelay = d }
}

// WithRefreshDelay overrides the pause before the post-confirmation balance
// refresh.
func WithRefreshDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.refreshDelay = d }
}

// NewOrchestrator wires an orchestrator over the given collaborators.
func NewOrchestrator(
	chains types.ChainRegistry,
	session types.WalletSession,
	store *notifications.Store,
	logger *logrus.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		logger:       logger,
		chains:       chains,
		session:      session,
		store:        store,
		quoter:       NewQuoter(chains, logger),
		approvals:    NewApprovalManager(chains, session, logger),
		settleDelay:  defaultSettleDelay,
		refreshDelay: defaultRefreshDelay,
	}

	for _, opt := range opts {
		opt(o)
	}

	o.approvals.OnApprovalStart = func() { o.setState(StateApproving) }

	return o
}

// InProgress reports whether a bridge attempt is currently running or
// settling.
func (o *Orchestrator) InProgress() bool {
	return o.inFlight.Load()
}

// Bridge runs one bridge attempt for the given route and decimal amount.
// While an attempt is running or settling, further calls return
// ErrBridgeInProgress. The attempt stays in its settled phase for the settle
// delay before the orchestrator accepts the next one.
func (o *Orchestrator) Bridge(ctx context.Context, route types.BridgeRoute, amount string) (*Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, commonerrors.ErrBridgeInProgress
	}

	result := o.run(ctx, route, amount)

	if result.State.Settled() {
		o.setState(result.State)
		time.AfterFunc(o.settleDelay, func() {
			o.setState(StateIdle)
			o.inFlight.Store(false)
		})
	} else {
		// Attempts stopped before chain alignment return to idle at once.
		o.setState(StateIdle)
		o.inFlight.Store(false)
	}

	return result, result.Err
}

// run walks the attempt through its phases and returns the outcome. The
// single-flight guard and settle transition are the caller's concern.
func (o *Orchestrator) run(ctx context.Context, route types.BridgeRoute, amount string) *Result {
	o.setState(StateValidatingInput)

	if !o.session.Connected() {
		return &Result{State: StateIdle, Err: commonerrors.ErrWalletNotConnected}
	}
	if err := route.Validate(); err != nil {
		return &Result{State: StateIdle, Err: err}
	}
	if !units.IsPositiveDecimal(amount) {
		return &Result{State: StateIdle, Err: errors.Errorf("amount %q is not a positive decimal", amount)}
	}

	source, err := registry.Config(route.From)
	if err != nil {
		return &Result{State: StateIdle, Err: err}
	}
	destination, err := registry.Config(route.To)
	if err != nil {
		return &Result{State: StateIdle, Err: err}
	}

	// Chain alignment happens before anything is recorded: a declined or
	// failed switch leaves no notification behind.
	o.setState(StateCheckingChain)

	if o.session.CurrentChainID() != source.ChainID {
		o.setState(StateSwitchingChain)

		if err = o.session.SwitchChain(ctx, source); err != nil {
			if errors.Is(err, commonerrors.ErrUserRejected) {
				o.logger.WithField("chain", source.Name).Info("chain switch declined")
				return &Result{State: StateIdle, Err: err}
			}
			return &Result{State: StateIdle, Err: err}
		}

		if o.session.CurrentChainID() != source.ChainID {
			return &Result{State: StateIdle, Err: commonerrors.ErrSwitchVerification}
		}
	}

	account := o.session.CurrentAccount()
	chain := o.chains.Get(route.From)
	if chain == nil {
		return o.fail(route, source, destination, amount, "",
			errors.Wrapf(commonerrors.ErrChainNotRegistered, "chain %s", route.From))
	}

	// From here on every failure is recorded as a FAILED notification.
	balance, decimals, err := chain.TokenBalance(ctx, account)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}

	amountLD, err := units.ParseUnits(amount, decimals)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}

	if balance.Cmp(amountLD) < 0 {
		err = commonerrors.WithUserMessage(commonerrors.ErrInsufficientBalance,
			"Insufficient balance: You have %s %s but need %s %s",
			units.FormatFixed(balance, decimals, 4), source.TokenSymbol,
			units.FormatFixed(amountLD, decimals, 4), source.TokenSymbol,
		)
		return o.fail(route, source, destination, amount, "", err)
	}

	o.setState(StateQuoting)

	fee, descriptor, err := o.quoter.Quote(ctx, route, amountLD, account)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}

	nativeBalance, err := chain.NativeBalance(ctx, account)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}
	if nativeBalance.Cmp(fee.NativeFee) < 0 {
		err = commonerrors.WithUserMessage(commonerrors.ErrInsufficientGas,
			"Insufficient gas: You need %s %s for fees but only have %s %s",
			units.FormatFixed(fee.NativeFee, nativeDecimals, 6), source.NativeSymbol,
			units.FormatFixed(nativeBalance, nativeDecimals, 6), source.NativeSymbol,
		)
		return o.fail(route, source, destination, amount, "", err)
	}

	o.setState(StateCheckingApproval)

	outcome, err := o.approvals.EnsureAllowance(ctx, route.From, account, amountLD)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}
	if outcome == OutcomeApproved {
		o.logger.WithField("chain", route.From).Info("allowance granted for transfer")
	}

	o.setState(StateSubmitting)

	if err = o.session.Authorize(types.ActionSendTransaction); err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}

	tx, err := chain.SendBridge(ctx, descriptor, fee)
	if err != nil {
		return o.fail(route, source, destination, amount, "", err)
	}

	// Recorded the moment the hash exists, before the receipt arrives.
	o.store.Add(o.newNotification(route, source, destination, types.StatusConfirming, tx.Hash, amount, ""))

	o.setState(StateConfirming)

	status, err := chain.WaitTransactionConfirmation(ctx, tx)
	if err != nil {
		return o.fail(route, source, destination, amount, tx.Hash, err)
	}
	if status != types.TxDone {
		return o.fail(route, source, destination, amount, tx.Hash,
			errors.Errorf("transaction %s reverted on chain", tx.Hash))
	}

	o.store.UpdateStatus(tx.Hash, types.StatusInflight)

	if o.refresh != nil {
		// Source balance moves once the transfer is mined; give the RPC node
		// a moment to reflect it.
		time.AfterFunc(o.refreshDelay, func() { o.refresh(route.From) })
	}

	o.logger.WithFields(logrus.Fields{
		"txHash": tx.Hash,
		"from":   route.From,
		"to":     route.To,
		"amount": amount,
	}).Info("bridge transaction confirmed on source chain")

	return &Result{State: StateSettledSuccess, TxHash: tx.Hash}
}

// fail records the failure as a notification and builds the failure result.
// With a transaction hash the existing entry is marked FAILED; without one a
// placeholder entry is created so the attempt still shows up in history.
func (o *Orchestrator) fail(
	route types.BridgeRoute,
	source, destination *types.ChainConfig,
	amount, txHash string,
	err error,
) *Result {
	message := commonerrors.UserMessage(err)

	o.logger.WithError(err).WithFields(logrus.Fields{
		"from":   route.From,
		"to":     route.To,
		"txHash": txHash,
	}).Error("bridge attempt failed")

	if txHash != "" {
		o.store.UpdateError(txHash, message)
	} else {
		placeholder := types.PlaceholderNoTxPrefix + uuid.NewString()
		o.store.Add(o.newNotification(route, source, destination, types.StatusFailed, placeholder, amount, message))
	}

	return &Result{
		State:       StateSettledFailure,
		TxHash:      txHash,
		Err:         err,
		UserMessage: message,
	}
}

func (o *Orchestrator) newNotification(
	route types.BridgeRoute,
	source, destination *types.ChainConfig,
	status types.MessageStatus,
	txHash, amount, errorMessage string,
) types.BridgeNotification {
	return types.BridgeNotification{
		ID:           uuid.NewString(),
		FromChain:    route.From,
		ToChain:      route.To,
		FromLogo:     source.Logo,
		ToLogo:       destination.Logo,
		FromName:     source.Name,
		ToName:       destination.Name,
		Status:       status,
		TxHash:       txHash,
		Amount:       amount,
		Timestamp:    time.Now(),
		ErrorMessage: errorMessage,
	}
}

func (o *Orchestrator) setState(state State) {
	if o.onState != nil {
		o.onState(state)
	}
}
