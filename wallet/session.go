package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/chains/evm/signer"
	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

const (
	switchVerifyAttempts = 5
	switchVerifyDelay    = 500 * time.Millisecond
)

// PromptFunc models the user-facing confirmation dialog for wallet
// interactions. Returning commonerrors.ErrUserRejected declines the action;
// a nil PromptFunc approves everything.
type PromptFunc func(action types.WalletAction) error

// ConnectionStore persists the last established session so it can be restored
// on the next start.
type ConnectionStore interface {
	SaveWalletConnection(address string) error
	LoadWalletConnection() (address string, connected bool, err error)
	ClearWalletConnection() error
}

// Session is a signer-backed wallet session. It tracks the connected chain,
// performs verified chain switches and persists the connection state.
type Session struct {
	logger *logrus.Logger
	signer signer.Signer
	prompt PromptFunc
	store  ConnectionStore

	mutex     sync.RWMutex      // protects the fields below
	client    *ethclient.Client // client for the connected chain
	chainID   uint64            // chain the wallet is currently on
	connected bool
	known     map[uint64]*types.ChainConfig // networks registered in the wallet

	subMutex    sync.RWMutex
	accountSubs []func(common.Address)
	chainSubs   []func(uint64)
}

// NewSession dials the initial chain and returns a disconnected session on it.
//
// Parameters:
// - ctx is the context for dialing the initial RPC endpoint
// - chainSigner holds the account key backing the session
// - initial is the chain the wallet starts on
// - store persists the connection state, may be nil
// - prompt confirms wallet interactions, may be nil
// - logger is the logger for the session
func NewSession(
	ctx context.Context,
	chainSigner signer.Signer,
	initial *types.ChainConfig,
	store ConnectionStore,
	prompt PromptFunc,
	logger *logrus.Logger,
) (*Session, error) {
	if chainSigner == nil {
		return nil, errors.New("signer not provided")
	}
	if initial == nil {
		return nil, commonerrors.ErrInvalidConfig
	}

	client, err := ethclient.DialContext(ctx, initial.RpcUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s rpc", initial.Name)
	}

	s := &Session{
		logger:  logger,
		signer:  chainSigner,
		prompt:  prompt,
		store:   store,
		client:  client,
		chainID: initial.ChainID,
		known:   map[uint64]*types.ChainConfig{initial.ChainID: initial},
	}

	s.restore()

	return s, nil
}

// restore re-establishes a previously persisted connection.
func (s *Session) restore() {
	if s.store == nil {
		return
	}

	address, connected, err := s.store.LoadWalletConnection()
	if err != nil {
		s.logger.WithError(err).Warn("failed to load persisted wallet connection")
		return
	}
	if !connected {
		return
	}

	// Only restore when the persisted address still matches the signer key.
	if common.HexToAddress(address) != s.signer.Address() {
		return
	}

	s.mutex.Lock()
	s.connected = true
	s.mutex.Unlock()

	s.logger.WithField("address", address).Info("restored wallet connection")
}

// Connect establishes the session and returns the active account.
func (s *Session) Connect(ctx context.Context) (common.Address, error) {
	if err := s.Authorize(types.ActionConnect); err != nil {
		return common.Address{}, err
	}

	address := s.signer.Address()

	s.mutex.Lock()
	alreadyConnected := s.connected
	s.connected = true
	s.mutex.Unlock()

	if s.store != nil {
		if err := s.store.SaveWalletConnection(address.Hex()); err != nil {
			s.logger.WithError(err).Warn("failed to persist wallet connection")
		}
	}

	if !alreadyConnected {
		s.notifyAccountsChanged(address)
	}

	s.logger.WithField("address", address.Hex()).Info("wallet connected")

	return address, nil
}

// Disconnect tears down the session and clears the persisted connection.
func (s *Session) Disconnect() {
	s.mutex.Lock()
	wasConnected := s.connected
	s.connected = false
	s.mutex.Unlock()

	if s.store != nil {
		if err := s.store.ClearWalletConnection(); err != nil {
			s.logger.WithError(err).Warn("failed to clear persisted wallet connection")
		}
	}

	if wasConnected {
		s.notifyAccountsChanged(common.Address{})
	}
}

// Connected reports whether a session is established.
func (s *Session) Connected() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.connected
}

// CurrentAccount returns the active account, or the zero address when
// disconnected.
func (s *Session) CurrentAccount() common.Address {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.connected {
		return common.Address{}
	}

	return s.signer.Address()
}

// CurrentChainID returns the chain id the wallet is currently on.
func (s *Session) CurrentChainID() uint64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.chainID
}

// SwitchChain moves the wallet to the target chain. Unknown networks are
// added first, mirroring the add-then-retry behavior of browser wallets.
// The new endpoint must report the expected chain id before the switch is
// considered complete.
func (s *Session) SwitchChain(ctx context.Context, target *types.ChainConfig) error {
	if target == nil {
		return commonerrors.ErrInvalidConfig
	}

	s.mutex.RLock()
	current := s.chainID
	_, knownChain := s.known[target.ChainID]
	s.mutex.RUnlock()

	if current == target.ChainID {
		return nil
	}

	if !knownChain {
		if err := s.addChain(target); err != nil {
			return err
		}
	}

	if err := s.Authorize(types.ActionSwitchChain); err != nil {
		return err
	}

	client, err := ethclient.DialContext(ctx, target.RpcUrl)
	if err != nil {
		return errors.Wrapf(err, "failed to dial %s rpc", target.Name)
	}

	if err = s.verifyChainID(ctx, client, target.ChainID); err != nil {
		client.Close()
		return err
	}

	s.mutex.Lock()
	previous := s.client
	s.client = client
	s.chainID = target.ChainID
	s.mutex.Unlock()

	if previous != nil {
		previous.Close()
	}

	s.logger.WithFields(logrus.Fields{
		"chain":   target.Name,
		"chainID": target.ChainID,
	}).Info("wallet switched chain")

	s.notifyChainChanged(target.ChainID)

	return nil
}

// addChain registers a network the wallet does not know yet.
func (s *Session) addChain(target *types.ChainConfig) error {
	if err := s.Authorize(types.ActionAddChain); err != nil {
		return err
	}

	s.mutex.Lock()
	s.known[target.ChainID] = target
	s.mutex.Unlock()

	s.logger.WithFields(logrus.Fields{
		"chain":   target.Name,
		"chainID": target.ChainID,
	}).Info("network added to wallet")

	return nil
}

// verifyChainID confirms the endpoint reports the expected chain id, retrying
// to ride out endpoints that lag behind a switch.
func (s *Session) verifyChainID(ctx context.Context, client *ethclient.Client, expected uint64) error {
	err := retry.Do(
		func() error {
			reported, err := client.ChainID(ctx)
			if err != nil {
				return err
			}
			if reported.Uint64() != expected {
				return errors.Wrapf(
					commonerrors.ErrSwitchVerification,
					"endpoint reports chain id %d, expected %d", reported.Uint64(), expected,
				)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(switchVerifyAttempts),
		retry.Delay(switchVerifyDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, commonerrors.ErrSwitchVerification) {
			return err
		}
		return &commonerrors.TransportError{Err: err}
	}

	return nil
}

// Authorize asks the user to approve a wallet interaction.
func (s *Session) Authorize(action types.WalletAction) error {
	if s.prompt == nil {
		return nil
	}

	return s.prompt(action)
}

// OnAccountsChanged registers a callback invoked when the active account
// changes.
func (s *Session) OnAccountsChanged(fn func(common.Address)) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()

	s.accountSubs = append(s.accountSubs, fn)
}

// OnChainChanged registers a callback invoked after the wallet moves to a
// different chain.
func (s *Session) OnChainChanged(fn func(uint64)) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()

	s.chainSubs = append(s.chainSubs, fn)
}

func (s *Session) notifyAccountsChanged(account common.Address) {
	s.subMutex.RLock()
	subs := make([]func(common.Address), len(s.accountSubs))
	copy(subs, s.accountSubs)
	s.subMutex.RUnlock()

	for _, fn := range subs {
		fn(account)
	}
}

func (s *Session) notifyChainChanged(chainID uint64) {
	s.subMutex.RLock()
	subs := make([]func(uint64), len(s.chainSubs))
	copy(subs, s.chainSubs)
	s.subMutex.RUnlock()

	for _, fn := range subs {
		fn(chainID)
	}
}

// Close releases the RPC client held by the session.
func (s *Session) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}
