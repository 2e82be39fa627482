package bridge

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/common/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

var testAccount = common.HexToAddress("0x00000000000000000000000000000000000000AA")

// mockChain is a scripted BridgeChain.
type mockChain struct {
	mutex sync.Mutex

	tokenBalance  *big.Int
	decimals      uint8
	nativeBalance *big.Int
	allowance     *big.Int
	fee           *types.FeeQuote

	balanceErr error
	quoteErr   error
	approveErr error
	sendErr    error
	waitStatus types.TransactionStatus
	waitErr    error

	approveCalls int
	sendCalls    int
	sentDesc     *types.SendDescriptor
	sentFee      *types.FeeQuote
}

func newMockChain() *mockChain {
	return &mockChain{
		tokenBalance:  big.NewInt(0),
		decimals:      18,
		nativeBalance: big.NewInt(0),
		allowance:     big.NewInt(0),
		fee:           &types.FeeQuote{NativeFee: big.NewInt(0), LzTokenFee: big.NewInt(0)},
		waitStatus:    types.TxDone,
	}
}

func (c *mockChain) TokenBalance(_ context.Context, _ common.Address) (*big.Int, uint8, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.balanceErr != nil {
		return nil, 0, c.balanceErr
	}
	return new(big.Int).Set(c.tokenBalance), c.decimals, nil
}

func (c *mockChain) NativeBalance(_ context.Context, _ common.Address) (*big.Int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return new(big.Int).Set(c.nativeBalance), nil
}

func (c *mockChain) Allowance(_ context.Context, _ common.Address) (*big.Int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return new(big.Int).Set(c.allowance), nil
}

func (c *mockChain) QuoteSend(_ context.Context, _ *types.SendDescriptor) (*types.FeeQuote, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.quoteErr != nil {
		return nil, c.quoteErr
	}
	return c.fee, nil
}

func (c *mockChain) Approve(_ context.Context, amount *big.Int) (*types.Transaction, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.approveErr != nil {
		return nil, c.approveErr
	}
	c.approveCalls++
	// The adapter allowance reflects the approval once mined.
	c.allowance = new(big.Int).Set(amount)
	return &types.Transaction{Hash: "0xapprove"}, nil
}

func (c *mockChain) SendBridge(_ context.Context, desc *types.SendDescriptor, fee *types.FeeQuote) (*types.Transaction, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.sendErr != nil {
		return nil, c.sendErr
	}
	c.sendCalls++
	c.sentDesc = desc
	c.sentFee = fee
	return &types.Transaction{Hash: "0xbridge"}, nil
}

func (c *mockChain) WaitTransactionConfirmation(_ context.Context, _ *types.Transaction) (types.TransactionStatus, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.waitStatus, c.waitErr
}

func (c *mockChain) Close() {}

// stubChainRegistry is a fixed chain map satisfying types.ChainRegistry.
type stubChainRegistry struct {
	chains map[types.ChainKey]types.BridgeChain
}

func newStubChainRegistry() *stubChainRegistry {
	return &stubChainRegistry{chains: make(map[types.ChainKey]types.BridgeChain)}
}

func (r *stubChainRegistry) Add(_ context.Context, config *types.ChainConfig) error {
	return errors.New("not supported")
}

func (r *stubChainRegistry) Get(key types.ChainKey) types.BridgeChain {
	return r.chains[key]
}

func (r *stubChainRegistry) Remove(key types.ChainKey) {
	delete(r.chains, key)
}

// mockSession is a scripted wallet session.
type mockSession struct {
	mutex sync.Mutex

	connected bool
	account   common.Address
	chainID   uint64

	switchErr    error
	switchCalls  []types.ChainKey
	authorizeErr map[types.WalletAction]error
}

func newMockSession(chainID uint64) *mockSession {
	return &mockSession{
		connected:    true,
		account:      testAccount,
		chainID:      chainID,
		authorizeErr: make(map[types.WalletAction]error),
	}
}

func (s *mockSession) Connect(_ context.Context) (common.Address, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connected = true
	return s.account, nil
}

func (s *mockSession) Connected() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.connected
}

func (s *mockSession) CurrentAccount() common.Address {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.account
}

func (s *mockSession) CurrentChainID() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.chainID
}

func (s *mockSession) SwitchChain(_ context.Context, target *types.ChainConfig) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.switchCalls = append(s.switchCalls, target.Key)
	if s.switchErr != nil {
		return s.switchErr
	}
	s.chainID = target.ChainID
	return nil
}

func (s *mockSession) Authorize(action types.WalletAction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.authorizeErr[action]
}

func (s *mockSession) OnAccountsChanged(func(common.Address)) {}

func (s *mockSession) OnChainChanged(func(uint64)) {}
