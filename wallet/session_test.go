package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/monbridgedex/bridge-lib/chains/evm/signer"
	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// rpcServer answers eth_chainId with a fixed chain id.
func rpcServer(t *testing.T, chainID uint64) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "eth_chainId", req.Method)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"0x%x"}`, req.ID, chainID)
	}))
	t.Cleanup(server.Close)

	return server
}

func chainConfig(key types.ChainKey, chainID uint64, rpcURL string) *types.ChainConfig {
	return &types.ChainConfig{
		Key:     key,
		Name:    string(key),
		ChainID: chainID,
		RpcUrl:  rpcURL,
	}
}

// memoryConnectionStore is an in-memory ConnectionStore.
type memoryConnectionStore struct {
	address   string
	connected bool
}

func (s *memoryConnectionStore) SaveWalletConnection(address string) error {
	s.address = address
	s.connected = true
	return nil
}

func (s *memoryConnectionStore) LoadWalletConnection() (string, bool, error) {
	return s.address, s.connected, nil
}

func (s *memoryConnectionStore) ClearWalletConnection() error {
	s.address = ""
	s.connected = false
	return nil
}

func newTestSession(t *testing.T, store ConnectionStore, prompt PromptFunc) *Session {
	t.Helper()

	chainSigner, err := signer.NewSignerFromHex(testPrivateKey)
	require.NoError(t, err)

	initial := chainConfig("monad", 10143, rpcServer(t, 10143).URL)

	session, err := NewSession(context.Background(), chainSigner, initial, store, prompt, testLogger())
	require.NoError(t, err)
	t.Cleanup(session.Close)

	return session
}

func TestConnectPersistsSession(t *testing.T) {
	store := &memoryConnectionStore{}
	session := newTestSession(t, store, nil)

	require.False(t, session.Connected())
	require.Equal(t, common.Address{}, session.CurrentAccount())

	account, err := session.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, session.Connected())
	require.Equal(t, account, session.CurrentAccount())
	require.True(t, store.connected)
	require.Equal(t, account.Hex(), store.address)

	session.Disconnect()
	require.False(t, session.Connected())
	require.False(t, store.connected)
}

func TestSessionRestoresPersistedConnection(t *testing.T) {
	chainSigner, err := signer.NewSignerFromHex(testPrivateKey)
	require.NoError(t, err)

	store := &memoryConnectionStore{address: chainSigner.Address().Hex(), connected: true}
	session := newTestSession(t, store, nil)

	require.True(t, session.Connected())
	require.Equal(t, chainSigner.Address(), session.CurrentAccount())
}

func TestSessionIgnoresForeignPersistedAddress(t *testing.T) {
	store := &memoryConnectionStore{address: "0x0000000000000000000000000000000000000099", connected: true}
	session := newTestSession(t, store, nil)

	require.False(t, session.Connected())
}

func TestSwitchChainSameChainNoOp(t *testing.T) {
	session := newTestSession(t, nil, func(action types.WalletAction) error {
		if action != types.ActionConnect {
			return commonerrors.ErrUserRejected
		}
		return nil
	})

	// No prompt fires because no switch is needed.
	err := session.SwitchChain(context.Background(), chainConfig("monad", 10143, "http://unused"))
	require.NoError(t, err)
	require.Equal(t, uint64(10143), session.CurrentChainID())
}

func TestSwitchChainVerified(t *testing.T) {
	session := newTestSession(t, nil, nil)

	var changed []uint64
	session.OnChainChanged(func(chainID uint64) { changed = append(changed, chainID) })

	target := chainConfig("sepolia", 11155111, rpcServer(t, 11155111).URL)
	require.NoError(t, session.SwitchChain(context.Background(), target))
	require.Equal(t, uint64(11155111), session.CurrentChainID())
	require.Equal(t, []uint64{11155111}, changed)
}

func TestSwitchChainVerificationMismatch(t *testing.T) {
	session := newTestSession(t, nil, nil)

	// Endpoint claims to be a different chain than the config says.
	target := chainConfig("sepolia", 11155111, rpcServer(t, 10143).URL)
	err := session.SwitchChain(context.Background(), target)
	require.ErrorIs(t, err, commonerrors.ErrSwitchVerification)
	require.Equal(t, uint64(10143), session.CurrentChainID())
}

func TestSwitchChainUserRejection(t *testing.T) {
	prompts := []types.WalletAction{}
	session := newTestSession(t, nil, func(action types.WalletAction) error {
		prompts = append(prompts, action)
		if action == types.ActionSwitchChain {
			return commonerrors.ErrUserRejected
		}
		return nil
	})

	target := chainConfig("sepolia", 11155111, rpcServer(t, 11155111).URL)
	err := session.SwitchChain(context.Background(), target)
	require.ErrorIs(t, err, commonerrors.ErrUserRejected)
	require.Equal(t, uint64(10143), session.CurrentChainID())

	// The unknown network triggered an add prompt before the switch prompt.
	require.Equal(t, []types.WalletAction{types.ActionAddChain, types.ActionSwitchChain}, prompts)
}

func TestSwitchChainAddRejection(t *testing.T) {
	session := newTestSession(t, nil, func(action types.WalletAction) error {
		if action == types.ActionAddChain {
			return commonerrors.ErrUserRejected
		}
		return nil
	})

	target := chainConfig("sepolia", 11155111, rpcServer(t, 11155111).URL)
	err := session.SwitchChain(context.Background(), target)
	require.ErrorIs(t, err, commonerrors.ErrUserRejected)
}
