package chainmanager

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

// fakeReader is a minimal TokenReader for wiring tests.
type fakeReader struct{}

func (fakeReader) TokenBalance(_ context.Context, _ common.Address) (*big.Int, uint8, error) {
	return big.NewInt(7), 18, nil
}

func (fakeReader) NativeBalance(_ context.Context, _ common.Address) (*big.Int, error) {
	return big.NewInt(3), nil
}

func (fakeReader) Allowance(_ context.Context, _ common.Address) (*big.Int, error) {
	return big.NewInt(1), nil
}

func TestChainMissingCapabilities(t *testing.T) {
	chain := NewChainBuilder(&types.ChainConfig{Key: "monad"}).Build()
	ctx := context.Background()

	_, _, err := chain.TokenBalance(ctx, common.Address{})
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = chain.NativeBalance(ctx, common.Address{})
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = chain.Allowance(ctx, common.Address{})
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = chain.QuoteSend(ctx, &types.SendDescriptor{})
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = chain.Approve(ctx, big.NewInt(1))
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = chain.SendBridge(ctx, &types.SendDescriptor{}, &types.FeeQuote{})
	require.ErrorIs(t, err, ErrNotImplemented)

	status, err := chain.WaitTransactionConfirmation(ctx, &types.Transaction{})
	require.ErrorIs(t, err, ErrNotImplemented)
	require.Equal(t, types.TxFailed, status)

	// Without a configured closer there is nothing to release.
	chain.Close()
}

func TestChainBuilderWiresReader(t *testing.T) {
	chain := NewChainBuilder(&types.ChainConfig{Key: "monad"}).
		WithTokenReader(fakeReader{}).
		Build()

	balance, decimals, err := chain.TokenBalance(context.Background(), common.Address{})
	require.NoError(t, err)
	require.Equal(t, int64(7), balance.Int64())
	require.Equal(t, uint8(18), decimals)
}

// fakeCloser records teardown calls.
type fakeCloser struct {
	closed int
}

func (c *fakeCloser) Close() { c.closed++ }

func TestChainBuilderWiresCloser(t *testing.T) {
	closer := &fakeCloser{}
	chain := NewChainBuilder(&types.ChainConfig{Key: "monad"}).
		WithChainCloser(closer).
		Build()

	chain.Close()
	require.Equal(t, 1, closer.closed)
}

// fakeFactory builds reader-only chains for registry tests.
type fakeFactory struct {
	created int
	closers []*fakeCloser
}

func (f *fakeFactory) CreateChain(_ context.Context, config *types.ChainConfig, _ *logrus.Logger) (types.BridgeChain, error) {
	f.created++
	closer := &fakeCloser{}
	f.closers = append(f.closers, closer)
	return NewChainBuilder(config).WithTokenReader(fakeReader{}).WithChainCloser(closer).Build(), nil
}

func TestRegistryAddGetRemove(t *testing.T) {
	factory := &fakeFactory{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	reg := NewChainRegistry(factory, logger)
	require.Nil(t, reg.Get("monad"))

	require.NoError(t, reg.Add(context.Background(), &types.ChainConfig{Key: "monad"}))
	require.Equal(t, 1, factory.created)
	require.NotNil(t, reg.Get("monad"))

	reg.Remove("monad")
	require.Nil(t, reg.Get("monad"))
	require.Equal(t, 1, factory.closers[0].closed)
}

func TestRegistryRejectsDuplicateChain(t *testing.T) {
	factory := &fakeFactory{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	reg := NewChainRegistry(factory, logger)
	require.NoError(t, reg.Add(context.Background(), &types.ChainConfig{Key: "monad"}))

	err := reg.Add(context.Background(), &types.ChainConfig{Key: "monad"})
	require.ErrorIs(t, err, commonerrors.ErrChainExists)
	require.Equal(t, 1, factory.created)
}

func TestRegistryRejectsInvalidKey(t *testing.T) {
	factory := &fakeFactory{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	reg := NewChainRegistry(factory, logger)
	require.ErrorIs(t, reg.Add(context.Background(), nil), commonerrors.ErrInvalidChainKey)
	require.ErrorIs(t, reg.Add(context.Background(), &types.ChainConfig{}), commonerrors.ErrInvalidChainKey)
	require.Zero(t, factory.created)
}

func TestRegistryRequiresFactory(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	reg := NewChainRegistry(nil, logger)
	err := reg.Add(context.Background(), &types.ChainConfig{Key: "monad"})
	require.ErrorIs(t, err, commonerrors.ErrFactoryNotProvided)
}
