package bridge

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/registry"
)

func TestQuoteBuildsDescriptor(t *testing.T) {
	chain := newMockChain()
	chain.fee = &types.FeeQuote{NativeFee: big.NewInt(42), LzTokenFee: big.NewInt(0)}

	chains := newStubChainRegistry()
	chains.chains[registry.Monad] = chain

	quoter := NewQuoter(chains, testLogger())

	amount := big.NewInt(1_000_000)
	fee, desc, err := quoter.Quote(context.Background(), testRoute, amount, testAccount)
	require.NoError(t, err)
	require.Equal(t, int64(42), fee.NativeFee.Int64())

	require.Equal(t, registry.MustConfig(registry.Sepolia).EndpointID, desc.DstEid)
	require.Equal(t, amount, desc.AmountLD)
	require.Equal(t, amount.String(), desc.MinAmountLD.String())
	require.Len(t, desc.ExtraOptions, 34)
	require.Empty(t, desc.ComposeMsg)
	require.Empty(t, desc.OftCmd)

	// Recipient is the sender's own address, left-padded to 32 bytes.
	require.Equal(t, testAccount.Bytes(), desc.To[12:])
	require.Equal(t, make([]byte, 12), desc.To[:12])
}

func TestQuotePreconditions(t *testing.T) {
	chains := newStubChainRegistry()
	chains.chains[registry.Monad] = newMockChain()
	quoter := NewQuoter(chains, testLogger())

	_, _, err := quoter.Quote(context.Background(), testRoute, nil, testAccount)
	require.ErrorIs(t, err, commonerrors.ErrQuoteUnavailable)

	_, _, err = quoter.Quote(context.Background(), testRoute, big.NewInt(0), testAccount)
	require.ErrorIs(t, err, commonerrors.ErrQuoteUnavailable)

	_, _, err = quoter.Quote(context.Background(), testRoute, big.NewInt(1), common.Address{})
	require.ErrorIs(t, err, commonerrors.ErrQuoteUnavailable)
}

func TestQuoteUnregisteredChain(t *testing.T) {
	quoter := NewQuoter(newStubChainRegistry(), testLogger())

	_, _, err := quoter.Quote(context.Background(), testRoute, big.NewInt(1), testAccount)
	require.ErrorIs(t, err, commonerrors.ErrChainNotRegistered)
}
