package bridge

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/chains/evm/utils"
	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/registry"
)

// Quoter builds send descriptors and obtains messaging fee quotes from the
// source-chain adapter.
type Quoter struct {
	logger *logrus.Logger
	chains types.ChainRegistry
}

// NewQuoter returns a quoter over the given chain registry.
func NewQuoter(chains types.ChainRegistry, logger *logrus.Logger) *Quoter {
	return &Quoter{
		logger: logger,
		chains: chains,
	}
}

// Quote builds the send descriptor for the route and asks the source adapter
// for the messaging fee. The descriptor carries the default executor gas
// option and delivers the full amount to the sender's own address on the
// destination. The returned descriptor must be reused verbatim for the send
// so the quoted fee stays valid.
//
// Preconditions: a positive raw amount and a non-zero account. Either missing
// yields ErrQuoteUnavailable instead of a chain call.
func (q *Quoter) Quote(
	ctx context.Context,
	route types.BridgeRoute,
	rawAmount *big.Int,
	account common.Address,
) (*types.FeeQuote, *types.SendDescriptor, error) {
	if rawAmount == nil || rawAmount.Sign() <= 0 {
		return nil, nil, errors.Wrap(commonerrors.ErrQuoteUnavailable, "amount must be positive")
	}
	if account == (common.Address{}) {
		return nil, nil, errors.Wrap(commonerrors.ErrQuoteUnavailable, "no account connected")
	}
	if err := route.Validate(); err != nil {
		return nil, nil, err
	}

	destination, err := registry.Config(route.To)
	if err != nil {
		return nil, nil, err
	}

	chain := q.chains.Get(route.From)
	if chain == nil {
		return nil, nil, errors.Wrapf(commonerrors.ErrChainNotRegistered, "chain %s", route.From)
	}

	descriptor := types.NewSendDescriptor(
		destination.EndpointID,
		account,
		rawAmount,
		utils.EncodeExecutorOptions(utils.DefaultExecutorGasLimit),
	)

	fee, err := chain.QuoteSend(ctx, descriptor)
	if err != nil {
		return nil, nil, err
	}

	q.logger.WithFields(logrus.Fields{
		"from":      route.From,
		"to":        route.To,
		"amountLD":  rawAmount.String(),
		"nativeFee": fee.NativeFee.String(),
	}).Debug("obtained messaging fee quote")

	return fee, descriptor, nil
}
