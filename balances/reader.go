package balances

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/common/units"
	"github.com/monbridgedex/bridge-lib/registry"
)

const displayPlaces = 4

// Balance is a chain read that may have failed. A failed read renders as the
// unknown sentinel instead of a stale or zero value.
type Balance struct {
	Raw      *big.Int
	Decimals uint8
	Symbol   string
	Known    bool
}

// Display renders the balance rounded to four decimal places with its symbol,
// or "--" when the read failed.
func (b Balance) Display() string {
	if !b.Known || b.Raw == nil {
		return "--"
	}

	return units.FormatFixed(b.Raw, b.Decimals, displayPlaces) + " " + b.Symbol
}

// Reader reads token balances, native balances and allowances from registered
// chains. RPC failures degrade to unknown balances rather than errors, so a
// flaky endpoint never shows a false zero.
type Reader struct {
	logger *logrus.Logger
	chains types.ChainRegistry
}

// NewReader returns a reader over the given chain registry.
func NewReader(chains types.ChainRegistry, logger *logrus.Logger) *Reader {
	return &Reader{
		logger: logger,
		chains: chains,
	}
}

// TokenBalance reads the bridged token balance of account on the given chain.
func (r *Reader) TokenBalance(ctx context.Context, key types.ChainKey, account common.Address) Balance {
	config, err := registry.Config(key)
	if err != nil {
		r.logger.WithError(err).WithField("chain", key).Warn("token balance read for unknown chain")
		return Balance{}
	}

	balance := Balance{Symbol: config.TokenSymbol}

	chain := r.chains.Get(key)
	if chain == nil {
		return balance
	}

	raw, decimals, err := chain.TokenBalance(ctx, account)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"chain":   key,
			"account": account.Hex(),
		}).Warn("token balance read failed")
		return balance
	}

	balance.Raw = raw
	balance.Decimals = decimals
	balance.Known = true

	return balance
}

// NativeBalance reads the native currency balance of account on the given
// chain.
func (r *Reader) NativeBalance(ctx context.Context, key types.ChainKey, account common.Address) Balance {
	config, err := registry.Config(key)
	if err != nil {
		r.logger.WithError(err).WithField("chain", key).Warn("native balance read for unknown chain")
		return Balance{}
	}

	balance := Balance{Symbol: config.NativeSymbol, Decimals: 18}

	chain := r.chains.Get(key)
	if chain == nil {
		return balance
	}

	raw, err := chain.NativeBalance(ctx, account)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"chain":   key,
			"account": account.Hex(),
		}).Warn("native balance read failed")
		return balance
	}

	balance.Raw = raw
	balance.Known = true

	return balance
}

// RouteBalances reads the token balances on both ends of a route
// concurrently.
func (r *Reader) RouteBalances(ctx context.Context, route types.BridgeRoute, account common.Address) (from, to Balance) {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		from = r.TokenBalance(groupCtx, route.From, account)
		return nil
	})
	group.Go(func() error {
		to = r.TokenBalance(groupCtx, route.To, account)
		return nil
	})

	_ = group.Wait()

	return from, to
}

// Allowance reads the adapter allowance granted by owner on the given chain.
func (r *Reader) Allowance(ctx context.Context, key types.ChainKey, owner common.Address) (*big.Int, error) {
	chain := r.chains.Get(key)
	if chain == nil {
		return nil, errors.Wrapf(commonerrors.ErrChainNotRegistered, "chain %s", key)
	}

	return chain.Allowance(ctx, owner)
}
