package chainmanager

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

type blockchainRegistry struct {
	logger      *logrus.Logger
	chains      map[types.ChainKey]types.BridgeChain
	chainsMutex sync.RWMutex
	factory     interface {
		CreateChain(context.Context, *types.ChainConfig, *logrus.Logger) (types.BridgeChain, error)
	}
	factoryMutex sync.RWMutex
}

// NewChainRegistry creates a chain registry that builds chain instances via
// the provided factory.
func NewChainRegistry(factory interface {
	CreateChain(context.Context, *types.ChainConfig, *logrus.Logger) (types.BridgeChain, error)
}, logger *logrus.Logger) types.ChainRegistry {
	return &blockchainRegistry{
		chains:  make(map[types.ChainKey]types.BridgeChain),
		factory: factory,
		logger:  logger,
	}
}

func (r *blockchainRegistry) Add(ctx context.Context, config *types.ChainConfig) error {
	if config == nil || config.Key == "" {
		return commonerrors.ErrInvalidChainKey
	}

	r.factoryMutex.RLock()
	factory := r.factory
	r.factoryMutex.RUnlock()

	if factory == nil {
		return commonerrors.ErrFactoryNotProvided
	}

	r.chainsMutex.RLock()
	_, exists := r.chains[config.Key]
	r.chainsMutex.RUnlock()

	if exists {
		return errors.Wrapf(commonerrors.ErrChainExists, "chain %s", config.Key)
	}

	chain, err := factory.CreateChain(ctx, config, r.logger)
	if err != nil {
		return err
	}

	r.chainsMutex.Lock()
	if _, exists := r.chains[config.Key]; exists {
		r.chainsMutex.Unlock()
		chain.Close()
		return errors.Wrapf(commonerrors.ErrChainExists, "chain %s", config.Key)
	}
	r.chains[config.Key] = chain
	r.chainsMutex.Unlock()

	return nil
}

func (r *blockchainRegistry) Get(key types.ChainKey) types.BridgeChain {
	r.chainsMutex.RLock()
	chain := r.chains[key]
	r.chainsMutex.RUnlock()
	return chain
}

func (r *blockchainRegistry) Remove(key types.ChainKey) {
	r.chainsMutex.Lock()
	chain := r.chains[key]
	delete(r.chains, key)
	r.chainsMutex.Unlock()

	if chain != nil {
		chain.Close()
	}
}
