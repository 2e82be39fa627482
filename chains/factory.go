package chains

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/chains/evm"
	"github.com/monbridgedex/bridge-lib/chains/evm/signer"
	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	commontypes "github.com/monbridgedex/bridge-lib/common/types"
)

// ChainConstructor represents a function that constructs a new chain instance.
type ChainConstructor func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.BridgeChain, error)

// ChainFactory defines the interface for chain creation.
type ChainFactory interface {
	// RegisterConstructor registers a new chain constructor for a given chain type.
	RegisterConstructor(chainType string, constructor ChainConstructor)

	// CreateChain creates a new chain instance based on the configuration.
	CreateChain(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.BridgeChain, error)
}

type chainFactory struct {
	// constructors stores the mapping of chain types to their constructors.
	constructors map[string]ChainConstructor
	// constructorsMutex protects access to the constructors map.
	constructorsMutex sync.RWMutex
}

// NewChainFactory creates a new chain factory. All deployment entries are EVM
// chains; the given signer is shared by every chain the factory creates and
// may be nil for read-only use.
func NewChainFactory(chainSigner signer.Signer) ChainFactory {
	factory := &chainFactory{
		constructors: make(map[string]ChainConstructor),
	}

	factory.RegisterConstructor(commontypes.EVM.String(), func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.BridgeChain, error) {
		return evm.NewEvmChain(ctx, config, chainSigner, logger)
	})

	return factory
}

// RegisterConstructor registers a new chain constructor.
func (f *chainFactory) RegisterConstructor(chainType string, constructor ChainConstructor) {
	f.constructorsMutex.Lock()
	defer f.constructorsMutex.Unlock()

	f.constructors[chainType] = constructor
}

// CreateChain creates a new chain instance based on the configuration.
func (f *chainFactory) CreateChain(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.BridgeChain, error) {
	chainType := commontypes.ParseChainType(config.Type.String())
	if chainType == commontypes.UNKNOWN {
		return nil, errors.Wrapf(commonerrors.ErrInvalidChainType, "chain type %q", config.Type)
	}

	f.constructorsMutex.RLock()
	constructor, exists := f.constructors[chainType.String()]
	f.constructorsMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(commonerrors.ErrInvalidChainType, "no constructor registered for %s", chainType)
	}

	return constructor(ctx, config, logger)
}
