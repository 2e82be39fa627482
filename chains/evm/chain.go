package evm

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/chainmanager"
	"github.com/monbridgedex/bridge-lib/chains/evm/generated"
	"github.com/monbridgedex/bridge-lib/chains/evm/signer"
	"github.com/monbridgedex/bridge-lib/common/types"
)

// evm represents the base EVM chain implementation bound to one deployment
// entry: its token contract, its adapter contract, and its RPC endpoint.
type evm struct {
	config *types.ChainConfig // Chain configuration.
	logger *logrus.Logger     // Logger for logging events.

	tokenAddress   common.Address // Token contract address.
	adapterAddress common.Address // OFT adapter contract address.

	erc20ABI   abi.ABI // Parsed token ABI.
	adapterABI abi.ABI // Parsed adapter ABI.

	// Protected fields with their own mutexes.
	clientMutex sync.RWMutex      // Mutex for client.
	client      *ethclient.Client // Ethereum client.

	signerMutex sync.RWMutex  // Mutex for signer.
	signer      signer.Signer // Signer for signing transactions.
}

// NewEvmChain creates a new EVM chain implementation for the configuration.
// A nil signer yields a read-only chain: balance, allowance and quote calls
// work, approval and send submissions return an error.
//
// Parameters:
// - ctx: the context for managing the request.
// - config: the chain configuration.
// - chainSigner: the signer for write operations, may be nil.
// - logger: the logger for logging events.
//
// Returns:
// - types.BridgeChain: a new EVM chain instance.
// - error: an error if any issue occurs during creation.
func NewEvmChain(ctx context.Context, config *types.ChainConfig, chainSigner signer.Signer, logger *logrus.Logger) (types.BridgeChain, error) {
	client, err := ethclient.DialContext(ctx, config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	erc20ABI, err := abi.JSON(strings.NewReader(generated.ERC20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}

	adapterABI, err := abi.JSON(strings.NewReader(generated.OFTAdapterABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse adapter ABI")
	}

	chain := &evm{
		config:         config,
		logger:         logger,
		tokenAddress:   common.HexToAddress(config.Token),
		adapterAddress: common.HexToAddress(config.Adapter),
		erc20ABI:       erc20ABI,
		adapterABI:     adapterABI,
		client:         client,
	}

	builder := chainmanager.NewChainBuilder(config)
	builder.WithTokenReader(chain)
	builder.WithFeeQuoter(chain)
	builder.WithTransactionWatcher(chain)
	builder.WithChainCloser(chain)

	if chainSigner != nil {
		chain.signerMutex.Lock()
		chain.signer = chainSigner
		chain.signerMutex.Unlock()

		builder.WithTokenApprover(chain)
		builder.WithBridgeSender(chain)
	}

	return builder.Build(), nil
}

// Close should be called when the chain is no longer needed. It closes the
// underlying RPC client.
func (e *evm) Close() {
	e.clientMutex.Lock()
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.clientMutex.Unlock()
}

// GetClient returns the Ethereum client.
func (e *evm) GetClient() *ethclient.Client {
	e.clientMutex.RLock()
	defer e.clientMutex.RUnlock()
	return e.client
}
