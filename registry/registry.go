// Package registry holds the static per-deployment chain configuration table.
// Pure data: every chain the bridge can use has a complete entry here, and
// there is no discovery of additional chains at runtime.
package registry

import (
	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

const (
	Monad       types.ChainKey = "monad"
	Sepolia     types.ChainKey = "sepolia"
	BaseSepolia types.ChainKey = "baseSepolia"
)

// chainOrder fixes the iteration order of the table.
var chainOrder = []types.ChainKey{Monad, Sepolia, BaseSepolia}

var chains = map[types.ChainKey]types.ChainConfig{
	Monad: {
		Key:          Monad,
		Type:         types.EVM,
		Name:         "Monad",
		TokenSymbol:  "MBD",
		NativeSymbol: "MON",
		Logo:         "https://imagedelivery.net/cBNDGgkrsEA-b_ixIp9SkQ/MON.png/public",
		Adapter:      "0x0657DC3d2b431a1508a8335a4573b723604BFAB1",
		Token:        "0xBCDFD0c227D27D21424f6ff657A095b5978E96C2",
		ChainID:      10143,
		ChainIDHex:   "0x279F",
		RpcUrl:       "https://testnet-rpc.monad.xyz",
		EndpointID:   40204,
		Endpoint:     "0x6C7Ab2202C98C4227C5c46f1417D81144DA716Ff",
	},
	Sepolia: {
		Key:          Sepolia,
		Type:         types.EVM,
		Name:         "Sepolia",
		TokenSymbol:  "MBD",
		NativeSymbol: "ETH",
		Logo:         "https://imagedelivery.net/cBNDGgkrsEA-b_ixIp9SkQ/weth.jpg/public",
		Adapter:      "0x5eBbdAaA2C5715aC0c75cF14A5C92f1C59D3d181",
		Token:        "0x238dcDeBE64335355e4ed336e0a889EA5Cccf4ef",
		ChainID:      11155111,
		ChainIDHex:   "0xAA36A7",
		RpcUrl:       "https://eth-sepolia.public.blastapi.io",
		EndpointID:   40161,
		Endpoint:     "0x6EDCE65403992e310A62460808c4b910D972f10f",
	},
	BaseSepolia: {
		Key:          BaseSepolia,
		Type:         types.EVM,
		Name:         "Base Sepolia",
		TokenSymbol:  "MBD",
		NativeSymbol: "ETH",
		Logo:         "https://raw.githubusercontent.com/base/brand-kit/refs/heads/main/logo/in-product/Base_Network_Logo.png",
		Adapter:      "0x7591EBf775157A443c505fbF8a49755c7ed3E338",
		Token:        "0x0B1272F34305084eD7AA468e0c63462e34f1B307",
		ChainID:      84532,
		ChainIDHex:   "0x14A34",
		RpcUrl:       "https://sepolia.base.org",
		EndpointID:   40245,
		Endpoint:     "0x6EDCE65403992e310A62460808c4b910D972f10f",
	},
}

// Config returns the configuration for the given chain key. Fails only if the
// key is not one of the fixed set.
func Config(key types.ChainKey) (*types.ChainConfig, error) {
	config, ok := chains[key]
	if !ok {
		return nil, commonerrors.ErrChainNotFound
	}
	return &config, nil
}

// MustConfig is Config for the fixed keys above; it panics on an unknown key
// and is intended for static call sites only.
func MustConfig(key types.ChainKey) *types.ChainConfig {
	config, err := Config(key)
	if err != nil {
		panic(err)
	}
	return config
}

// Keys returns the chain keys in fixed table order.
func Keys() []types.ChainKey {
	keys := make([]types.ChainKey, len(chainOrder))
	copy(keys, chainOrder)
	return keys
}

// ByChainID returns the configuration whose numeric chain id matches.
func ByChainID(chainID uint64) (*types.ChainConfig, error) {
	for _, key := range chainOrder {
		if chains[key].ChainID == chainID {
			config := chains[key]
			return &config, nil
		}
	}
	return nil, commonerrors.ErrChainNotFound
}
