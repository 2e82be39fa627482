package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// BridgeRoute is a source/destination chain pair. Source and destination must
// differ at all times; Swap exchanges the pair atomically.
type BridgeRoute struct {
	From ChainKey
	To   ChainKey
}

// Validate checks the route invariant.
func (r BridgeRoute) Validate() error {
	if r.From == "" || r.To == "" {
		return errors.New("bridge route is incomplete")
	}
	if r.From == r.To {
		return errors.New("bridge route source and destination must differ")
	}
	return nil
}

// Swap returns the route with source and destination exchanged.
func (r BridgeRoute) Swap() BridgeRoute {
	return BridgeRoute{From: r.To, To: r.From}
}

// SendDescriptor describes one cross-chain send for quoting and submission.
// Constructed fresh per quote/send call, never persisted.
//
// Fields:
// - DstEid: the LayerZero endpoint id of the destination chain.
// - To: the recipient address left-padded to 32 bytes.
// - AmountLD: the amount in smallest token units at source precision.
// - MinAmountLD: the minimum acceptable amount; equal to AmountLD, no
//   slippage tolerance is modeled.
// - ExtraOptions: packed executor options encoding the gas-limit hint.
// - ComposeMsg: reserved by the messaging protocol, always empty.
// - OftCmd: reserved by the messaging protocol, always empty.
type SendDescriptor struct {
	DstEid       uint32
	To           [32]byte
	AmountLD     *big.Int
	MinAmountLD  *big.Int
	ExtraOptions []byte
	ComposeMsg   []byte
	OftCmd       []byte
}

// NewSendDescriptor builds a send descriptor for the given destination
// endpoint, recipient and raw amount. MinAmountLD is set equal to AmountLD.
func NewSendDescriptor(dstEid uint32, recipient common.Address, amountLD *big.Int, extraOptions []byte) *SendDescriptor {
	var to [32]byte
	copy(to[12:], recipient.Bytes())

	return &SendDescriptor{
		DstEid:       dstEid,
		To:           to,
		AmountLD:     amountLD,
		MinAmountLD:  new(big.Int).Set(amountLD),
		ExtraOptions: extraOptions,
		ComposeMsg:   []byte{},
		OftCmd:       []byte{},
	}
}

// FeeQuote is the network fee the adapter requires for one send.
// LzTokenFee is unused in this system and always zero.
type FeeQuote struct {
	NativeFee  *big.Int
	LzTokenFee *big.Int
}
