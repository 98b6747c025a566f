// Package onchain talks to a deployed forwarder factory over JSON-RPC. Only
// read-only calls are issued; nothing here signs or sends transactions.
package onchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	"clone-predictor/predictor"
)

// FactoryABI is the read-only subset of the ForwarderFactory ABI.
const FactoryABI = `[
	{
		"type": "function",
		"name": "implementationAddress",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "address"}]
	},
	{
		"type": "function",
		"name": "predictCloneAddress",
		"stateMutability": "view",
		"inputs": [
			{"name": "parent", "type": "address"},
			{"name": "salt", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "address"}]
	}
]`

const (
	methodImplementation = "implementationAddress"
	methodPredict        = "predictCloneAddress"
)

var (
	ErrNoCode             = errors.New("no contract code at factory address")
	ErrPredictionMismatch = errors.New("offline prediction differs from factory")
)

// Backend is the slice of an RPC client the factory caller needs.
// *ethclient.Client satisfies it.
type Backend interface {
	ethereum.ContractCaller
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dial connects to the node at rawurl.
func Dial(ctx context.Context, rawurl string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rawurl, err)
	}
	return client, nil
}

// Factory issues view calls against one ForwarderFactory deployment.
type Factory struct {
	backend Backend
	address common.Address
	abi     abi.ABI
}

// NewFactory binds the factory deployed at address.
func NewFactory(backend Backend, address common.Address) (*Factory, error) {
	parsed, err := abi.JSON(strings.NewReader(FactoryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse factory ABI: %w", err)
	}
	return &Factory{backend: backend, address: address, abi: parsed}, nil
}

// Address returns the bound factory address.
func (f *Factory) Address() common.Address {
	return f.address
}

// ChainID returns the chain the backend is connected to.
func (f *Factory) ChainID(ctx context.Context) (uint64, error) {
	id, err := f.backend.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch chain id: %w", err)
	}
	if !id.IsUint64() {
		return 0, fmt.Errorf("chain id %s out of range", id)
	}
	return id.Uint64(), nil
}

// ImplementationAddress returns the master forwarder the factory clones.
func (f *Factory) ImplementationAddress(ctx context.Context) (common.Address, error) {
	return f.callAddress(ctx, methodImplementation)
}

// PredictCloneAddress asks the factory where it would clone for parent/salt.
func (f *Factory) PredictCloneAddress(ctx context.Context, parent common.Address, salt predictor.Salt) (common.Address, error) {
	return f.callAddress(ctx, methodPredict, parent, salt.Big())
}

func (f *Factory) callAddress(ctx context.Context, method string, args ...interface{}) (common.Address, error) {
	data, err := f.abi.Pack(method, args...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{
		To:   &f.address,
		Data: data,
	}
	result, err := f.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("%s call failed: %w", method, err)
	}
	if len(result) == 0 {
		return common.Address{}, fmt.Errorf("%w: %s", ErrNoCode, f.address.Hex())
	}
	out, err := f.abi.Unpack(method, result)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	log.Debug("Factory call", "factory", f.address, "method", method, "result", addr)
	return addr, nil
}
