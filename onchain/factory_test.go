package onchain

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clone-predictor/predictor"
)

var (
	testImplementation = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testFactory        = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	testParent         = common.HexToAddress("0x29021D3658fb7aA11383a09117662248e9054223")
	testPredicted      = common.HexToAddress("0x8c58EA42dD763cadeB56abbB3C201171b4B42f69")
)

// fakeFactory answers view calls the way the deployed contract does.
type fakeFactory struct {
	t       *testing.T
	abi     abi.ABI
	chainID *big.Int
	impl    common.Address
	empty   bool
	callErr error

	// predict overrides the contract's CREATE2 computation when set.
	predict func(parent common.Address, salt *big.Int) common.Address
}

func newFakeFactory(t *testing.T) *fakeFactory {
	parsed, err := abi.JSON(strings.NewReader(FactoryABI))
	require.NoError(t, err)
	return &fakeFactory{t: t, abi: parsed, chainID: big.NewInt(31337), impl: testImplementation}
}

func (f *fakeFactory) ChainID(ctx context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeFactory) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	if f.empty {
		return nil, nil
	}
	require.NotNil(f.t, call.To)
	require.Equal(f.t, testFactory, *call.To)

	method, err := f.abi.MethodById(call.Data[:4])
	require.NoError(f.t, err)
	args, err := method.Inputs.Unpack(call.Data[4:])
	require.NoError(f.t, err)

	switch method.Name {
	case methodImplementation:
		return method.Outputs.Pack(f.impl)
	case methodPredict:
		parent := args[0].(common.Address)
		salt := args[1].(*big.Int)
		if f.predict != nil {
			return method.Outputs.Pack(f.predict(parent, salt))
		}
		s, err := predictor.SaltFromBig(salt)
		require.NoError(f.t, err)
		p := predictor.Predict(predictor.Request{Implementation: f.impl, Factory: *call.To, Parent: parent, Salt: s})
		return method.Outputs.Pack(p.Address)
	}
	f.t.Fatalf("unexpected method %s", method.Name)
	return nil, nil
}

func TestFactoryCalls(t *testing.T) {
	backend := newFakeFactory(t)
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)
	ctx := context.Background()

	impl, err := f.ImplementationAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, testImplementation, impl)

	predicted, err := f.PredictCloneAddress(ctx, testParent, predictor.SaltFromUint64(84735))
	require.NoError(t, err)
	assert.Equal(t, testPredicted, predicted)

	id, err := f.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), id)
}

func TestFactoryNoCode(t *testing.T) {
	backend := newFakeFactory(t)
	backend.empty = true
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)

	_, err = f.ImplementationAddress(context.Background())
	assert.ErrorIs(t, err, ErrNoCode)
}

func TestFactoryCallError(t *testing.T) {
	backend := newFakeFactory(t)
	backend.callErr = errors.New("connection refused")
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)

	_, err = f.PredictCloneAddress(context.Background(), testParent, predictor.SaltFromUint64(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.callErr)
}

func TestFactoryChainIDOverflow(t *testing.T) {
	backend := newFakeFactory(t)
	backend.chainID = new(big.Int).Lsh(big.NewInt(1), 70)
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)

	_, err = f.ChainID(context.Background())
	assert.Error(t, err)
}

func TestCrossCheck(t *testing.T) {
	backend := newFakeFactory(t)
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)

	res, err := CrossCheck(context.Background(), f, testParent, predictor.SaltFromUint64(84735))
	require.NoError(t, err)
	assert.True(t, res.Match())
	assert.Equal(t, testPredicted, res.Onchain)
	assert.Equal(t, testPredicted, res.Offline.Address)
	assert.Equal(t, testImplementation, res.Request.Implementation)
}

func TestCrossCheckMismatch(t *testing.T) {
	backend := newFakeFactory(t)
	// A factory hashing a padded (abi.encode) salt instead of the packed one.
	backend.predict = func(parent common.Address, salt *big.Int) common.Address {
		s, _ := predictor.SaltFromBig(salt)
		word := s.Bytes32()
		padded := common.LeftPadBytes(parent.Bytes(), 32)
		finalSalt := crypto.Keccak256Hash(padded, word[:])
		_, codeHash := predictor.BuildBytecode(testImplementation)
		return predictor.ComputeAddress(testFactory, finalSalt, codeHash)
	}
	f, err := NewFactory(backend, testFactory)
	require.NoError(t, err)

	res, err := CrossCheck(context.Background(), f, testParent, predictor.SaltFromUint64(84735))
	assert.ErrorIs(t, err, ErrPredictionMismatch)
	require.NotNil(t, res)
	assert.False(t, res.Match())
	assert.Equal(t, testPredicted, res.Offline.Address)
}
