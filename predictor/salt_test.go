package predictor

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

func TestParseSalt(t *testing.T) {
	max := new(big.Int).Sub(two256, big.NewInt(1))
	tests := []struct {
		input string
		want  *big.Int
	}{
		{"0", big.NewInt(0)},
		{"84735", big.NewInt(84735)},
		{"0x14aff", big.NewInt(84735)},
		{"0X14AFF", big.NewInt(84735)},
		{"000123", big.NewInt(123)},
		{max.String(), max},
		{"0x" + max.Text(16), max},
	}
	for _, tt := range tests {
		s, err := ParseSalt(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, 0, tt.want.Cmp(s.Big()), "input %s: got %s", tt.input, s)
	}
}

func TestParseSaltRejects(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"", KindParse},
		{"abc", KindParse},
		{"1.5", KindParse},
		{"0x", KindParse},
		{"0xg1", KindParse},
		{" 1", KindParse},
		{"-1", KindRange},
		{"-84735", KindRange},
		{two256.String(), KindRange},
		{"0x1" + "0000000000000000000000000000000000000000000000000000000000000000", KindRange},
	}
	for _, tt := range tests {
		_, err := ParseSalt(tt.input)
		require.Error(t, err, tt.input)
		assert.True(t, IsKind(err, tt.kind), "input %q: got %v", tt.input, err)
		assert.Equal(t, FieldSalt, FieldOf(err))
	}
}

func TestSaltFromBig(t *testing.T) {
	_, err := SaltFromBig(nil)
	assert.True(t, errors.Is(err, ErrParse))

	_, err = SaltFromBig(big.NewInt(-1))
	assert.True(t, errors.Is(err, ErrRange))

	_, err = SaltFromBig(two256)
	assert.True(t, errors.Is(err, ErrRange))

	s, err := SaltFromBig(big.NewInt(84735))
	require.NoError(t, err)
	assert.Equal(t, SaltFromUint64(84735), s)
	assert.Equal(t, "84735", s.String())
}

func TestSaltBytes32(t *testing.T) {
	var zero Salt
	assert.Equal(t, [32]byte{}, zero.Bytes32())

	word := SaltFromUint64(84735).Bytes32()
	assert.Equal(t, common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000014aff"), common.Hash(word))
}

func TestDeriveSalt(t *testing.T) {
	parent := common.HexToAddress(testParent)

	got := DeriveSalt(parent, SaltFromUint64(84735))
	assert.Equal(t, common.HexToHash("0xb3ec56631e53ae1988ba73a64f600555af38c27e25463a981dc7772749931e37"), got)

	got = DeriveSalt(parent, SaltFromUint64(38495))
	assert.Equal(t, common.HexToHash("0x71684bebd2efca62adc844986eee5d9564dc91e0e5921d8ea8645cb4ac9d5b0a"), got)

	got = DeriveSalt(common.HexToAddress("0xAB4d4C3Eb1A010345598cC379B04d30f8db67da8"), SaltFromUint64(84735))
	assert.Equal(t, common.HexToHash("0x7da69c497b3d46b1e7955f520ba13958d65e15c5102281c61f9d57a98cd3f2fd"), got)
}
