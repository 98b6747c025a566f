package predictor

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

var (
	errEmptySalt    = errors.New("empty string")
	errSaltSyntax   = errors.New("not a decimal or 0x-prefixed hex integer")
	errNilSalt      = errors.New("nil integer")
	errNegativeSalt = errors.New("negative salt")
	errSaltOverflow = errors.New("salt exceeds 256 bits")
)

// Salt is the caller-chosen clone salt, an unsigned integer of at most 256
// bits. The zero value is the salt 0.
type Salt struct {
	n uint256.Int
}

// ParseSalt reads a salt from decimal text, or hexadecimal text when prefixed
// with 0x. Negative values and values of 2^256 or more are range errors.
func ParseSalt(input string) (Salt, error) {
	if input == "" {
		return Salt{}, parseError(FieldSalt, input, errEmptySalt)
	}
	var (
		b  = new(big.Int)
		ok bool
	)
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		_, ok = b.SetString(input[2:], 16)
	} else {
		_, ok = b.SetString(input, 10)
	}
	if !ok {
		return Salt{}, parseError(FieldSalt, input, errSaltSyntax)
	}
	return saltFromBig(b, input)
}

// SaltFromBig converts a big integer, rejecting values outside [0, 2^256).
func SaltFromBig(b *big.Int) (Salt, error) {
	if b == nil {
		return Salt{}, parseError(FieldSalt, "", errNilSalt)
	}
	return saltFromBig(b, b.String())
}

func saltFromBig(b *big.Int, input string) (Salt, error) {
	if b.Sign() < 0 {
		return Salt{}, rangeError(FieldSalt, input, errNegativeSalt)
	}
	n, overflow := uint256.FromBig(b)
	if overflow {
		return Salt{}, rangeError(FieldSalt, input, errSaltOverflow)
	}
	return Salt{n: *n}, nil
}

// SaltFromUint64 returns the salt with the given small value.
func SaltFromUint64(v uint64) Salt {
	var s Salt
	s.n.SetUint64(v)
	return s
}

// SaltFromBytes32 interprets word as a big-endian integer. Every 32-byte
// word is in range.
func SaltFromBytes32(word [32]byte) Salt {
	var s Salt
	s.n.SetBytes32(word[:])
	return s
}

// Bytes32 returns the big-endian, zero-padded 32-byte encoding.
func (s Salt) Bytes32() [32]byte {
	return s.n.Bytes32()
}

// Big returns the salt as a new big.Int.
func (s Salt) Big() *big.Int {
	return s.n.ToBig()
}

// String renders the salt in decimal.
func (s Salt) String() string {
	return s.n.Dec()
}

// DeriveSalt computes the final CREATE2 salt the factory uses for a parent:
// keccak256(parent ‖ bytes32(salt)), packed without per-slot padding.
func DeriveSalt(parent common.Address, salt Salt) common.Hash {
	word := salt.Bytes32()
	return crypto.Keccak256Hash(parent.Bytes(), word[:])
}
