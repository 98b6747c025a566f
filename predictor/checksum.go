package predictor

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// ChecksumAddress renders addr in EIP-55 mixed case with a 0x prefix.
//
// A hex letter at position i is uppercased when nibble i of
// keccak256(lowercase hex) is 8 or more; digits are left alone.
func ChecksumAddress(addr common.Address) string {
	var buf [2 + 2*common.AddressLength]byte
	buf[0], buf[1] = '0', 'x'
	lower := buf[2:]
	hex.Encode(lower, addr[:])

	h := sha3.NewLegacyKeccak256()
	h.Write(lower)
	digest := h.Sum(nil)

	for i, c := range lower {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return string(buf[:])
}

// FormatChecksum re-renders a textual address in canonical EIP-55 form. Input
// casing is ignored, so formatting is idempotent.
func FormatChecksum(field, input string) (string, error) {
	addr, err := ParseAddress(field, input)
	if err != nil {
		return "", err
	}
	return ChecksumAddress(addr), nil
}
