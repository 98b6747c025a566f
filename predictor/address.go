package predictor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Field names reported in errors.
const (
	FieldImplementation = "implementation"
	FieldFactory        = "factory"
	FieldParent         = "parent"
	FieldSalt           = "salt"
)

// ParseAddress decodes a 0x-prefixed hex address. Letter case is ignored, so
// checksummed and lowercase input are equivalent.
func ParseAddress(field, input string) (common.Address, error) {
	b, err := hexutil.Decode(input)
	if err != nil {
		return common.Address{}, parseError(field, input, err)
	}
	if len(b) != common.AddressLength {
		return common.Address{}, formatError(field, input, fmt.Errorf("decoded to %d bytes, want %d", len(b), common.AddressLength))
	}
	return common.BytesToAddress(b), nil
}

// AddressFromBytes validates a raw address. Unlike common.BytesToAddress it
// never pads or truncates.
func AddressFromBytes(field string, b []byte) (common.Address, error) {
	if len(b) != common.AddressLength {
		return common.Address{}, formatError(field, hexutil.Encode(b), fmt.Errorf("got %d bytes, want %d", len(b), common.AddressLength))
	}
	return common.BytesToAddress(b), nil
}
