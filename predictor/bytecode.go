package predictor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// Minimal Proxy (EIP-1167) init code around the implementation address.
	MinProxyBytecodePrefix = "0x3d602d80600a3d3981f3363d3d373d3d3d363d73"
	MinProxyBytecodeSuffix = "0x5af43d82803e903d91602b57fd5bf3"

	// MinProxyBytecodeLength is prefix(20) + implementation(20) + suffix(15).
	MinProxyBytecodeLength = 55
)

var (
	minProxyPrefix = common.FromHex(MinProxyBytecodePrefix)
	minProxySuffix = common.FromHex(MinProxyBytecodeSuffix)
)

// BuildBytecode returns the clone init code for implementation and its
// keccak256 hash. The returned slice is freshly allocated.
func BuildBytecode(implementation common.Address) ([]byte, common.Hash) {
	code := make([]byte, 0, MinProxyBytecodeLength)
	code = append(code, minProxyPrefix...)
	code = append(code, implementation.Bytes()...)
	code = append(code, minProxySuffix...)
	return code, crypto.Keccak256Hash(code)
}
