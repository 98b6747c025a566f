package predictor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// create2Prefix distinguishes CREATE2 preimages from CREATE (RLP) ones.
const create2Prefix = 0xff

// ComputeAddress applies the CREATE2 formula:
//
//	keccak256(0xff ‖ factory ‖ salt ‖ bytecodeHash)[12:]
func ComputeAddress(factory common.Address, salt, bytecodeHash common.Hash) common.Address {
	var buf [1 + common.AddressLength + 2*common.HashLength]byte
	buf[0] = create2Prefix
	copy(buf[1:21], factory[:])
	copy(buf[21:53], salt[:])
	copy(buf[53:85], bytecodeHash[:])

	hash := crypto.Keccak256(buf[:])
	return common.BytesToAddress(hash[12:])
}
