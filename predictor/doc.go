// Package predictor computes, offline, the address at which a forwarder
// factory will deploy an EIP-1167 minimal-proxy clone through CREATE2.
//
// The pipeline mirrors the factory contract byte for byte:
//
//	finalSalt    = keccak256(parent ‖ bytes32(salt))
//	bytecodeHash = keccak256(prefix ‖ implementation ‖ suffix)
//	clone        = keccak256(0xff ‖ factory ‖ finalSalt ‖ bytecodeHash)[12:]
//
// Every function is pure and safe for concurrent use. Invalid input is
// reported as an *Error carrying the offending field.
package predictor
