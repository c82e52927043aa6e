package container

import "golang.org/x/crypto/sha3"

// Checksum computes a storage-level integrity checksum over a container's
// encoded bytes, using the same SHA3-256 the original channel hashing used
// for its Fiat-Shamir digest. This guards bytes at rest — disk corruption,
// a truncated copy, a bad download — and is deliberately a different
// primitive from the BLAKE3 protocol transcript: a bit flip here means
// "the file is damaged," not "the proof is unsound."
func Checksum(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// VerifyChecksum reports whether data hashes to want.
func VerifyChecksum(data []byte, want [32]byte) bool {
	return Checksum(data) == want
}
