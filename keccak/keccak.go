// Package keccak computes Keccak-256 digests with the original Keccak padding.
//
// This is the pre-standard variant used by Ethereum and by the RLN tooling,
// not NIST SHA3-256: the two differ in the padding domain byte (0x01 vs 0x06)
// and produce unrelated outputs.
package keccak

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the length of a Keccak-256 digest in bytes
const DigestSize = 32

// ErrInvalidDigestLength is returned when a digest is not DigestSize bytes
var ErrInvalidDigestLength = errors.New("keccak: digest must be exactly 32 bytes")

// Digest is a Keccak-256 output
type Digest [DigestSize]byte

// Sum256 returns the Keccak-256 digest of data
func Sum256(data []byte) Digest {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)

	var d Digest
	h.Sum(d[:0])
	return d
}

// DigestFromBytes copies b into a Digest
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, ErrInvalidDigestLength
	}
	copy(d[:], b)
	return d, nil
}

// Bytes returns a copy of the digest as a slice
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// Hex returns the lowercase hex encoding of the digest
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}
