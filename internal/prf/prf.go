// Package prf expands a 32-byte seed into a deterministic ChaCha20 keystream.
package prf

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/aerius-labs/rln-trapdoor-go/keccak"
)

// ErrInvalidLength is returned for a negative output length
var ErrInvalidLength = errors.New("prf: output length must not be negative")

// ChaChaStream is the ChaCha20 keystream for a seed, with an all-zero
// 96-bit nonce and the block counter starting at zero (RFC 8439 layout).
// Successive reads continue the same stream.
type ChaChaStream struct {
	cipher *chacha20.Cipher
	zeros  []byte
}

// NewChaChaStream keys ChaCha20 directly with seed
func NewChaChaStream(seed keccak.Digest) (*ChaChaStream, error) {
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("prf: init chacha20: %w", err)
	}
	return &ChaChaStream{cipher: c}, nil
}

// Read fills p with the next len(p) keystream bytes. It never returns a
// short read.
func (s *ChaChaStream) Read(p []byte) (int, error) {
	if cap(s.zeros) < len(p) {
		s.zeros = make([]byte, len(p))
	}
	src := s.zeros[:len(p)]
	clear(src)
	// Keystream XOR zero is the keystream itself
	s.cipher.XORKeyStream(p, src)
	return len(p), nil
}

var _ io.Reader = (*ChaChaStream)(nil)

// Keystream returns the first n keystream bytes for seed
func Keystream(seed keccak.Digest, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	s, err := NewChaChaStream(seed)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	read, err := io.ReadFull(s, out)
	if err != nil {
		return nil, fmt.Errorf("prf: read keystream: %w", err)
	}
	if read != n {
		return nil, fmt.Errorf("prf: keystream has %d bytes, want %d", read, n)
	}
	return out, nil
}
