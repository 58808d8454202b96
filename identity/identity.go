// Package identity derives a seeded RLN identity credential, the same way
// js-waku's RLN credentials manager does.
//
// The seed is hashed with Keccak-256, the digest keys a ChaCha20 keystream,
// and the two 32-byte halves of its first 64 bytes, read big-endian and
// reduced modulo r, become the trapdoor and the nullifier. Note that the
// trapdoor pipeline in package trapdoor reads the same bytes little-endian,
// so the two trapdoors differ.
//
//	secretHash = Poseidon(trapdoor, nullifier)
//	commitment = Poseidon(secretHash)
package identity

import (
	"fmt"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/internal/prf"
	"github.com/aerius-labs/rln-trapdoor-go/keccak"
	"github.com/aerius-labs/rln-trapdoor-go/poseidon"
)

// Credential is a seeded identity
type Credential struct {
	Trapdoor   field.Element
	Nullifier  field.Element
	SecretHash field.Element
	Commitment field.Element
}

// FromSeed derives the credential for seed
func FromSeed(seed []byte) (*Credential, error) {
	return FromDigest(keccak.Sum256(seed))
}

// FromDigest derives the credential from an already hashed seed
func FromDigest(digest keccak.Digest) (*Credential, error) {
	elems, err := prf.NewChaChaPRFtoField(2, field.FromBytesBE).Elements(digest)
	if err != nil {
		return nil, fmt.Errorf("identity: derive secrets: %w", err)
	}

	c := &Credential{
		Trapdoor:  elems[0],
		Nullifier: elems[1],
	}
	c.SecretHash = poseidon.Hash2(c.Trapdoor, c.Nullifier)
	c.Commitment, err = poseidon.Hash(c.SecretHash)
	if err != nil {
		return nil, fmt.Errorf("identity: commitment: %w", err)
	}
	return c, nil
}

// Equal reports whether both credentials hold the same values
func (c *Credential) Equal(o *Credential) bool {
	return c.Trapdoor.Equal(&o.Trapdoor) &&
		c.Nullifier.Equal(&o.Nullifier) &&
		c.SecretHash.Equal(&o.SecretHash) &&
		c.Commitment.Equal(&o.Commitment)
}
