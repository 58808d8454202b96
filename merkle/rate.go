package merkle

import (
	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/poseidon"
)

// RateCommitment is the membership leaf for an identity commitment allowed
// rateLimit messages per epoch. It matches the registry contract's
// PoseidonT3.hash([idCommitment, rateLimit]).
func RateCommitment(idCommitment field.Element, rateLimit uint64) field.Element {
	return poseidon.Hash2(idCommitment, field.NewElement(rateLimit))
}
