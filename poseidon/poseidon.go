// Package poseidon implements the circom-compatible Poseidon hash over the
// BN254 scalar field, as used by RLN circuits, zerokit and circomlibjs.
package poseidon

import (
	"errors"
	"fmt"
	"math/big"

	iden3poseidon "github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/aerius-labs/rln-trapdoor-go/field"
)

// MaxInputs is the largest number of inputs a single Hash call accepts
const MaxInputs = 16

// Element is a BN254 scalar field element
type Element = field.Element

// ErrInputCount is returned when Hash is called with 0 or more than MaxInputs inputs
var ErrInputCount = errors.New("poseidon: expected between 1 and 16 inputs")

// Hash computes Poseidon(inputs...) with width len(inputs)+1, matching
// circomlib's Poseidon(n) template.
func Hash(inputs ...Element) (Element, error) {
	if len(inputs) == 0 || len(inputs) > MaxInputs {
		return Element{}, ErrInputCount
	}

	in := make([]*big.Int, len(inputs))
	for i := range inputs {
		in[i] = field.ToBigInt(inputs[i])
	}
	out, err := iden3poseidon.Hash(in)
	if err != nil {
		return Element{}, fmt.Errorf("poseidon: %w", err)
	}
	return field.FromBigInt(out), nil
}

// Hash2 is Hash for exactly two inputs. Elements are always in range, so it
// cannot fail.
func Hash2(left, right Element) Element {
	out, err := Hash(left, right)
	if err != nil {
		panic(err)
	}
	return out
}
