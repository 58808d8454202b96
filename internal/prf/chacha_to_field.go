package prf

import (
	"fmt"
	"math/big"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/keccak"
)

// Interpret turns exactly field.Bytes bytes into an unreduced integer,
// e.g. field.FromBytesLE or field.FromBytesBE
type Interpret func(b []byte) (*big.Int, error)

// ChaChaPRFtoField implements a PRF using ChaCha20 that outputs BN254
// scalar field elements. Each element consumes 32 keystream bytes, read
// with the configured byte order and reduced modulo r.
type ChaChaPRFtoField struct {
	outputLenFE int // Output length in field elements
	interpret   Interpret
}

// NewChaChaPRFtoField creates a ChaCha20 PRF outputting field elements
func NewChaChaPRFtoField(outputLenFE int, interpret Interpret) *ChaChaPRFtoField {
	if outputLenFE <= 0 {
		panic("output length must be positive")
	}
	if interpret == nil {
		panic("interpret must not be nil")
	}
	return &ChaChaPRFtoField{
		outputLenFE: outputLenFE,
		interpret:   interpret,
	}
}

// Elements returns outputLenFE field elements derived from seed
func (p *ChaChaPRFtoField) Elements(seed keccak.Digest) ([]field.Element, error) {
	ks, err := Keystream(seed, field.Bytes*p.outputLenFE)
	if err != nil {
		return nil, err
	}

	out := make([]field.Element, p.outputLenFE)
	for i := range out {
		chunk := ks[i*field.Bytes : (i+1)*field.Bytes]
		x, err := p.interpret(chunk)
		if err != nil {
			return nil, fmt.Errorf("prf: element %d: %w", i, err)
		}
		out[i] = field.FromBigInt(field.Reduce(x))
	}
	return out, nil
}
