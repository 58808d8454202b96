// Package field implements the BN254 scalar field using gnark-crypto
package field

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ModulusDecimal is the BN254 scalar field order r
const ModulusDecimal = "21888242871839275222246405745257275088548364400416034343698204186575808495617"

// Bytes is the size of a canonical field element encoding
const Bytes = fr.Bytes

// Modulus is r as a big.Int. Callers must not mutate it.
var Modulus = fr.Modulus()

// ErrInvalidLength is returned when a byte slice is not exactly Bytes long
var ErrInvalidLength = errors.New("field: input must be exactly 32 bytes")

func init() {
	want, ok := new(big.Int).SetString(ModulusDecimal, 10)
	if !ok || want.Cmp(Modulus) != 0 {
		panic("field: gnark-crypto bn254 modulus does not match ModulusDecimal")
	}
}

// Element represents a field element in the BN254 scalar field
type Element = fr.Element

// NewElement creates a new field element
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Zero returns the zero element
func Zero() Element {
	return fr.NewElement(0)
}

// One returns the one element
func One() Element {
	return fr.NewElement(1)
}

// FromBytesLE interprets exactly 32 bytes as an unsigned integer,
// least significant byte first. The result is not reduced.
func FromBytesLE(b []byte) (*big.Int, error) {
	if len(b) != Bytes {
		return nil, ErrInvalidLength
	}
	be := make([]byte, Bytes)
	for i := range b {
		be[Bytes-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be), nil
}

// FromBytesBE interprets exactly 32 bytes as a big-endian unsigned integer.
// The result is not reduced.
func FromBytesBE(b []byte) (*big.Int, error) {
	if len(b) != Bytes {
		return nil, ErrInvalidLength
	}
	return new(big.Int).SetBytes(b), nil
}

// Reduce returns x mod r in [0, r).
// big.Int.Mod is Euclidean, so negative inputs land in range too.
func Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, Modulus)
}

// ReduceBytesLE reduces the little-endian integer of b modulo r
func ReduceBytesLE(b []byte) (*big.Int, error) {
	x, err := FromBytesLE(b)
	if err != nil {
		return nil, err
	}
	return Reduce(x), nil
}

// FromBigInt converts x to a field element, reducing modulo r
func FromBigInt(x *big.Int) Element {
	var e Element
	e.SetBigInt(x)
	return e
}

// ToBigInt converts to big.Int
func ToBigInt(e Element) *big.Int {
	return e.BigInt(new(big.Int))
}

// ToBytesLE converts element to its canonical little-endian encoding
func ToBytesLE(e Element) [Bytes]byte {
	var b [Bytes]byte
	fr.LittleEndian.PutElement(&b, e)
	return b
}

// ToBytesBE converts element to its canonical big-endian encoding
func ToBytesBE(e Element) [Bytes]byte {
	return e.Bytes()
}
