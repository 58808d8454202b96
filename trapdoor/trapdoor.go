// Package trapdoor runs the trapdoor derivation pipeline and records every
// intermediate value, so a run can be compared line by line with another
// implementation.
//
//	signal -> Keccak-256 -> ChaCha20 keystream -> LE integer -> mod r
package trapdoor

import (
	"fmt"
	"io"
	"math/big"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/internal/prf"
	"github.com/aerius-labs/rln-trapdoor-go/keccak"
)

// Trace holds the values produced at each pipeline stage
type Trace struct {
	Signal        []byte
	Digest        keccak.Digest
	Keystream     []byte
	TrapdoorBytes []byte
	LittleEndian  *big.Int
	Trapdoor      *big.Int
}

// DefaultSignal returns the fixed reference signal, bytes 0 through 9
func DefaultSignal() []byte {
	s := make([]byte, 10)
	for i := range s {
		s[i] = byte(i)
	}
	return s
}

// Derive runs the pipeline over signal. A nil cfg uses DefaultConfig.
func Derive(signal []byte, cfg *Config) (*Trace, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	digest := keccak.Sum256(signal)

	ks, err := prf.Keystream(digest, cfg.StreamLen)
	if err != nil {
		return nil, fmt.Errorf("trapdoor: keystream: %w", err)
	}
	if len(ks) != cfg.StreamLen {
		return nil, fmt.Errorf("trapdoor: keystream has %d bytes, want %d", len(ks), cfg.StreamLen)
	}

	tb := make([]byte, TrapdoorBytes)
	copy(tb, ks[:TrapdoorBytes])

	le, err := field.FromBytesLE(tb)
	if err != nil {
		return nil, fmt.Errorf("trapdoor: interpret keystream prefix: %w", err)
	}
	reduced := field.Reduce(le)
	if reduced.Sign() < 0 || reduced.Cmp(field.Modulus) >= 0 {
		panic("trapdoor: reduced value outside [0, r)")
	}

	return &Trace{
		Signal:        append([]byte(nil), signal...),
		Digest:        digest,
		Keystream:     ks,
		TrapdoorBytes: tb,
		LittleEndian:  le,
		Trapdoor:      reduced,
	}, nil
}

// TrapdoorElement returns the trapdoor as a field element
func (t *Trace) TrapdoorElement() field.Element {
	return field.FromBigInt(t.Trapdoor)
}

// Lines returns the comparison lines in output order: digest, keystream,
// trapdoor bytes (all hex), the LE integer and the trapdoor (decimal).
func (t *Trace) Lines() []string {
	return []string{
		t.Digest.Hex(),
		fmt.Sprintf("%x", t.Keystream),
		fmt.Sprintf("%x", t.TrapdoorBytes),
		t.LittleEndian.String(),
		t.Trapdoor.String(),
	}
}

// WriteTo writes Lines to w, one per line
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range t.Lines() {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
