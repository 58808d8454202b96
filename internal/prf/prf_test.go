package prf

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"testing"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/keccak"
)

func referenceSeed(t testing.TB) keccak.Digest {
	t.Helper()
	signal := make([]byte, 10)
	for i := range signal {
		signal[i] = byte(i)
	}
	return keccak.Sum256(signal)
}

// RFC 8439 A.1 test vector #1: all-zero key, nonce and counter
func TestKeystreamZeroKey(t *testing.T) {
	var seed keccak.Digest
	ks, err := Keystream(seed, 64)
	if err != nil {
		t.Fatalf("Keystream failed: %v", err)
	}
	want := "76b8e0ada0f13d90405d6ae55386bd28bdd219b8a08ded1aa836efcc8b770dc7" +
		"da41597c5157488d7724e03fb8d84a376a43b8f41518a11cc387b669b2ee6586"
	if hex.EncodeToString(ks) != want {
		t.Fatalf("Keystream mismatch\nGot:      %x\nExpected: %s", ks, want)
	}
}

func TestKeystreamReference(t *testing.T) {
	ks, err := Keystream(referenceSeed(t), 64)
	if err != nil {
		t.Fatalf("Keystream failed: %v", err)
	}
	want := "d5e6fe230ba634ffecbe29ac7cf9a1829de738ece068d8a0ae8d3ffc0f40a852" +
		"c54bf111d94869cdd032d126ddc085946326c0aabc896cf9f382329b20de23b1"
	if hex.EncodeToString(ks) != want {
		t.Fatalf("Keystream mismatch\nGot:      %x\nExpected: %s", ks, want)
	}
}

func TestKeystreamPrefix(t *testing.T) {
	seed := keccak.Sum256([]byte("prefix"))
	long, err := Keystream(seed, 1000)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 1, 31, 32, 63, 64, 65, 128, 999} {
		t.Run(fmt.Sprintf("N%d", n), func(t *testing.T) {
			short, err := Keystream(seed, n)
			if err != nil {
				t.Fatal(err)
			}
			if len(short) != n {
				t.Fatalf("Expected %d bytes, got %d", n, len(short))
			}
			if !bytes.Equal(short, long[:n]) {
				t.Fatalf("First %d bytes are not a prefix of the longer stream", n)
			}
		})
	}
}

// Reads of uneven sizes must stitch into the same stream
func TestChaChaStreamIncrementalReads(t *testing.T) {
	seed := keccak.Sum256([]byte("incremental"))
	want, err := Keystream(seed, 300)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewChaChaStream(seed)
	if err != nil {
		t.Fatal(err)
	}
	var got []byte
	for _, n := range []int{1, 7, 56, 64, 0, 100, 72} {
		buf := make([]byte, n)
		if _, err := io.ReadFull(s, buf); err != nil {
			t.Fatal(err)
		}
		got = append(got, buf...)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("Incremental reads diverge from one-shot keystream")
	}
}

func TestKeystreamNegativeLength(t *testing.T) {
	if _, err := Keystream(keccak.Digest{}, -1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("Expected ErrInvalidLength, got %v", err)
	}
}

func TestChaChaPRFtoField(t *testing.T) {
	seed := referenceSeed(t)

	testCases := []struct {
		name      string
		interpret Interpret
		want      []string
	}{
		{
			name:      "LittleEndian",
			interpret: field.FromBytesLE,
			want: []string{
				"15498683161601573666756241146956795683525539142044202277350433458785594828500",
				"14458018297739033829846070970199778196183042676248145750885611646341671373762",
			},
		},
		{
			name:      "BigEndian",
			interpret: field.FromBytesBE,
			want: []string{
				"9197794074174695198538103040380958247479188694465312745780189635408809732174",
				"1686837015475982707225838806504570646532873080894197734892723587359864398765",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			elems, err := NewChaChaPRFtoField(2, tc.interpret).Elements(seed)
			if err != nil {
				t.Fatalf("Elements failed: %v", err)
			}
			if len(elems) != len(tc.want) {
				t.Fatalf("Expected %d elements, got %d", len(tc.want), len(elems))
			}
			for i, w := range tc.want {
				got := field.ToBigInt(elems[i])
				x, _ := new(big.Int).SetString(w, 10)
				if got.Cmp(x) != 0 {
					t.Fatalf("Element %d mismatch\nGot:      %s\nExpected: %s", i, got, w)
				}
			}
		})
	}
}

func TestChaChaPRFtoFieldInterpretError(t *testing.T) {
	boom := errors.New("boom")
	p := NewChaChaPRFtoField(1, func([]byte) (*big.Int, error) { return nil, boom })
	if _, err := p.Elements(referenceSeed(t)); !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped interpret error, got %v", err)
	}
}

func BenchmarkKeystream64(b *testing.B) {
	seed := keccak.Sum256([]byte("bench"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Keystream(seed, 64); err != nil {
			b.Fatal(err)
		}
	}
}
