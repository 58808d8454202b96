// Package merkle implements the RLN membership tree, whose leaves are rate
// commitments of identity commitments
package merkle

import (
	"errors"
	"sync"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/poseidon"
)

// DefaultDepth is the depth of the on-chain RLN membership tree
const DefaultDepth = 20

// MaxDepth bounds the depth so leaf indices fit a uint64
const MaxDepth = 63

var (
	// ErrInvalidDepth is returned for a depth outside [1, MaxDepth]
	ErrInvalidDepth = errors.New("merkle: invalid depth")
	// ErrTreeFull is returned when there are more leaves than 2^depth
	ErrTreeFull = errors.New("merkle: not enough space for leaves")
	// ErrIndexOutOfRange is returned for a leaf index >= 2^depth
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
	// ErrInvalidProofLength is returned when a co-path does not match the depth
	ErrInvalidProofLength = errors.New("merkle: co-path length does not match depth")
)

// Tree is a sparse Merkle tree. Leaves after the last inserted one are zero,
// and empty subtrees are represented by precomputed zero hashes.
type Tree struct {
	depth  int
	layers [][]field.Element
	zeros  []field.Element
}

// Opening represents a Merkle authentication path
type Opening struct {
	CoPath []field.Element
}

// parallelThreshold is the layer width above which pairs are hashed concurrently
const parallelThreshold = 100

func checkDepth(depth int) error {
	if depth < 1 || depth > MaxDepth {
		return ErrInvalidDepth
	}
	return nil
}

// zeroHashes returns the empty-subtree hash for every level 0..depth
func zeroHashes(depth int) []field.Element {
	zeros := make([]field.Element, depth+1)
	zeros[0] = field.Zero()
	for level := 1; level <= depth; level++ {
		zeros[level] = poseidon.Hash2(zeros[level-1], zeros[level-1])
	}
	return zeros
}

// NewTree builds a tree of the given depth holding leaves at indices 0..len-1
func NewTree(depth int, leaves []field.Element) (*Tree, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	if uint64(len(leaves)) > uint64(1)<<depth {
		return nil, ErrTreeFull
	}

	zeros := zeroHashes(depth)
	layers := make([][]field.Element, 0, depth+1)

	leafLayer := make([]field.Element, len(leaves))
	copy(leafLayer, leaves)
	layers = append(layers, leafLayer)

	for level := 0; level < depth; level++ {
		prev := layers[level]
		numParents := (len(prev) + 1) / 2
		parents := make([]field.Element, numParents)

		hashPair := func(i int) {
			left := prev[2*i]
			right := zeros[level]
			if 2*i+1 < len(prev) {
				right = prev[2*i+1]
			}
			parents[i] = poseidon.Hash2(left, right)
		}

		if numParents > parallelThreshold {
			var wg sync.WaitGroup
			wg.Add(numParents)
			for i := 0; i < numParents; i++ {
				go func(idx int) {
					defer wg.Done()
					hashPair(idx)
				}(i)
			}
			wg.Wait()
		} else {
			for i := 0; i < numParents; i++ {
				hashPair(i)
			}
		}

		layers = append(layers, parents)
	}

	return &Tree{
		depth:  depth,
		layers: layers,
		zeros:  zeros,
	}, nil
}

// Depth returns the depth of the tree
func (t *Tree) Depth() int {
	return t.depth
}

// Len returns the number of inserted leaves
func (t *Tree) Len() int {
	return len(t.layers[0])
}

// Root returns the root hash of the tree
func (t *Tree) Root() field.Element {
	top := t.layers[t.depth]
	if len(top) == 0 {
		return t.zeros[t.depth]
	}
	return top[0]
}

func (t *Tree) node(level int, index uint64) field.Element {
	layer := t.layers[level]
	if index < uint64(len(layer)) {
		return layer[index]
	}
	return t.zeros[level]
}

// Path returns the authentication path for a leaf index
func (t *Tree) Path(index uint64) (*Opening, error) {
	if index >= uint64(1)<<t.depth {
		return nil, ErrIndexOutOfRange
	}
	coPath := make([]field.Element, 0, t.depth)
	current := index
	for level := 0; level < t.depth; level++ {
		coPath = append(coPath, t.node(level, current^1))
		current >>= 1
	}
	return &Opening{CoPath: coPath}, nil
}

// ReconstructRoot recomputes the root from a leaf and its co-path. Bit l of
// index selects whether the running node is the left (0) or right (1) child
// at level l.
func ReconstructRoot(depth int, coPath []field.Element, index uint64, leaf field.Element) (field.Element, error) {
	if err := checkDepth(depth); err != nil {
		return field.Element{}, err
	}
	if len(coPath) != depth {
		return field.Element{}, ErrInvalidProofLength
	}
	if index >= uint64(1)<<depth {
		return field.Element{}, ErrIndexOutOfRange
	}

	current := leaf
	for level := 0; level < depth; level++ {
		if (index>>level)&1 == 0 {
			current = poseidon.Hash2(current, coPath[level])
		} else {
			current = poseidon.Hash2(coPath[level], current)
		}
	}
	return current, nil
}

// VerifyPath verifies a Merkle authentication path
func VerifyPath(depth int, root field.Element, index uint64, leaf field.Element, path *Opening) bool {
	if path == nil {
		return false
	}
	got, err := ReconstructRoot(depth, path.CoPath, index, leaf)
	if err != nil {
		return false
	}
	return got.Equal(&root)
}
