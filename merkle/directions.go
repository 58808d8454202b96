package merkle

import (
	"github.com/aerius-labs/rln-trapdoor-go/field"
)

// PathDirections returns one bit per level for a leaf index, leaf first.
// 0 means the running node is the left child (hash(current, sibling)),
// 1 means it is the right child (hash(sibling, current)).
func PathDirections(depth int, index uint64) ([]uint8, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	if index >= uint64(1)<<depth {
		return nil, ErrIndexOutOfRange
	}
	dirs := make([]uint8, depth)
	for level := range dirs {
		dirs[level] = uint8((index >> level) & 1)
	}
	return dirs, nil
}

// ExtractIndex finds the leaf index under which leaf and coPath hash to root.
// Indices are tried in increasing order up to maxIndex, which is clamped to
// the last leaf of the tree; the first match wins. The search is linear in
// maxIndex, so callers that know an upper bound on the tree size should pass
// it.
func ExtractIndex(depth int, coPath []field.Element, leaf, root field.Element, maxIndex uint64) (uint64, bool) {
	if checkDepth(depth) != nil || len(coPath) != depth {
		return 0, false
	}
	if last := uint64(1)<<depth - 1; maxIndex > last {
		maxIndex = last
	}
	for index := uint64(0); ; index++ {
		got, err := ReconstructRoot(depth, coPath, index, leaf)
		if err == nil && got.Equal(&root) {
			return index, true
		}
		if index == maxIndex {
			return 0, false
		}
	}
}

// ExtractPathDirections recovers the path directions of a proof that carries
// only the co-path, by searching for the leaf index first
func ExtractPathDirections(depth int, coPath []field.Element, leaf, root field.Element, maxIndex uint64) ([]uint8, bool) {
	index, ok := ExtractIndex(depth, coPath, leaf, root, maxIndex)
	if !ok {
		return nil, false
	}
	dirs, err := PathDirections(depth, index)
	if err != nil {
		return nil, false
	}
	return dirs, true
}
