package merkle

import (
	"math/big"
	"testing"
)

func TestBuildRootAndPaths_RoundTrip(t *testing.T) {
	leaves := make([]*big.Int, 5)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i + 1))
	}

	tree, paths, err := BuildRootAndPaths(leaves, 4)
	if err != nil {
		t.Fatalf("BuildRootAndPaths: %v", err)
	}
	if len(paths) != 16 {
		t.Fatalf("expected 16 paths (2^4), got %d", len(paths))
	}

	for i := range leaves {
		if !VerifyPath(tree.Leaf(i), paths[i], tree.Root) {
			t.Fatalf("path for leaf %d failed to verify", i)
		}
	}
	for i := len(leaves); i < 16; i++ {
		if !VerifyPath(big.NewInt(0), paths[i], tree.Root) {
			t.Fatalf("zero-padded slot %d failed to verify", i)
		}
	}
}

func TestBuildRootAndPaths_CapacityExceeded(t *testing.T) {
	leaves := make([]*big.Int, 5)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i))
	}
	if _, _, err := BuildRootAndPaths(leaves, 2); err == nil {
		t.Fatalf("expected capacity error for 5 leaves at depth 2")
	}
}

func TestBuildRootAndPaths_Empty(t *testing.T) {
	tree, paths, err := BuildRootAndPaths(nil, 0)
	if err != nil {
		t.Fatalf("BuildRootAndPaths(empty): %v", err)
	}
	if tree.Root.Sign() != 0 {
		t.Fatalf("expected zero root for empty tree, got %s", tree.Root.String())
	}
	if len(paths) != 0 {
		t.Fatalf("expected zero-length paths for empty tree, got %d", len(paths))
	}
}

func TestPaddingSlotInvariance(t *testing.T) {
	// Appending a record whose fields all hash to zero before an
	// already-padded slot must not change the root, since padding slots
	// are themselves field-zero.
	leaves := []*big.Int{big.NewInt(7), big.NewInt(8)}
	treeA, _, err := BuildRootAndPaths(leaves, 3)
	if err != nil {
		t.Fatalf("BuildRootAndPaths A: %v", err)
	}

	leavesWithZero := []*big.Int{big.NewInt(7), big.NewInt(8), big.NewInt(0)}
	treeB, _, err := BuildRootAndPaths(leavesWithZero, 3)
	if err != nil {
		t.Fatalf("BuildRootAndPaths B: %v", err)
	}

	if treeA.Root.Cmp(treeB.Root) != 0 {
		t.Fatalf("padding slot invariance violated: %s != %s", treeA.Root, treeB.Root)
	}
}

func TestBuildRootOnly_MatchesBuildRootAndPaths(t *testing.T) {
	leaves := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	tree, _, err := BuildRootAndPaths(leaves, 3)
	if err != nil {
		t.Fatalf("BuildRootAndPaths: %v", err)
	}
	root, err := BuildRootOnly(leaves, 3)
	if err != nil {
		t.Fatalf("BuildRootOnly: %v", err)
	}
	if root.Cmp(tree.Root) != 0 {
		t.Fatalf("BuildRootOnly root mismatch: %s != %s", root, tree.Root)
	}
}
