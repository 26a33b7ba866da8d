// Package subset implements deterministic, seeded selection of the public
// test-record subset: a chained-SHA-256 derivation over the sorted id
// multiset, independent of the batch's original record order.
package subset

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
)

// Selection is the deterministic public subset: a sorted list of unique
// indices into the (caller-ordered) batch, plus the seed they were derived
// from.
type Selection struct {
	PublicIndices []int
	Seed          string // hex seed0, for audit/debugging
}

// Count returns k = max(minimumPublic, ceil(publicPercentage * n)), capped
// at n.
func Count(n int, publicPercentage float64, minimumPublic int) int {
	k := int(math.Ceil(publicPercentage * float64(n)))
	if k < minimumPublic {
		k = minimumPublic
	}
	if k > n {
		k = n
	}
	return k
}

// Select derives the public subset from the batch's ids. It never consults
// record order: two batches with the same id multiset (in any order)
// produce the same selection, because the seed is built from the sorted ids.
// Each index is the hash value mod n, used directly as a position in the
// caller-supplied order; it is not mapped back through the sorted ids.
func Select(ids []string, publicPercentage float64, minimumPublic int) (Selection, error) {
	n := len(ids)
	if n == 0 {
		return Selection{}, bencherr.New(bencherr.InvalidBatch, "cannot select a subset of an empty batch")
	}
	k := Count(n, publicPercentage, minimumPublic)

	sorted := make([]string, n)
	copy(sorted, ids)
	sort.Strings(sorted)
	seed0 := sha256.Sum256([]byte(strings.Join(sorted, "|")))

	chosen := make(map[int]struct{}, k)
	seed := seed0
	for len(chosen) < k {
		next := sha256.Sum256(seed[:])
		idx := int(binary.BigEndian.Uint32(next[:4])) % n
		if idx < 0 {
			idx += n
		}
		chosen[idx] = struct{}{}
		seed = next
	}

	indices := make([]int, 0, k)
	for idx := range chosen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	return Selection{PublicIndices: indices, Seed: hex.EncodeToString(seed0[:])}, nil
}

// VerifySelection recomputes the selection for ids and reports whether it
// equals claimed.
func VerifySelection(ids []string, publicPercentage float64, minimumPublic int, claimed []int) (bool, error) {
	recomputed, err := Select(ids, publicPercentage, minimumPublic)
	if err != nil {
		return false, err
	}
	if len(recomputed.PublicIndices) != len(claimed) {
		return false, nil
	}
	for i, idx := range recomputed.PublicIndices {
		if claimed[i] != idx {
			return false, nil
		}
	}
	return true, nil
}
