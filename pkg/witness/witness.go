// Package witness assembles the private and public inputs for both Groth16
// circuits: per-slot leaf fields, zero-padding to each circuit's fixed
// capacity, authentication paths for the full circuit, and the subset
// reconstruction data that binds the two proofs together.
package witness

import (
	"math/big"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/evalrecord"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/field"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/merkle"
)

// SlotFields is the host-side (plain *big.Int) projection of one record's
// leaf inputs, used to build both witnesses before they are mapped onto
// gnark circuit assignments.
type SlotFields struct {
	TestID     *big.Int
	PromptHash *big.Int
	IdealHash  *big.Int
	AgentHash  *big.Int
	Score      int
}

func zeroSlot() SlotFields {
	return SlotFields{TestID: big.NewInt(0), PromptHash: big.NewInt(0), IdealHash: big.NewInt(0), AgentHash: big.NewInt(0), Score: 0}
}

// SubsetWitness is the host-side subset-circuit witness.
type SubsetWitness struct {
	// Public inputs.
	ClaimedScore   int
	NumTests       int
	LibraryVersion *big.Int
	ScoringMethod  *big.Int

	// Expected public outputs (recomputed here for the fatal pre-prover
	// cross-check; the real values are whatever the prover returns).
	MerkleRoot     *big.Int
	LogsCommitment *big.Int

	// Private inputs.
	Slots             []SlotFields // len == maxSubset, zero-padded
	ExecutionLogsHash *big.Int
	NumTestsPrivate   int
}

// FullWitness is the host-side full-circuit witness.
type FullWitness struct {
	// Public inputs.
	MerkleRoot         *big.Int
	ClaimedScore       int
	NumTests           int
	SubsetMerkleRoot   *big.Int
	SubsetClaimedScore int
	NumSubset          int

	// Expected public outputs.
	LogsCommitment *big.Int
	LibraryVersion *big.Int
	ScoringMethod  *big.Int

	// Private inputs.
	Slots                 []SlotFields // len == maxTests, zero-padded
	AuthPaths             []merkle.AuthPath
	ExecutionLogsHash     *big.Int
	LibraryCodeHashPriv   *big.Int
	ScoringMethodHashPriv *big.Int

	SubsetScores              []int
	SubsetIndices             []int
	NumSubsetPrivate          int
	SubsetMerkleRootPrivate   *big.Int
	SubsetClaimedScorePrivate int
}

// BuildFullLeafVector computes the leaf-hash inputs for every record in
// batch order, the canonical ordering every downstream structure (full
// tree, subset extraction) derives from.
func BuildFullLeafVector(batch []evalrecord.TestRecord) []SlotFields {
	slots := make([]SlotFields, len(batch))
	for i, r := range batch {
		testID, prompt, ideal, agent, score := r.LeafFields()
		slots[i] = SlotFields{TestID: testID, PromptHash: prompt, IdealHash: ideal, AgentHash: agent, Score: score}
	}
	return slots
}

// sum returns the exact integer sum of the given slots' scores — the
// assembler's claimedScore, never an average.
func sum(slots []SlotFields) int {
	total := 0
	for _, s := range slots {
		total += s.Score
	}
	return total
}

// Reconcile walks slots left-to-right, adjusting scores by ±1 so their sum
// equals target, without pushing any score outside [0,100]. It is a fatal
// (CircuitInputOutOfRange) error if no deterministic walk can reach target.
func Reconcile(slots []SlotFields, target int) error {
	current := sum(slots)
	delta := target - current
	if delta == 0 {
		return nil
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	remaining := delta
	if remaining < 0 {
		remaining = -remaining
	}
	for remaining > 0 {
		progressed := false
		for i := 0; i < len(slots) && remaining > 0; i++ {
			candidate := slots[i].Score + step
			if candidate < 0 || candidate > 100 {
				continue
			}
			slots[i].Score = candidate
			remaining--
			progressed = true
		}
		if !progressed {
			break
		}
	}
	if remaining != 0 {
		return bencherr.New(bencherr.CircuitInputOutOfRange,
			"score reconciliation could not reach target claim without leaving [0,100]")
	}
	return nil
}

func leafHashes(slots []SlotFields) []*big.Int {
	out := make([]*big.Int, len(slots))
	for i, s := range slots {
		out[i] = leafHash(s)
	}
	return out
}

// leafHash mirrors evalrecord.TestRecord.LeafHash's formula directly on
// slot fields, since slots here may be padding entries with no backing
// record to call the method on.
func leafHash(s SlotFields) *big.Int {
	return field.Poseidon(s.TestID, s.PromptHash, s.IdealHash, s.AgentHash, big.NewInt(int64(s.Score)))
}

func poseidon1(x *big.Int) *big.Int {
	return field.Poseidon(x)
}

// BuildSubsetWitness extracts the slots at publicIndices from the full leaf
// vector, zero-pads to maxSubset, reconciles the claimed score, and derives
// the subset witness. claimedScoreOverride, when non-nil and different from
// the natural sum, is reached by adjusting the subset scores with Reconcile
// (CircuitInputOutOfRange if it cannot be reached); when nil the natural sum
// is used directly.
func BuildSubsetWitness(full []SlotFields, publicIndices []int, maxSubset, depth int, executionLogsHash, libraryVersion, scoringMethod *big.Int, claimedScoreOverride *int) (*SubsetWitness, error) {
	if len(publicIndices) > maxSubset {
		return nil, bencherr.Newf(bencherr.CircuitInputOutOfRange, "subset size %d exceeds maxSubset %d", len(publicIndices), maxSubset)
	}

	slots := make([]SlotFields, maxSubset)
	for i := range slots {
		if i < len(publicIndices) {
			idx := publicIndices[i]
			if idx < 0 || idx >= len(full) {
				return nil, bencherr.Newf(bencherr.CircuitInputOutOfRange, "subset index %d out of range [0,%d)", idx, len(full))
			}
			slots[i] = full[idx]
		} else {
			slots[i] = zeroSlot()
		}
	}

	natural := sum(slots[:len(publicIndices)])
	claimed := natural
	if claimedScoreOverride != nil {
		claimed = *claimedScoreOverride
		if claimed != natural {
			if err := Reconcile(slots[:len(publicIndices)], claimed); err != nil {
				return nil, err
			}
		}
	}

	root, err := merkle.BuildRootOnly(leafHashes(slots), depth)
	if err != nil {
		return nil, err
	}

	return &SubsetWitness{
		ClaimedScore:      claimed,
		NumTests:          len(publicIndices),
		LibraryVersion:    libraryVersion,
		ScoringMethod:     scoringMethod,
		MerkleRoot:        root,
		LogsCommitment:    poseidon1(executionLogsHash),
		Slots:             slots,
		ExecutionLogsHash: executionLogsHash,
		NumTestsPrivate:   len(publicIndices),
	}, nil
}

// BuildFullWitness zero-pads the full leaf vector to maxTests, builds the
// full tree and per-slot authentication paths, and embeds the subset
// reconstruction data (subsetRoot pinned from the already-produced subset
// proof, per the hard cross-proof ordering).
func BuildFullWitness(full []SlotFields, maxTests, depth int, publicIndices []int, subsetWitness *SubsetWitness, executionLogsHash, libraryCodeHash, scoringMethodHash, libraryVersion, scoringMethod *big.Int, claimedScoreOverride *int) (*FullWitness, error) {
	if len(full) > maxTests {
		return nil, bencherr.Newf(bencherr.CircuitInputOutOfRange, "batch size %d exceeds maxTests %d", len(full), maxTests)
	}

	slots := make([]SlotFields, maxTests)
	for i := range slots {
		if i < len(full) {
			slots[i] = full[i]
		} else {
			slots[i] = zeroSlot()
		}
	}

	natural := sum(slots[:len(full)])
	claimed := natural
	if claimedScoreOverride != nil {
		claimed = *claimedScoreOverride
		if claimed != natural {
			if err := Reconcile(slots[:len(full)], claimed); err != nil {
				return nil, err
			}
		}
	}

	tree, paths, err := merkle.BuildRootAndPaths(leafHashes(slots), depth)
	if err != nil {
		return nil, err
	}

	subsetScores := make([]int, len(subsetWitness.Slots))
	for i, s := range subsetWitness.Slots {
		subsetScores[i] = s.Score
	}
	subsetIndices := make([]int, len(subsetWitness.Slots))
	for i := range subsetIndices {
		if i < len(publicIndices) {
			subsetIndices[i] = publicIndices[i]
		} else {
			subsetIndices[i] = 0
		}
	}

	return &FullWitness{
		MerkleRoot:                tree.Root,
		ClaimedScore:              claimed,
		NumTests:                  len(full),
		SubsetMerkleRoot:          subsetWitness.MerkleRoot,
		SubsetClaimedScore:        subsetWitness.ClaimedScore,
		NumSubset:                 subsetWitness.NumTestsPrivate,
		LogsCommitment:            poseidon1(executionLogsHash),
		LibraryVersion:            libraryVersion,
		ScoringMethod:             scoringMethod,
		Slots:                     slots,
		AuthPaths:                 paths[:len(slots)],
		ExecutionLogsHash:         executionLogsHash,
		LibraryCodeHashPriv:       libraryCodeHash,
		ScoringMethodHashPriv:     scoringMethodHash,
		SubsetScores:              subsetScores,
		SubsetIndices:             subsetIndices,
		NumSubsetPrivate:          subsetWitness.NumTestsPrivate,
		SubsetMerkleRootPrivate:   subsetWitness.MerkleRoot,
		SubsetClaimedScorePrivate: subsetWitness.ClaimedScore,
	}, nil
}
