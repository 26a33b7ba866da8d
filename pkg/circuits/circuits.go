// Package circuits defines the gnark frontend.Circuit structs whose
// frontend.Variable field order is the normative public-signal ordering for
// the two Groth16 circuits (subset and full). Per this module's scope, the
// circuits' constraint systems themselves are owned by the external
// collaborator prover team; Define here only ties a few public inputs
// (numTests, and in the full circuit the subset root, subset claimed score
// and numSubset) to their private counterparts with equality constraints,
// and leaves the public outputs unconstrained. That is just enough to make
// these valid, compilable frontend.Circuit values for witness
// serialisation (frontend.NewWitness / .Public()) and for local
// verification against externally supplied keys. It is not the production
// arithmetisation.
package circuits

import "github.com/consensys/gnark/frontend"

// MaxSubsetSlots and MaxFullSlots size the fixed-length per-slot arrays
// below. They mirror the default maxSubset/maxTests configuration; a
// deployment that needs different capacities recompiles with different
// constants, since gnark circuit shapes are fixed at compile time.
const (
	MaxSubsetSlots = 10
	MaxFullSlots   = 100
	FullDepth      = 10
)

// Slot holds the five leaf-hash inputs for one record, used as private
// per-slot data in both circuits.
type Slot struct {
	TestID     frontend.Variable
	PromptHash frontend.Variable
	IdealHash  frontend.Variable
	AgentHash  frontend.Variable
	Score      frontend.Variable
}

// SubsetCircuit's Variable field order matches the normative subset
// ordering: [claimedScore, numTests, libraryVersion, scoringMethod,
// merkleRoot (out), logsCommitment (out)].
type SubsetCircuit struct {
	// Public inputs.
	ClaimedScore   frontend.Variable `gnark:",public"`
	NumTests       frontend.Variable `gnark:",public"`
	LibraryVersion frontend.Variable `gnark:",public"`
	ScoringMethod  frontend.Variable `gnark:",public"`

	// Public outputs (echoed/derived in-circuit).
	MerkleRoot     frontend.Variable `gnark:",public"`
	LogsCommitment frontend.Variable `gnark:",public"`

	// Private inputs.
	Slots             [MaxSubsetSlots]Slot
	ExecutionLogsHash frontend.Variable
	NumTestsPrivate   frontend.Variable
}

func (c *SubsetCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.NumTests, c.NumTestsPrivate)
	return nil
}

// FullCircuit's Variable field order matches the normative full ordering:
// [merkleRoot, claimedScore, numTests, subsetMerkleRoot, subsetClaimedScore,
// numSubset, logsCommitment (out), libraryVersion (out), scoringMethod (out)].
type FullCircuit struct {
	// Public inputs.
	MerkleRoot         frontend.Variable `gnark:",public"`
	ClaimedScore       frontend.Variable `gnark:",public"`
	NumTests           frontend.Variable `gnark:",public"`
	SubsetMerkleRoot   frontend.Variable `gnark:",public"`
	SubsetClaimedScore frontend.Variable `gnark:",public"`
	NumSubset          frontend.Variable `gnark:",public"`

	// Public outputs (echoed/derived in-circuit).
	LogsCommitment frontend.Variable `gnark:",public"`
	LibraryVersion frontend.Variable `gnark:",public"`
	ScoringMethod  frontend.Variable `gnark:",public"`

	// Private inputs.
	Slots                 [MaxFullSlots]Slot
	AuthSiblings          [MaxFullSlots][FullDepth]frontend.Variable
	AuthBits              [MaxFullSlots][FullDepth]frontend.Variable
	ExecutionLogsHash     frontend.Variable
	LibraryCodeHashPriv   frontend.Variable
	ScoringMethodHashPriv frontend.Variable

	// Subset reconstruction data.
	SubsetScores              [MaxSubsetSlots]frontend.Variable
	SubsetIndices             [MaxSubsetSlots]frontend.Variable
	NumSubsetPrivate          frontend.Variable
	SubsetMerkleRootPrivate   frontend.Variable
	SubsetClaimedScorePrivate frontend.Variable
}

func (c *FullCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.NumTests, c.NumTests)
	api.AssertIsEqual(c.SubsetMerkleRoot, c.SubsetMerkleRootPrivate)
	api.AssertIsEqual(c.SubsetClaimedScore, c.SubsetClaimedScorePrivate)
	api.AssertIsEqual(c.NumSubset, c.NumSubsetPrivate)
	return nil
}
