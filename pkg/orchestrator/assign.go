package orchestrator

import (
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/circuits"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/witness"
)

func toSlotVariable(s witness.SlotFields) circuits.Slot {
	return circuits.Slot{
		TestID:     s.TestID,
		PromptHash: s.PromptHash,
		IdealHash:  s.IdealHash,
		AgentHash:  s.AgentHash,
		Score:      s.Score,
	}
}

func toSubsetAssignment(w *witness.SubsetWitness) *circuits.SubsetCircuit {
	c := &circuits.SubsetCircuit{
		ClaimedScore:      w.ClaimedScore,
		NumTests:          w.NumTests,
		LibraryVersion:    w.LibraryVersion,
		ScoringMethod:     w.ScoringMethod,
		MerkleRoot:        w.MerkleRoot,
		LogsCommitment:    w.LogsCommitment,
		ExecutionLogsHash: w.ExecutionLogsHash,
		NumTestsPrivate:   w.NumTestsPrivate,
	}
	for i := 0; i < circuits.MaxSubsetSlots && i < len(w.Slots); i++ {
		c.Slots[i] = toSlotVariable(w.Slots[i])
	}
	return c
}

func toFullAssignment(w *witness.FullWitness) *circuits.FullCircuit {
	c := &circuits.FullCircuit{
		MerkleRoot:                w.MerkleRoot,
		ClaimedScore:              w.ClaimedScore,
		NumTests:                  w.NumTests,
		SubsetMerkleRoot:          w.SubsetMerkleRoot,
		SubsetClaimedScore:        w.SubsetClaimedScore,
		NumSubset:                 w.NumSubset,
		LogsCommitment:            w.LogsCommitment,
		LibraryVersion:            w.LibraryVersion,
		ScoringMethod:             w.ScoringMethod,
		ExecutionLogsHash:         w.ExecutionLogsHash,
		LibraryCodeHashPriv:       w.LibraryCodeHashPriv,
		ScoringMethodHashPriv:     w.ScoringMethodHashPriv,
		NumSubsetPrivate:          w.NumSubsetPrivate,
		SubsetMerkleRootPrivate:   w.SubsetMerkleRootPrivate,
		SubsetClaimedScorePrivate: w.SubsetClaimedScorePrivate,
	}
	for i := 0; i < circuits.MaxFullSlots && i < len(w.Slots); i++ {
		c.Slots[i] = toSlotVariable(w.Slots[i])
		for lvl := 0; lvl < circuits.FullDepth && lvl < len(w.AuthPaths[i].Siblings); lvl++ {
			c.AuthSiblings[i][lvl] = w.AuthPaths[i].Siblings[lvl]
			c.AuthBits[i][lvl] = w.AuthPaths[i].Bits[lvl]
		}
	}
	for i := 0; i < circuits.MaxSubsetSlots && i < len(w.SubsetScores); i++ {
		c.SubsetScores[i] = w.SubsetScores[i]
		c.SubsetIndices[i] = w.SubsetIndices[i]
	}
	return c
}
