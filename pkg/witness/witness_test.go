package witness

import (
	"math/big"
	"testing"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/evalrecord"
	"github.com/stretchr/testify/require"
)

func tinyBatch() []evalrecord.TestRecord {
	return []evalrecord.TestRecord{
		{ID: "a", Prompt: "p1", IdealOutput: "i1", AgentOutput: "i1", IsBoolScore: true, BoolScore: true},
		{ID: "b", Prompt: "p2", IdealOutput: "i2", AgentOutput: "X", IsBoolScore: true, BoolScore: false},
		{ID: "c", Prompt: "p3", IdealOutput: "i3", AgentOutput: "i3", IsBoolScore: true, BoolScore: true},
	}
}

func TestBuildSubsetWitness_NaturalSum(t *testing.T) {
	full := BuildFullLeafVector(tinyBatch())
	sw, err := BuildSubsetWitness(full, []int{0}, 4, 2, bigZero(), bigZero(), bigZero(), nil)
	require.NoError(t, err)
	require.Equal(t, 100, sw.ClaimedScore)
	require.Len(t, sw.Slots, 4)
}

func TestBuildFullWitness_ScoreSum(t *testing.T) {
	full := BuildFullLeafVector(tinyBatch())
	sw, err := BuildSubsetWitness(full, []int{0}, 4, 2, bigZero(), bigZero(), bigZero(), nil)
	require.NoError(t, err)

	fw, err := BuildFullWitness(full, 8, 3, []int{0}, sw, bigZero(), bigZero(), bigZero(), bigZero(), bigZero(), nil)
	require.NoError(t, err)
	require.Equal(t, 200, fw.ClaimedScore, "a and c score 100, b scores 0")
	require.Equal(t, sw.MerkleRoot.String(), fw.SubsetMerkleRoot.String())
}

func TestReconcile_Adjusts(t *testing.T) {
	slots := make([]SlotFields, 10)
	for i := range slots {
		slots[i] = SlotFields{TestID: bigZero(), PromptHash: bigZero(), IdealHash: bigZero(), AgentHash: bigZero(), Score: 10}
	}
	slots[9].Score = 11 // sum = 101

	require.Equal(t, 101, sum(slots))

	if err := Reconcile(slots, 100); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	require.Equal(t, 100, sum(slots))
}

func TestReconcile_Noop(t *testing.T) {
	slots := []SlotFields{{Score: 50}, {Score: 50}}
	require.NoError(t, Reconcile(slots, 100))
	require.Equal(t, 100, sum(slots))
}

func bigZero() *big.Int { return big.NewInt(0) }
