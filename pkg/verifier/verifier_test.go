package verifier

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bundle"
)

func sampleBundle() bundle.ProofBundle {
	return bundle.ProofBundle{
		FullProof:   bundle.NewProofGroup([]byte("full-proof-bytes"), false),
		SubsetProof: bundle.NewProofGroup([]byte("subset-proof-bytes"), false),
		Commitments: bundle.Commitments{
			FullRoot:       bundle.NewDecField(big.NewInt(111)),
			SubsetRoot:     bundle.NewDecField(big.NewInt(222)),
			LogsCommitment: bundle.NewDecField(big.NewInt(333)),
			LibraryVersion: bundle.NewDecField(big.NewInt(444)),
			ScoringMethod:  bundle.NewDecField(big.NewInt(555)),
		},
		Aggregates:    bundle.Aggregates{FullSum: "200", SubsetSum: "100", N: 3, K: 1},
		PublicIndices: []int{0},
	}
}

// A bundle that fails bundle-shape checks never reaches groth16.Verify, so
// these exercise the shape checks, and the missing-key path, without needing
// real proving keys.

func TestVerify_PlaceholderRejected(t *testing.T) {
	b := sampleBundle()
	b.IsPlaceholder = true
	valid, reasons := Verify(Keys{}, b)
	require.False(t, valid)
	require.Contains(t, reasons, "placeholder proof")
}

func TestVerify_PublicIndicesLengthMismatch(t *testing.T) {
	b := sampleBundle()
	b.PublicIndices = []int{0, 1}
	valid, reasons := Verify(Keys{}, b)
	require.False(t, valid)
	require.Contains(t, reasons, "publicIndices length does not match aggregates.k")
}

func TestVerify_MalformedAggregateRejected(t *testing.T) {
	b := sampleBundle()
	b.Aggregates.FullSum = "not-a-number"
	valid, reasons := Verify(Keys{}, b)
	require.False(t, valid)
	require.Contains(t, reasons, "fullSum is not a valid decimal integer")
}

func TestVerify_MissingKeysFailsGracefully(t *testing.T) {
	b := sampleBundle()
	valid, reasons := Verify(Keys{}, b)
	require.False(t, valid)
	require.NotEmpty(t, reasons)
}
