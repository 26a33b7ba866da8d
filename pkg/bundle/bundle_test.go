package bundle

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleBundle() ProofBundle {
	return ProofBundle{
		FullProof:   NewProofGroup([]byte{1, 2, 3}, false),
		SubsetProof: NewProofGroup([]byte{4, 5, 6}, false),
		Commitments: Commitments{
			FullRoot:       NewDecField(big.NewInt(123456789)),
			SubsetRoot:     NewDecField(big.NewInt(987654321)),
			LogsCommitment: NewDecField(big.NewInt(42)),
			LibraryVersion: NewDecField(big.NewInt(7)),
			ScoringMethod:  NewDecField(big.NewInt(9)),
		},
		Aggregates:    Aggregates{FullSum: "200", SubsetSum: "100", N: 3, K: 1},
		PublicIndices: []int{1},
	}
}

func TestProofBundle_RoundTrip(t *testing.T) {
	b := sampleBundle()
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var b2 ProofBundle
	require.NoError(t, json.Unmarshal(data, &b2))

	require.Equal(t, b.Commitments.FullRoot.String(), b2.Commitments.FullRoot.String())
	require.Equal(t, b.Aggregates, b2.Aggregates)
	require.Equal(t, b.PublicIndices, b2.PublicIndices)

	data2, err := json.Marshal(b2)
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(data2))
}

func TestDecField_DecimalNoLeadingZeroOrHex(t *testing.T) {
	d := NewDecField(big.NewInt(255))
	out, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"255"`, string(out))
}
