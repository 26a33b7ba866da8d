package orchestrator

import (
	"context"
	"testing"

	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/require"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/benchconfig"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/evalrecord"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/prover"
)

// fakeBackend stands in for the external collaborator prover in tests: it
// returns a deterministic non-placeholder proof without touching gnark's
// actual constraint-system machinery.
type fakeBackend struct{ fail bool }

func (f fakeBackend) ProveSubset(ctx context.Context, assignment frontend.Circuit) (prover.Proof, error) {
	if f.fail {
		return prover.Proof{}, context.DeadlineExceeded
	}
	return prover.Proof{Bytes: []byte("subset-proof")}, nil
}

func (f fakeBackend) ProveFull(ctx context.Context, assignment frontend.Circuit) (prover.Proof, error) {
	if f.fail {
		return prover.Proof{}, context.DeadlineExceeded
	}
	return prover.Proof{Bytes: []byte("full-proof")}, nil
}

func tinyBatch() []evalrecord.TestRecord {
	return []evalrecord.TestRecord{
		{ID: "a", Prompt: "p1", IdealOutput: "i1", AgentOutput: "i1", IsBoolScore: true, BoolScore: true},
		{ID: "b", Prompt: "p2", IdealOutput: "i2", AgentOutput: "X", IsBoolScore: true, BoolScore: false},
		{ID: "c", Prompt: "p3", IdealOutput: "i3", AgentOutput: "i3", IsBoolScore: true, BoolScore: true},
	}
}

func TestRunAndProve_TinyBatch(t *testing.T) {
	cfg := benchconfig.Default()
	cfg.MaxTests = 8
	cfg.FullDepth = 3
	cfg.MaxSubset = 4
	cfg.SubsetDepth = 2

	o, err := New(cfg, fakeBackend{}, ".")
	require.NoError(t, err)

	result, err := o.RunAndProve(context.Background(), RunInputs{Batch: tinyBatch()})
	require.NoError(t, err)
	require.False(t, result.Bundle.IsPlaceholder)
	require.Equal(t, "200", result.Bundle.Aggregates.FullSum, "two true scores of 100 each")
	require.Equal(t, 1, result.Bundle.Aggregates.K)
	require.Equal(t, 3, result.Bundle.Aggregates.N)
}

func TestRunAndProve_PlaceholderFallback(t *testing.T) {
	cfg := benchconfig.Default()
	cfg.MaxTests = 8
	cfg.FullDepth = 3
	cfg.MaxSubset = 4
	cfg.SubsetDepth = 2
	cfg.AllowPlaceholder = true

	o, err := New(cfg, fakeBackend{fail: true}, ".")
	require.NoError(t, err)

	result, err := o.RunAndProve(context.Background(), RunInputs{Batch: tinyBatch()})
	require.NoError(t, err)
	require.True(t, result.Bundle.IsPlaceholder)
}

func TestRunAndProve_NoFallbackWithoutFlag(t *testing.T) {
	cfg := benchconfig.Default()
	cfg.MaxTests = 8
	cfg.FullDepth = 3
	cfg.MaxSubset = 4
	cfg.SubsetDepth = 2

	o, err := New(cfg, fakeBackend{fail: true}, ".")
	require.NoError(t, err)

	_, err = o.RunAndProve(context.Background(), RunInputs{Batch: tinyBatch()})
	require.Error(t, err)
}

func TestRunAndProve_DuplicateIDRejected(t *testing.T) {
	cfg := benchconfig.Default()
	o, err := New(cfg, fakeBackend{}, ".")
	require.NoError(t, err)

	batch := tinyBatch()
	batch[1].ID = batch[0].ID
	_, err = o.RunAndProve(context.Background(), RunInputs{Batch: batch})
	require.Error(t, err)
}
