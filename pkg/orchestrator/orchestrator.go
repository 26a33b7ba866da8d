// Package orchestrator drives the dual-proof sequence: select the public
// subset, build leaves once, prove the subset circuit, pin its root into
// the full circuit, prove the full circuit, and assemble the ProofBundle.
package orchestrator

import (
	"context"
	"math/big"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/benchconfig"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bundle"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/evalrecord"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/field"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/logging"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/merkle"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/methodology"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/prover"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/providers"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/subset"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/witness"
)

// Orchestrator owns one runAndProve call's worth of state. It introduces no
// package-level mutable state, so multiple instances may run concurrently
// on different batches.
type Orchestrator struct {
	Config     benchconfig.Config
	Backend    prover.Backend
	SourceRoot string // root of this module's own source tree, for the library manifest hash
}

// New builds an Orchestrator, validating configuration up front.
func New(cfg benchconfig.Config, backend prover.Backend, sourceRoot string) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, bencherr.New(bencherr.InvalidConfig, "prover backend is required")
	}
	return &Orchestrator{Config: cfg, Backend: backend, SourceRoot: sourceRoot}, nil
}

// RunInputs is everything one runAndProve call needs beyond configuration.
type RunInputs struct {
	Batch              []evalrecord.TestRecord
	ScoringDescriptors []methodology.ScoringDescriptorInput
	ExecutionLog       []providers.ToolCallRecord
}

// Result is the outcome of one run: the bundle plus the derived mean scores
// for human consumption (never fed back into witness assembly).
type Result struct {
	Bundle     bundle.ProofBundle
	FullMean   float64
	SubsetMean float64
}

// RunAndProve executes the full dual-proof sequence: normalise and validate
// the batch, select the public subset, build the subset proof first (its
// root is a hard prerequisite for the full proof), then build the full
// proof pinning that root.
func (o *Orchestrator) RunAndProve(ctx context.Context, in RunInputs) (*Result, error) {
	if err := evalrecord.Validate(in.Batch); err != nil {
		return nil, err
	}

	ids := make([]string, len(in.Batch))
	for i, r := range in.Batch {
		ids[i] = r.ID
	}

	sel, err := subset.Select(ids, o.Config.PublicPercentage, o.Config.MinimumPublic)
	if err != nil {
		return nil, err
	}

	executionLogsHash := methodology.ExecutionLogsHash(in.ExecutionLog)
	scoringMethodHash := methodology.ScoringMethodHash(in.ScoringDescriptors)
	libraryCodeHash, err := methodology.LibraryCodeHash(o.SourceRoot)
	if err != nil {
		return nil, bencherr.Wrap(bencherr.InvalidConfig, "", err, "failed to compute library code manifest hash")
	}
	libraryVersion := field.Poseidon(libraryCodeHash)
	scoringMethod := field.Poseidon(scoringMethodHash)

	full := witness.BuildFullLeafVector(in.Batch)

	subsetWitness, err := witness.BuildSubsetWitness(full, sel.PublicIndices, o.Config.MaxSubset, o.Config.SubsetDepth, executionLogsHash, libraryVersion, scoringMethod, nil)
	if err != nil {
		return nil, err
	}

	subsetAssignment := toSubsetAssignment(subsetWitness)
	subsetProof, err := o.Backend.ProveSubset(ctx, subsetAssignment)
	if err != nil {
		if o.Config.AllowPlaceholder {
			logging.L().Warn().Err(err).Msg("subset prover failed, falling back to placeholder bundle")
			return placeholderResult(sel, executionLogsHash, libraryVersion, scoringMethod, len(in.Batch)), nil
		}
		return nil, err
	}

	// Cross-check: re-run the Merkle engine on the same leaves. A mismatch
	// between the root we assembled and what we are about to pin into the
	// full witness is fatal.
	recomputedRoot, err := recomputeSubsetRoot(full, sel.PublicIndices, o.Config.MaxSubset, o.Config.SubsetDepth)
	if err != nil {
		return nil, err
	}
	if recomputedRoot.Cmp(subsetWitness.MerkleRoot) != 0 {
		return nil, bencherr.New(bencherr.VerificationFailure, "subset root cross-check mismatch")
	}

	fullWitness, err := witness.BuildFullWitness(full, o.Config.MaxTests, o.Config.FullDepth, sel.PublicIndices, subsetWitness, executionLogsHash, libraryCodeHash, scoringMethodHash, libraryVersion, scoringMethod, nil)
	if err != nil {
		return nil, err
	}

	fullAssignment := toFullAssignment(fullWitness)
	fullProof, err := o.Backend.ProveFull(ctx, fullAssignment)
	if err != nil {
		if o.Config.AllowPlaceholder {
			logging.L().Warn().Err(err).Msg("full prover failed, falling back to placeholder bundle")
			return placeholderResult(sel, executionLogsHash, libraryVersion, scoringMethod, len(in.Batch)), nil
		}
		return nil, err
	}

	b := bundle.ProofBundle{
		FullProof:     bundle.NewProofGroup(fullProof.Bytes, fullProof.IsPlaceholder),
		SubsetProof:   bundle.NewProofGroup(subsetProof.Bytes, subsetProof.IsPlaceholder),
		IsPlaceholder: fullProof.IsPlaceholder || subsetProof.IsPlaceholder,
		Commitments: bundle.Commitments{
			FullRoot:       bundle.NewDecField(fullWitness.MerkleRoot),
			SubsetRoot:     bundle.NewDecField(subsetWitness.MerkleRoot),
			LogsCommitment: bundle.NewDecField(fullWitness.LogsCommitment),
			LibraryVersion: bundle.NewDecField(libraryVersion),
			ScoringMethod:  bundle.NewDecField(scoringMethod),
		},
		Aggregates: bundle.Aggregates{
			FullSum:   big.NewInt(int64(fullWitness.ClaimedScore)).String(),
			SubsetSum: big.NewInt(int64(subsetWitness.ClaimedScore)).String(),
			N:         len(in.Batch),
			K:         len(sel.PublicIndices),
		},
		PublicIndices: sel.PublicIndices,
	}

	return &Result{
		Bundle:     b,
		FullMean:   float64(fullWitness.ClaimedScore) / float64(len(in.Batch)),
		SubsetMean: float64(subsetWitness.ClaimedScore) / float64(len(sel.PublicIndices)),
	}, nil
}

// placeholderResult builds the §4.9 fallback bundle, explicitly flagged so a
// real verifier rejects it. It carries logsCommitment, libraryVersion and
// scoringMethod only: fullRoot and subsetRoot are not set (they encode as
// "0") and the fullSum/subsetSum aggregates are empty strings.
func placeholderResult(sel subset.Selection, executionLogsHash, libraryVersion, scoringMethod *big.Int, n int) *Result {
	b := bundle.ProofBundle{
		FullProof:     bundle.NewProofGroup(nil, true),
		SubsetProof:   bundle.NewProofGroup(nil, true),
		IsPlaceholder: true,
		Commitments: bundle.Commitments{
			LogsCommitment: bundle.NewDecField(field.Poseidon(executionLogsHash)),
			LibraryVersion: bundle.NewDecField(libraryVersion),
			ScoringMethod:  bundle.NewDecField(scoringMethod),
		},
		Aggregates: bundle.Aggregates{
			N: n,
			K: len(sel.PublicIndices),
		},
		PublicIndices: sel.PublicIndices,
	}
	return &Result{Bundle: b}
}

func recomputeSubsetRoot(full []witness.SlotFields, publicIndices []int, maxSubset, depth int) (*big.Int, error) {
	leaves := make([]*big.Int, maxSubset)
	for i := range leaves {
		if i < len(publicIndices) {
			leaves[i] = leafHashOf(full[publicIndices[i]])
		} else {
			leaves[i] = evalrecord.ZeroLeafHash()
		}
	}
	return merkle.BuildRootOnly(leaves, depth)
}

func leafHashOf(s witness.SlotFields) *big.Int {
	return field.Poseidon(s.TestID, s.PromptHash, s.IdealHash, s.AgentHash, big.NewInt(int64(s.Score)))
}
