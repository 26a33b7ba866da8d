// Package prover defines the single seam to the external collaborator
// Groth16 prover: a Backend interface, a PlaceholderBackend implementing the
// explicit fallback mode, and a LocalGroth16Backend driving gnark's own
// groth16.Prove/Verify once compiled circuits and keys are supplied.
package prover

import (
	"bytes"
	"context"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
)

// Proof is an opaque, serialised Groth16 proof. The orchestrator already
// holds the host-side witness values it assembled (merkle roots, claimed
// scores, …); it cross-checks those independently (re-running the Merkle
// engine on the same leaves) rather than parsing them back out of the
// proof, so Proof need not expose a structured public-signal vector.
type Proof struct {
	Bytes         []byte
	IsPlaceholder bool
}

// Backend is the seam every orchestrator call goes through; it never
// constructs a constraint system itself.
type Backend interface {
	ProveSubset(ctx context.Context, assignment frontend.Circuit) (Proof, error)
	ProveFull(ctx context.Context, assignment frontend.Circuit) (Proof, error)
}

// PlaceholderBackend implements the §4.9 fallback: it fabricates sentinel
// proofs, marked IsPlaceholder, that real verification must reject. It never
// consults prover artefacts. It is chosen by whoever builds the
// orchestrator, independently of AllowPlaceholder; the orchestrator flags
// any bundle built from its proofs as a placeholder.
type PlaceholderBackend struct{}

func (PlaceholderBackend) ProveSubset(ctx context.Context, assignment frontend.Circuit) (Proof, error) {
	return placeholderProof(), nil
}

func (PlaceholderBackend) ProveFull(ctx context.Context, assignment frontend.Circuit) (Proof, error) {
	return placeholderProof(), nil
}

func placeholderProof() Proof {
	return Proof{Bytes: []byte("placeholder"), IsPlaceholder: true}
}

// CircuitArtefacts bundles the compiled constraint system and Groth16 keys
// for one circuit, as produced by cmd/setup (or supplied by an external
// collaborator).
type CircuitArtefacts struct {
	CS constraint.ConstraintSystem
	PK groth16.ProvingKey
	VK groth16.VerifyingKey
}

// LocalGroth16Backend drives groth16.Prove/Verify directly against
// caller-supplied compiled circuits and keys, the same sequence used
// throughout this family of repos for in-process proof export: compile,
// load keys, build witness, prove, verify.
type LocalGroth16Backend struct {
	Subset CircuitArtefacts
	Full   CircuitArtefacts
}

func (b LocalGroth16Backend) ProveSubset(ctx context.Context, assignment frontend.Circuit) (Proof, error) {
	return proveAndVerify(ctx, b.Subset, assignment)
}

func (b LocalGroth16Backend) ProveFull(ctx context.Context, assignment frontend.Circuit) (Proof, error) {
	return proveAndVerify(ctx, b.Full, assignment)
}

func proveAndVerify(ctx context.Context, art CircuitArtefacts, assignment frontend.Circuit) (Proof, error) {
	if art.CS == nil || art.PK == nil || art.VK == nil {
		return Proof{}, bencherr.New(bencherr.ProverArtefactMissing, "prover artefacts not loaded")
	}
	select {
	case <-ctx.Done():
		return Proof{}, ctx.Err()
	default:
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return Proof{}, bencherr.Wrap(bencherr.ProverInvocationError, "", err, "failed to build witness")
	}
	publicWitness, err := w.Public()
	if err != nil {
		return Proof{}, bencherr.Wrap(bencherr.ProverInvocationError, "", err, "failed to derive public witness")
	}

	proof, err := groth16.Prove(art.CS, art.PK, w)
	if err != nil {
		return Proof{}, bencherr.Wrap(bencherr.ProverInvocationError, "", err, "groth16.Prove failed")
	}
	if err := groth16.Verify(proof, art.VK, publicWitness); err != nil {
		return Proof{}, bencherr.Wrap(bencherr.ProverInvocationError, "", err, "groth16.Verify failed on freshly generated proof")
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return Proof{}, bencherr.Wrap(bencherr.ProverInvocationError, "", err, "failed to serialise proof")
	}

	return Proof{Bytes: buf.Bytes()}, nil
}
