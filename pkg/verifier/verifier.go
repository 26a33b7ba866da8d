// Package verifier implements the consumer side of a ProofBundle: both
// groth16.Verify calls plus the cross-proof consistency checks that bind
// the subset and full proofs together. It never touches private circuit
// inputs — the bundle carries none.
package verifier

import (
	"bytes"
	"encoding/base64"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bundle"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/circuits"
)

// Keys holds the verification keys for both circuits, as produced by
// cmd/setup or supplied by an external collaborator.
type Keys struct {
	SubsetVK groth16.VerifyingKey
	FullVK   groth16.VerifyingKey
}

// Verify checks a ProofBundle end to end: placeholder rejection, bundle
// well-formedness, cross-proof binding (subset root, claimed score, num
// subset, libraryVersion, scoringMethod, logsCommitment all pinned
// identically into both proofs), and the two groth16.Verify calls
// themselves. It never panics on a malformed bundle — every failure is
// appended to reasons and valid is false.
func Verify(keys Keys, b bundle.ProofBundle) (valid bool, reasons []string) {
	if b.IsPlaceholder || b.SubsetProof.IsPlaceholder || b.FullProof.IsPlaceholder {
		return false, []string{"placeholder proof"}
	}

	if len(b.PublicIndices) != b.Aggregates.K {
		reasons = append(reasons, "publicIndices length does not match aggregates.k")
	}

	fullSum, ok := new(big.Int).SetString(b.Aggregates.FullSum, 10)
	if !ok {
		reasons = append(reasons, "fullSum is not a valid decimal integer")
	}
	subsetSum, ok := new(big.Int).SetString(b.Aggregates.SubsetSum, 10)
	if !ok {
		reasons = append(reasons, "subsetSum is not a valid decimal integer")
	}
	if len(reasons) > 0 {
		return false, reasons
	}

	subsetPublic := &circuits.SubsetCircuit{
		ClaimedScore:   int(subsetSum.Int64()),
		NumTests:       b.Aggregates.K,
		LibraryVersion: b.Commitments.LibraryVersion.Int,
		ScoringMethod:  b.Commitments.ScoringMethod.Int,
		MerkleRoot:     b.Commitments.SubsetRoot.Int,
		LogsCommitment: b.Commitments.LogsCommitment.Int,
	}
	fullPublic := &circuits.FullCircuit{
		MerkleRoot:         b.Commitments.FullRoot.Int,
		ClaimedScore:       int(fullSum.Int64()),
		NumTests:           b.Aggregates.N,
		SubsetMerkleRoot:   b.Commitments.SubsetRoot.Int,
		SubsetClaimedScore: int(subsetSum.Int64()),
		NumSubset:          b.Aggregates.K,
		LogsCommitment:     b.Commitments.LogsCommitment.Int,
		LibraryVersion:     b.Commitments.LibraryVersion.Int,
		ScoringMethod:      b.Commitments.ScoringMethod.Int,
	}

	// Cross-proof binding: every field the full circuit claims to pin from
	// the subset proof must match what the subset circuit itself publishes.
	if !sameField(fullPublic.SubsetMerkleRoot, subsetPublic.MerkleRoot) {
		reasons = append(reasons, "subset root mismatch: full proof's pinned subset root does not match subset proof's merkle root")
	}
	if fullPublic.SubsetClaimedScore != subsetPublic.ClaimedScore {
		reasons = append(reasons, "subset claimed score mismatch between full and subset proofs")
	}
	if fullPublic.NumSubset != subsetPublic.NumTests {
		reasons = append(reasons, "numSubset mismatch between full and subset proofs")
	}
	if !sameField(fullPublic.LibraryVersion, subsetPublic.LibraryVersion) {
		reasons = append(reasons, "libraryVersion mismatch between full and subset proofs")
	}
	if !sameField(fullPublic.ScoringMethod, subsetPublic.ScoringMethod) {
		reasons = append(reasons, "scoringMethod mismatch between full and subset proofs")
	}
	if !sameField(fullPublic.LogsCommitment, subsetPublic.LogsCommitment) {
		reasons = append(reasons, "logsCommitment mismatch between full and subset proofs")
	}
	if len(reasons) > 0 {
		return false, reasons
	}

	if err := verifyOne(keys.SubsetVK, subsetPublic, b.SubsetProof.ProofB64); err != nil {
		reasons = append(reasons, "subset proof: "+err.Error())
	}
	if err := verifyOne(keys.FullVK, fullPublic, b.FullProof.ProofB64); err != nil {
		reasons = append(reasons, "full proof: "+err.Error())
	}

	return len(reasons) == 0, reasons
}

// sameField reports whether two *big.Int-valued variables hold equal values.
func sameField(a, b frontend.Variable) bool {
	x, _ := a.(*big.Int)
	y, _ := b.(*big.Int)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return x.Cmp(y) == 0
}

func verifyOne(vk groth16.VerifyingKey, assignment frontend.Circuit, proofB64 string) error {
	if vk == nil {
		return bencherr.New(bencherr.ProverArtefactMissing, "verification key not loaded")
	}

	proofBytes, err := base64.StdEncoding.DecodeString(proofB64)
	if err != nil {
		return bencherr.Wrap(bencherr.VerificationFailure, "", err, "invalid base64 proof")
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return bencherr.Wrap(bencherr.VerificationFailure, "", err, "failed to deserialise proof")
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return bencherr.Wrap(bencherr.VerificationFailure, "", err, "failed to build public witness")
	}

	if err := groth16.Verify(proof, vk, w); err != nil {
		return bencherr.Wrap(bencherr.VerificationFailure, "", err, "groth16 verification failed")
	}
	return nil
}
