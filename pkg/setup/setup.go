// Package setup compiles the two Groth16 circuits and manages their
// proving/verifying keys on disk. It keeps only the single-party dev-setup
// path: the MPC ceremony and PLONK machinery this was adapted from have no
// consumer here, since both circuits are fixed-shape Groth16 and the spec
// scopes trusted-setup ceremonies out.
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// CompileCircuit compiles a gnark circuit into an R1CS constraint system.
func CompileCircuit(circuit frontend.Circuit) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	return ccs, nil
}

// DevSetup performs a single-party trusted setup (NOT for production) and
// writes the constraint system, proving key, and verifying key to outputDir.
func DevSetup(circuit frontend.Circuit, outputDir, circuitName string) error {
	fmt.Println("================================================================")
	fmt.Println("  WARNING: single-party setup (1-of-1 trust assumption)")
	fmt.Println("  DO NOT use these keys to verify real evaluation reports.")
	fmt.Println("================================================================")

	ccs, err := CompileCircuit(circuit)
	if err != nil {
		return err
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return fmt.Errorf("groth16 setup: %w", err)
	}

	return ExportArtefacts(ccs, pk, vk, outputDir, circuitName)
}

// ExportArtefacts writes the constraint system, proving key, and verifying
// key to outputDir. Files are named <circuitName>_cs.bin,
// <circuitName>_prover.key, <circuitName>_verifier.key.
func ExportArtefacts(ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey, outputDir, circuitName string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csPath := filepath.Join(outputDir, circuitName+"_cs.bin")
	if err := saveObject(csPath, ccs); err != nil {
		return err
	}
	pkPath := filepath.Join(outputDir, circuitName+"_prover.key")
	if err := saveObject(pkPath, pk); err != nil {
		return err
	}
	vkPath := filepath.Join(outputDir, circuitName+"_verifier.key")
	if err := saveObject(vkPath, vk); err != nil {
		return err
	}

	fmt.Printf("Exported: %s, %s, %s\n", csPath, pkPath, vkPath)
	return nil
}

// LoadArtefacts loads the constraint system and both Groth16 keys for
// circuitName from dir.
func LoadArtefacts(dir, circuitName string) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	ccs := groth16.NewCS(ecc.BN254)
	if err := loadObject(filepath.Join(dir, circuitName+"_cs.bin"), ccs); err != nil {
		return nil, nil, nil, fmt.Errorf("load constraint system: %w", err)
	}

	pk := groth16.NewProvingKey(ecc.BN254)
	if err := loadObject(filepath.Join(dir, circuitName+"_prover.key"), pk); err != nil {
		return nil, nil, nil, fmt.Errorf("load proving key: %w", err)
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := loadObject(filepath.Join(dir, circuitName+"_verifier.key"), vk); err != nil {
		return nil, nil, nil, fmt.Errorf("load verifying key: %w", err)
	}

	return ccs, pk, vk, nil
}

// LoadVerifyingKey loads only the verifying key for circuitName, the one
// artefact a pure verifier needs.
func LoadVerifyingKey(dir, circuitName string) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := loadObject(filepath.Join(dir, circuitName+"_verifier.key"), vk); err != nil {
		return nil, fmt.Errorf("load verifying key: %w", err)
	}
	return vk, nil
}

// saveObject and loadObject use io.WriterTo/io.ReaderFrom directly, the same
// seam the teacher's own key (de)serialisation is built on.
func saveObject(path string, obj io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := obj.WriteTo(f); err != nil {
		return err
	}
	return nil
}

func loadObject(path string, obj io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := obj.ReadFrom(f); err != nil {
		return err
	}
	return nil
}
