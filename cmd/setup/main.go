// Command setup compiles the subset and full circuits and writes their
// Groth16 proving/verifying keys to an output directory, mirroring the
// teacher's cmd/compile entry point adapted to this module's fixed pair of
// circuits (no circuit-name argument or PLONK/ceremony branches — both
// circuits are always compiled together).
package main

import (
	"fmt"
	"os"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/circuits"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/logging"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/setup"
)

func main() {
	outputDir := "."
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := setup.DevSetup(&circuits.SubsetCircuit{}, outputDir, "subset"); err != nil {
		logging.L().Fatal().Err(err).Msg("subset circuit setup failed")
	}
	if err := setup.DevSetup(&circuits.FullCircuit{}, outputDir, "full"); err != nil {
		logging.L().Fatal().Err(err).Msg("full circuit setup failed")
	}

	fmt.Println("Setup complete.")
}
