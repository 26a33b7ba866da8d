// Command verify loads a ProofBundle plus the two circuits' verifying keys
// and reports whether it is valid, mirroring the teacher's cmd/test entry
// point adapted to this module's own bundle/verifier types instead of one
// hardcoded circuit's fixture check.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bundle"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/logging"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/setup"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/verifier"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: verify <artefactsDir> <bundleJSON>")
		os.Exit(1)
	}
	artefactsDir := os.Args[1]
	bundlePath := os.Args[2]

	subsetVK, err := setup.LoadVerifyingKey(artefactsDir, "subset")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("load subset verifying key")
	}
	fullVK, err := setup.LoadVerifyingKey(artefactsDir, "full")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("load full verifying key")
	}

	raw, err := os.ReadFile(bundlePath)
	if err != nil {
		logging.L().Fatal().Err(err).Msg("read bundle")
	}
	var b bundle.ProofBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		logging.L().Fatal().Err(err).Msg("parse bundle")
	}

	valid, reasons := verifier.Verify(verifier.Keys{SubsetVK: subsetVK, FullVK: fullVK}, b)
	if valid {
		fmt.Println("VALID")
		return
	}

	fmt.Println("INVALID")
	for _, r := range reasons {
		fmt.Println("  -", r)
	}
	os.Exit(1)
}
