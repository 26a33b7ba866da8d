// Command prove runs the dual-proof sequence over a JSON batch description
// and writes the resulting ProofBundle, mirroring the teacher's cmd/export
// entry point (compile/load keys, build witness, prove) generalised to this
// module's own record/witness types instead of one hardcoded circuit.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/benchconfig"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/evalrecord"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/logging"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/methodology"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/orchestrator"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/prover"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/providers"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/setup"
)

type proveInput struct {
	Batch              []evalrecord.TestRecord             `json:"batch"`
	ScoringDescriptors []methodology.ScoringDescriptorInput `json:"scoringDescriptors"`
	ExecutionLog       []providers.ToolCallRecord           `json:"executionLog"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: prove <artefactsDir> <inputJSON> [outputJSON]")
		os.Exit(1)
	}
	artefactsDir := os.Args[1]
	inputPath := os.Args[2]

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		logging.L().Fatal().Err(err).Msg("read input")
	}
	var in proveInput
	if err := json.Unmarshal(raw, &in); err != nil {
		logging.L().Fatal().Err(err).Msg("parse input")
	}

	subsetCS, subsetPK, subsetVK, err := setup.LoadArtefacts(artefactsDir, "subset")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("load subset artefacts")
	}
	fullCS, fullPK, fullVK, err := setup.LoadArtefacts(artefactsDir, "full")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("load full artefacts")
	}

	backend := prover.LocalGroth16Backend{
		Subset: prover.CircuitArtefacts{CS: subsetCS, PK: subsetPK, VK: subsetVK},
		Full:   prover.CircuitArtefacts{CS: fullCS, PK: fullPK, VK: fullVK},
	}

	cfg := benchconfig.Default()
	o, err := orchestrator.New(cfg, backend, ".")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("build orchestrator")
	}

	result, err := o.RunAndProve(context.Background(), orchestrator.RunInputs{
		Batch:              in.Batch,
		ScoringDescriptors: in.ScoringDescriptors,
		ExecutionLog:       in.ExecutionLog,
	})
	if err != nil {
		logging.L().Fatal().Err(err).Msg("prove")
	}

	out, err := json.MarshalIndent(result.Bundle, "", "  ")
	if err != nil {
		logging.L().Fatal().Err(err).Msg("marshal bundle")
	}

	if len(os.Args) > 3 {
		if err := os.WriteFile(os.Args[3], out, 0o644); err != nil {
			logging.L().Fatal().Err(err).Msg("write output")
		}
		fmt.Printf("Wrote proof bundle to %s\n", os.Args[3])
		return
	}
	fmt.Println(string(out))
}
