// Package benchconfig holds the engine's recognised configuration options,
// per the external interfaces section: public-subset sizing, tree depths,
// output location, and the paths to the external prover's artefacts.
package benchconfig

import "github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"

// ProverArtefactPaths locates the compiled circuits and Groth16 keys
// produced by the external collaborator prover.
type ProverArtefactPaths struct {
	FullWasm   string
	FullZkey   string
	FullVk     string
	SubsetWasm string
	SubsetZkey string
	SubsetVk   string
}

// Config is the engine's full set of recognised options.
type Config struct {
	PublicPercentage float64
	MinimumPublic    int
	MaxTests         int
	MaxSubset        int
	FullDepth        int
	SubsetDepth      int
	OutputDir        string

	ProverArtefactPaths ProverArtefactPaths

	// AllowPlaceholder permits the orchestrator to fall back to a
	// placeholder bundle when prover artefacts are unavailable or the
	// prover invocation fails. Off by default: a silent fallback would
	// defeat the purpose of a verifiable proof.
	AllowPlaceholder bool
}

// Default returns the configuration with every documented default applied.
func Default() Config {
	return Config{
		PublicPercentage: 0.05,
		MinimumPublic:    1,
		MaxTests:         100,
		MaxSubset:        10,
		FullDepth:        10,
		SubsetDepth:      4,
	}
}

// Validate checks the configuration for the InvalidConfig failure mode:
// malformed construction arguments such as an out-of-range percentage or a
// capacity that cannot hold its own minimum.
func (c Config) Validate() error {
	if c.PublicPercentage <= 0 || c.PublicPercentage > 1 {
		return bencherr.Newf(bencherr.InvalidConfig, "publicPercentage %v out of range (0,1]", c.PublicPercentage)
	}
	if c.MinimumPublic < 1 {
		return bencherr.Newf(bencherr.InvalidConfig, "minimumPublic must be >= 1, got %d", c.MinimumPublic)
	}
	if c.MaxTests < 1 {
		return bencherr.Newf(bencherr.InvalidConfig, "maxTests must be >= 1, got %d", c.MaxTests)
	}
	if c.MaxSubset < c.MinimumPublic {
		return bencherr.Newf(bencherr.InvalidConfig, "maxSubset %d smaller than minimumPublic %d", c.MaxSubset, c.MinimumPublic)
	}
	if c.FullDepth < 1 {
		return bencherr.Newf(bencherr.InvalidConfig, "fullDepth must be >= 1, got %d", c.FullDepth)
	}
	if c.SubsetDepth < 1 {
		return bencherr.Newf(bencherr.InvalidConfig, "subsetDepth must be >= 1, got %d", c.SubsetDepth)
	}
	if (1 << uint(c.FullDepth)) < c.MaxTests {
		return bencherr.Newf(bencherr.InvalidConfig, "fullDepth %d cannot hold maxTests %d", c.FullDepth, c.MaxTests)
	}
	if (1 << uint(c.SubsetDepth)) < c.MaxSubset {
		return bencherr.Newf(bencherr.InvalidConfig, "subsetDepth %d cannot hold maxSubset %d", c.SubsetDepth, c.MaxSubset)
	}
	return nil
}
