package methodology

import (
	"testing"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/providers"
	"github.com/stretchr/testify/require"
)

func TestExecutionLogsHash_VolatileFieldsStripped(t *testing.T) {
	a := []providers.ToolCallRecord{
		{
			Name: "search",
			Input: map[string]any{
				"query":     "hello",
				"timestamp": "2026-07-31T00:00:00Z",
			},
			Output: map[string]any{
				"result":    "world",
				"toolUseId": "abc-123",
			},
		},
	}
	b := []providers.ToolCallRecord{
		{
			Name: "search",
			Input: map[string]any{
				"query":     "hello",
				"timestamp": "2030-01-01T00:00:00Z",
			},
			Output: map[string]any{
				"result":    "world",
				"toolUseId": "xyz-999",
			},
		},
	}

	require.Equal(t, ExecutionLogsHash(a).String(), ExecutionLogsHash(b).String(),
		"hashes differing only in timestamp/toolUseId must be equal")
}

func TestExecutionLogsHash_ContentChangeAltersHash(t *testing.T) {
	a := []providers.ToolCallRecord{{Name: "search", Input: map[string]any{"query": "hello"}}}
	b := []providers.ToolCallRecord{{Name: "search", Input: map[string]any{"query": "goodbye"}}}
	require.NotEqual(t, ExecutionLogsHash(a).String(), ExecutionLogsHash(b).String())
}

func TestScoringMethodHash_Deterministic(t *testing.T) {
	d := []ScoringDescriptorInput{{TestID: "a", ScoringType: "binary", Criteria: ""}}
	h1 := ScoringMethodHash(d)
	h2 := ScoringMethodHash(d)
	require.Equal(t, h1.String(), h2.String())
}
