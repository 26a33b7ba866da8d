// Package providers defines the capability-set interfaces the core consumes
// from external agent-execution and scoring implementations. Each is a
// one-method capability, not a shared base type, per the re-architecture
// from dynamically typed "provider" objects to explicit interfaces.
package providers

import "context"

// ToolCallRecord is one entry in the execution-log transcript. Fields such
// as timestamps, tool-use ids, and latencies are captured here and later
// stripped by the methodology component before hashing, since they vary
// run-to-run without affecting what was actually evaluated.
type ToolCallRecord struct {
	Name     string         `json:"name"`
	Input    map[string]any `json:"input"`
	Output   map[string]any `json:"output"`
	Metadata map[string]any `json:"metadata"`
}

// LogSink records tool-call transcript entries during agent execution.
type LogSink interface {
	LogToolCall(rec ToolCallRecord)
}

// AgentProvider executes a prompt against the agent under evaluation.
type AgentProvider interface {
	Execute(ctx context.Context, prompt string, sink LogSink) (string, error)
}

// ScoreRequest is the input to a ScorerProvider's Score method.
type ScoreRequest struct {
	AgentOutput string
	IdealOutput string
	ScoringType string // "binary" | "numeric"
	Criteria    string
	Metadata    map[string]any
}

// ScoreResult carries either a boolean (binary scoring) or a numeric score;
// exactly one of the two is meaningful, selected by IsBool.
type ScoreResult struct {
	IsBool    bool
	BoolValue bool
	Numeric   float64
}

// ScorerProvider scores one test's agent output against its ideal output.
type ScorerProvider interface {
	Score(ctx context.Context, req ScoreRequest) (ScoreResult, error)
}

// MemoryLogSink is a simple in-process LogSink that accumulates records in
// order, suitable for the orchestrator's own transcript capture.
type MemoryLogSink struct {
	records []ToolCallRecord
}

func (s *MemoryLogSink) LogToolCall(rec ToolCallRecord) {
	s.records = append(s.records, rec)
}

// Records returns the accumulated transcript in call order.
func (s *MemoryLogSink) Records() []ToolCallRecord {
	return s.records
}
