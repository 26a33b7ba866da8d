// Package evalrecord defines the immutable TestRecord input type and maps
// each record to the five canonical field elements that feed its LeafHash.
package evalrecord

import (
	"math"
	"math/big"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/bencherr"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/field"
)

// ScoringKind is the tagged variant replacing a dynamically typed scoring
// metadata bag: every record declares exactly one kind.
type ScoringKind int

const (
	Binary ScoringKind = iota
	Numeric
)

func (k ScoringKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "binary"
}

func (k ScoringKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *ScoringKind) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "numeric" {
		*k = Numeric
	} else {
		*k = Binary
	}
	return nil
}

// ScoringDescriptor is the per-test scoring rule. The methodology
// commitments component does not take this type: it hashes
// methodology.ScoringDescriptorInput values, which carry the rule as strings.
type ScoringDescriptor struct {
	Kind     ScoringKind
	Criteria string // empty when absent
}

// TestRecord is one evaluation's input/expected/observed/score tuple. It is
// immutable after construction; normalisation (score clamping/rounding)
// happens in NormalizedScore, which returns a new value rather than mutating.
type TestRecord struct {
	ID              string      `json:"id"`
	Prompt          string      `json:"prompt"`
	IdealOutput     string      `json:"idealOutput"`
	AgentOutput     string      `json:"agentOutput"`
	Score           float64     `json:"score"` // raw numeric score; ignored when IsBoolScore is set (BoolScore then maps to 100/0)
	IsBoolScore     bool        `json:"isBoolScore"`
	BoolScore       bool        `json:"boolScore"`
	ScoringType     ScoringKind `json:"scoringType"`
	ScoringCriteria string      `json:"scoringCriteria"`
}

// NormalizedScore applies the score normalisation rule: true→100, false→0,
// non-finite or out-of-range numbers clamped to [0,100] then rounded to the
// nearest integer. It returns the normalised integer score; it does not
// mutate the receiver.
func (r TestRecord) NormalizedScore() int {
	if r.IsBoolScore {
		if r.BoolScore {
			return 100
		}
		return 0
	}
	s := r.Score
	if math.IsNaN(s) {
		s = 0
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return int(math.Round(s))
}

// LeafFields computes the five field elements that feed LeafHash: a pure
// function of the fields enumerated in the data model. Metadata (anything
// not listed here) is ignored.
func (r TestRecord) LeafFields() (testIDField, promptHash, idealHash, agentHash *big.Int, score int) {
	testIDField = field.SHA256Field([]byte(r.ID))
	promptHash = field.SHA256Field([]byte(r.Prompt))
	idealHash = field.SHA256Field([]byte(r.IdealOutput))
	agentHash = field.SHA256Field([]byte(r.AgentOutput))
	score = r.NormalizedScore()
	return
}

// LeafHash computes Poseidon5(testIdField, promptHash, idealHash, agentHash,
// score). Same record in, same leaf out, on any platform.
func (r TestRecord) LeafHash() *big.Int {
	testIDField, promptHash, idealHash, agentHash, score := r.LeafFields()
	return field.Poseidon(testIDField, promptHash, idealHash, agentHash, big.NewInt(int64(score)))
}

// ZeroLeafHash is the leaf value used for unused/padding tree slots: every
// input field is field-zero.
func ZeroLeafHash() *big.Int {
	zero := big.NewInt(0)
	return field.Poseidon(zero, zero, zero, zero, zero)
}

// Validate checks batch-level invariants: unique ids, non-empty suite. Per
// record field typing is enforced by the Go type system itself.
func Validate(batch []TestRecord) error {
	if len(batch) == 0 {
		return bencherr.New(bencherr.InvalidBatch, "test batch is empty")
	}
	seen := make(map[string]struct{}, len(batch))
	for _, r := range batch {
		if r.ID == "" {
			return bencherr.New(bencherr.InvalidBatch, "record has empty id")
		}
		if _, dup := seen[r.ID]; dup {
			return bencherr.Newf(bencherr.InvalidBatch, "duplicate id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
