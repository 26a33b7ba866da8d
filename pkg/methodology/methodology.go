// Package methodology computes the three hash commitments that bind a
// proof bundle to the code, rules, and logged execution that produced it:
// the execution-log transcript hash, the scoring-method hash, and the
// library-code manifest hash.
package methodology

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rforzani/verifiable-ai-benchmarks/pkg/canon"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/field"
	"github.com/rforzani/verifiable-ai-benchmarks/pkg/providers"
)

// Commitments holds the three field-element commitments of §3's data model.
type Commitments struct {
	ExecutionLogsHash *big.Int
	ScoringMethodHash *big.Int
	LibraryCodeHash   *big.Int
}

// volatileSubstrings and volatileExact are the lowercase substrings/exact names that mark a
// transcript field as run-to-run volatile and therefore excluded from the
// hashed transcript.
var volatileSubstrings = []string{"token", "timestamp", "latency", "duration"}
var volatileExact = map[string]struct{}{
	"uuid": {}, "sessionid": {}, "session_id": {}, "tooluseid": {},
	"idempotencykey": {}, "traceid": {}, "trace_id": {},
}

func isVolatileKey(key string) bool {
	lower := strings.ToLower(key)
	if _, ok := volatileExact[lower]; ok {
		return true
	}
	for _, sub := range volatileSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

func stripVolatile(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if isVolatileKey(k) {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = stripVolatile(nested)
		} else {
			out[k] = v
		}
	}
	return out
}

// ExecutionLogsHash canonicalises and hashes the sanitised tool-call
// transcript. Volatile fields (token/timestamp/latency/duration
// substrings, and uuid/sessionid/tooluseid/idempotencykey/traceid exact
// names) are stripped before canonicalisation so that two runs differing
// only in those fields hash identically.
func ExecutionLogsHash(records []providers.ToolCallRecord) *big.Int {
	sanitised := make([]any, len(records))
	for i, rec := range records {
		entry := map[string]any{
			"name":     rec.Name,
			"input":    stripVolatile(rec.Input),
			"output":   stripVolatile(rec.Output),
			"metadata": stripVolatile(rec.Metadata),
		}
		sanitised[i] = entry
	}
	bytes := canon.Marshal(sanitised)
	return field.SHA256Field(bytes)
}

// ScoringDescriptorInput is the canonicalisation-ready projection of a
// record's scoring rule.
type ScoringDescriptorInput struct {
	TestID      string `json:"testId"`
	ScoringType string `json:"scoringType"`
	Criteria    string `json:"criteria"`
}

// ScoringMethodHash canonicalises and hashes the per-test scoring
// descriptors (testId, scoringType, criteria).
func ScoringMethodHash(descriptors []ScoringDescriptorInput) *big.Int {
	arr := make([]any, len(descriptors))
	for i, d := range descriptors {
		arr[i] = map[string]any{
			"testId":      d.TestID,
			"scoringType": d.ScoringType,
			"criteria":    d.Criteria,
		}
	}
	return field.SHA256Field(canon.Marshal(arr))
}

var excludedDirs = map[string]struct{}{
	"node_modules": {}, "dist": {}, "build": {}, ".git": {},
	"_examples": {}, "vendor": {},
}

var (
	manifestOnce sync.Once
	manifestHash *big.Int
)

// LibraryCodeHash walks root, excluding common build/cache directories and
// dotfiles, hashes every file's bytes, and hashes the sorted-by-path list.
// The result is cached for the process lifetime: callers must start a
// fresh process to invalidate it, matching the lazily-initialised,
// process-wide immutable singleton pattern used for the library manifest.
func LibraryCodeHash(root string) (*big.Int, error) {
	var outerErr error
	manifestOnce.Do(func() {
		manifestHash, outerErr = computeLibraryCodeHash(root)
	})
	return manifestHash, outerErr
}

func computeLibraryCodeHash(root string) (*big.Int, error) {
	type fileEntry struct {
		path string
		hash string
	}
	var entries []fileEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if _, excluded := excludedDirs[name]; excluded {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		entries = append(entries, fileEntry{path: filepath.ToSlash(rel), hash: hex.EncodeToString(sum[:])})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	list := make([]any, len(entries))
	for i, e := range entries {
		list[i] = map[string]any{"path": e.path, "hash": e.hash}
	}
	return field.SHA256Field(canon.Marshal(list)), nil
}
