package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/examgen/internal/llm"
)

// SemanticVerdict is the audit outcome for one candidate in a batch.
type SemanticVerdict struct {
	Index                int    `json:"index"`
	IsValid              bool   `json:"isValid"`
	CorrectedCorrectness []bool `json:"correctedCorrectness,omitempty"`
	IssueSummary         string `json:"issueSummary"`
}

// Verifier runs the second-pass factual audit against the same LLM
// provider, in bounded batches. The audit is a quality gate, not a gate
// of last resort: when it cannot run, candidates pass with a note
// rather than being discarded (fail-open).
type Verifier struct {
	provider llm.Provider
	cfg      Config
}

// NewVerifier creates a Verifier with the given provider and config.
func NewVerifier(provider llm.Provider, cfg Config) *Verifier {
	return &Verifier{provider: provider, cfg: cfg}
}

type auditOutput struct {
	Verdicts []SemanticVerdict `json:"verdicts"`
}

// Verify audits candidates in batches of cfg.VerifyBatchSize and
// returns one verdict per candidate, index-aligned with the input.
// It never returns an error: degraded batches fail open.
func (v *Verifier) Verify(ctx context.Context, candidates []CandidateQuestion) ([]SemanticVerdict, llm.Usage) {
	ctx = llm.WithPurpose(ctx, "question-audit")

	batchSize := v.cfg.VerifyBatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	verdicts := make([]SemanticVerdict, len(candidates))
	var usage llm.Usage

	for start := 0; start < len(candidates); start += batchSize {
		end := min(start+batchSize, len(candidates))
		batch := candidates[start:end]

		batchVerdicts, batchUsage := v.verifyBatch(ctx, batch)
		usage.Add(batchUsage)

		for i, bv := range batchVerdicts {
			bv.Index = start + i
			verdicts[start+i] = bv
		}
	}

	return verdicts, usage
}

// verifyBatch audits one batch. Returned verdicts are positional
// (0-based within the batch); the caller re-indexes them globally.
func (v *Verifier) verifyBatch(ctx context.Context, batch []CandidateQuestion) ([]SemanticVerdict, llm.Usage) {
	resp, err := v.provider.Generate(ctx, llm.Request{
		System: auditSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAuditMessage(batch)},
		},
		Schema:    AuditSchema,
		MaxTokens: v.cfg.MaxTokens,
	})
	if err != nil {
		return failOpen(len(batch), fmt.Sprintf("audit unavailable: %v", err)), llm.Usage{}
	}

	var out auditOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return failOpen(len(batch), "audit returned unparsable content"), resp.Usage
	}

	// Re-slot verdicts by their reported index; anything the audit
	// skipped passes with a note.
	verdicts := failOpen(len(batch), "audit returned no verdict for this question")
	for _, verdict := range out.Verdicts {
		if verdict.Index < 0 || verdict.Index >= len(batch) {
			continue
		}
		verdicts[verdict.Index] = verdict
	}

	return verdicts, resp.Usage
}

// failOpen builds all-valid verdicts recording the degradation reason.
func failOpen(n int, reason string) []SemanticVerdict {
	verdicts := make([]SemanticVerdict, n)
	for i := range verdicts {
		verdicts[i] = SemanticVerdict{Index: i, IsValid: true, IssueSummary: reason}
	}
	return verdicts
}

// ApplyVerdict resolves a candidate against its audit verdict.
// Valid candidates pass through unchanged. Invalid candidates are kept
// only when the verdict carries a correction vector whose length
// matches the choice count; the corrected flags are then applied.
// Returns false when the candidate should be dropped.
func ApplyVerdict(c CandidateQuestion, verdict SemanticVerdict) (CandidateQuestion, bool) {
	if verdict.IsValid {
		return c, true
	}

	if len(verdict.CorrectedCorrectness) != len(c.Choices) {
		return c, false
	}

	corrected := make([]CandidateChoice, len(c.Choices))
	copy(corrected, c.Choices)
	for i := range corrected {
		corrected[i].IsCorrect = verdict.CorrectedCorrectness[i]
	}
	c.Choices = corrected
	return c, true
}
