package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/examgen/internal/llm"
)

// Generator produces structurally-valid candidate questions from the
// LLM provider. Factual auditing happens later, in the Verifier.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a Generator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// generationOutput is the raw LLM response before validation.
type generationOutput struct {
	Questions []CandidateQuestion `json:"questions"`
}

// GenerateCandidates runs one generation call for n questions and
// returns the candidates that survive directive and structural
// validation. Rejected candidates cost nothing downstream. If every
// candidate fails structural validation the whole attempt fails with
// AllCandidatesInvalidError.
func (g *Generator) GenerateCandidates(ctx context.Context, req GenerationRequest, n int, priorStems []string) ([]CandidateQuestion, llm.Usage, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	templates := SelectTemplates(req.Difficulty, req.Language, n)
	userMsg := buildGenerationMessage(req, templates, n, priorStems)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      GenerationSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("question generation: %w", err)
	}

	var raw generationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, resp.Usage, fmt.Errorf("parse generation response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, resp.Usage, fmt.Errorf("generation response contained no questions")
	}

	var survivors []CandidateQuestion
	var issues []string
	for _, cand := range raw.Questions {
		verdict := ValidateStructure(ClassifyDirective(cand.Stem), cand.Choices)
		if !verdict.IsValid {
			issues = append(issues, verdict.Issues...)
			continue
		}
		survivors = append(survivors, cand)
	}

	if len(survivors) == 0 {
		return nil, resp.Usage, &AllCandidatesInvalidError{Issues: issues}
	}

	return survivors, resp.Usage, nil
}
