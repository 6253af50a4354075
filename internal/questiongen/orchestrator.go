package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/examgen/internal/llm"
)

// Service is the batch orchestrator. It splits large requests into
// bounded sub-batches, runs the full pipeline per batch, and tops up
// shortfalls in the sequential mode. The provider handle is stateless
// and shared; no mutable state crosses concurrent requests.
type Service struct {
	provider llm.Provider
	gen      *Generator
	verifier *Verifier
	logger   *zap.Logger
	cfg      Config
}

// NewService creates the orchestrator with all pipeline stages wired.
func NewService(provider llm.Provider, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		provider: provider,
		gen:      NewGenerator(provider, cfg),
		verifier: NewVerifier(provider, cfg),
		logger:   logger,
		cfg:      cfg,
	}
}

// ProgressFunc receives progress events in the sequential mode.
// Events strictly increase in batch index and cumulative question count
// never decreases.
type ProgressFunc func(BatchProgress)

// Generate produces req.Count questions. Requests at or below the batch
// ceiling run as one direct pass; larger requests fan out into
// concurrent sub-batches whose results are merged only if every
// sub-batch succeeds.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) ([]Question, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var questions []Question
	var usage llm.Usage
	var err error

	if req.Count <= s.cfg.BatchCeiling {
		questions, usage, err = s.generateOnce(ctx, req, req.Count, nil)
	} else {
		questions, usage, err = s.generateParallel(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if len(questions) > req.Count {
		questions = questions[:req.Count]
	}
	if req.ValidationLevel == ValidationStrict && len(questions) < req.Count {
		return nil, &ShortfallError{Requested: req.Count, Produced: len(questions)}
	}

	s.logUsage(req, len(questions), usage)
	return questions, nil
}

// generateParallel fans sub-batches out concurrently. Any sub-batch
// failure fails the whole call: batching here exists for throughput and
// service input-size limits, not for partial tolerance.
func (s *Service) generateParallel(ctx context.Context, req GenerationRequest) ([]Question, llm.Usage, error) {
	sizes := splitCount(req.Count, s.cfg.BatchCeiling)

	results := make([][]Question, len(sizes))
	usages := make([]llm.Usage, len(sizes))

	g, ctx := errgroup.WithContext(ctx)
	for i, size := range sizes {
		g.Go(func() error {
			qs, usage, err := s.generateOnce(ctx, req, size, nil)
			if err != nil {
				return fmt.Errorf("sub-batch %d: %w", i+1, err)
			}
			if len(qs) == 0 {
				return fmt.Errorf("sub-batch %d: %w", i+1, ErrNoQuestions)
			}
			results[i] = qs
			usages[i] = usage
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, llm.Usage{}, err
	}

	var merged []Question
	var usage llm.Usage
	for i := range results {
		merged = append(merged, results[i]...)
		usage.Add(usages[i])
	}
	return merged, usage, nil
}

// GenerateWithProgress runs sub-batches one at a time, emitting a
// progress event after each, then tops up any shortfall with bounded
// additional attempts. Cancellation is cooperative: the context is
// checked before each batch, and accumulated questions are discarded
// unless Config.AcceptPartialOnCancel is set.
func (s *Service) GenerateWithProgress(ctx context.Context, req GenerationRequest, onProgress ProgressFunc) ([]Question, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sizes := splitCount(req.Count, s.cfg.BatchCeiling)

	var questions []Question
	var usage llm.Usage

	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			return s.onCancelled(questions, err)
		}

		qs, batchUsage, err := s.generateOnce(ctx, req, size, stemsOf(questions))
		usage.Add(batchUsage)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.onCancelled(questions, err)
			}
			// A failed batch contributes zero questions; the shortfall
			// is handled after all batches and top-up.
			s.logger.Warn("batch failed", zap.Int("batch", i+1), zap.Error(err))
		}
		questions = append(questions, qs...)

		if onProgress != nil {
			onProgress(BatchProgress{
				CurrentBatch:       i + 1,
				TotalBatches:       len(sizes),
				QuestionsGenerated: min(len(questions), req.Count),
				TotalQuestions:     req.Count,
			})
		}
	}

	// Top-up loop: request exactly the shortfall, at most
	// MaxTopUpAttempts times, stopping early on a zero-yield attempt.
	for attempt := 0; attempt < s.cfg.MaxTopUpAttempts && len(questions) < req.Count; attempt++ {
		if err := ctx.Err(); err != nil {
			return s.onCancelled(questions, err)
		}

		shortfall := req.Count - len(questions)
		qs, topUpUsage, err := s.generateOnce(ctx, req, shortfall, stemsOf(questions))
		usage.Add(topUpUsage)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.onCancelled(questions, err)
			}
			s.logger.Warn("top-up attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
			break
		}
		if len(qs) == 0 {
			// The service cannot satisfy the remainder; looping further
			// would not terminate usefully.
			break
		}
		questions = append(questions, qs...)
	}

	if len(questions) > req.Count {
		questions = questions[:req.Count]
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	// Strict shortfall is aggregate-only: checked once, after top-up.
	if req.ValidationLevel == ValidationStrict && len(questions) < req.Count {
		return nil, &ShortfallError{Requested: req.Count, Produced: len(questions)}
	}

	s.logUsage(req, len(questions), usage)
	return questions, nil
}

// GenerateAsync wraps GenerateWithProgress in a tri-state result
// stream: a Loading value immediately, then Success or Error.
func (s *Service) GenerateAsync(ctx context.Context, req GenerationRequest, onProgress ProgressFunc) <-chan Result[[]Question] {
	ch := make(chan Result[[]Question], 2)
	ch <- Loading[[]Question]()

	go func() {
		defer close(ch)
		questions, err := s.GenerateWithProgress(ctx, req, onProgress)
		if err != nil {
			ch <- Failure[[]Question](err.Error(), err)
			return
		}
		ch <- Success(questions)
	}()

	return ch
}

// RegenerateOptions steer a single-question rewrite.
type RegenerateOptions struct {
	// TargetDifficulty overrides the question's difficulty tier.
	TargetDifficulty Difficulty

	// TargetLanguage sets the rewrite language. Default: ko.
	TargetLanguage Language
}

type regenerationOutput struct {
	Question CandidateQuestion `json:"question"`
}

// RegenerateOne rewrites a single question's wording while preserving
// the same correct answer and difficulty tier. The rewritten candidate
// passes through the same five-step mapping contract as generated ones.
func (s *Service) RegenerateOne(ctx context.Context, q Question, opts RegenerateOptions) (*Question, error) {
	if len(q.Choices) != 4 && len(q.Choices) != 5 {
		return nil, &InputError{Field: "question", Message: "question must have 4 or 5 choices"}
	}

	difficulty := opts.TargetDifficulty
	if difficulty == "" {
		difficulty = q.Metadata.Difficulty
	}
	if !difficulty.valid() || difficulty == DifficultyMixed {
		difficulty = DifficultyMedium
	}
	language := opts.TargetLanguage
	if language == "" {
		language = LanguageKorean
	}
	if !language.valid() {
		return nil, &InputError{Field: "targetLanguage", Message: `language must be "ko" or "en"`}
	}

	ctx = llm.WithPurpose(ctx, "question-rewrite")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: regenerateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRegenerateMessage(q, difficulty, language)},
		},
		Schema:      RegenerationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question rewrite: %w", err)
	}

	var out regenerationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse rewrite response: %w", err)
	}

	cand := out.Question
	cand.Difficulty = difficulty

	mapped, err := MapCandidate(cand, GenerationRequest{
		Topic:       q.Metadata.Topic,
		Difficulty:  difficulty,
		ChoiceCount: len(q.Choices),
	})
	if err != nil {
		return nil, err
	}
	return mapped, nil
}

// generateOnce runs one full pipeline pass: generate candidates,
// semantically verify (unless validation is disabled), and map the
// survivors. Mapping failures drop single candidates, never the batch.
func (s *Service) generateOnce(ctx context.Context, req GenerationRequest, n int, priorStems []string) ([]Question, llm.Usage, error) {
	candidates, usage, err := s.gen.GenerateCandidates(ctx, req, n, priorStems)
	if err != nil {
		return nil, usage, err
	}

	if req.ValidationLevel != ValidationNone {
		verdicts, auditUsage := s.verifier.Verify(ctx, candidates)
		usage.Add(auditUsage)

		var kept []CandidateQuestion
		for i, cand := range candidates {
			resolved, ok := ApplyVerdict(cand, verdicts[i])
			if !ok {
				s.logger.Debug("candidate rejected by audit",
					zap.String("stem", cand.Stem),
					zap.String("issue", verdicts[i].IssueSummary))
				continue
			}
			kept = append(kept, resolved)
		}
		candidates = kept
	}

	var questions []Question
	for _, cand := range candidates {
		q, err := MapCandidate(cand, req)
		if err != nil {
			s.logger.Debug("candidate rejected by mapper",
				zap.String("stem", cand.Stem),
				zap.Error(err))
			continue
		}
		questions = append(questions, *q)
	}

	return questions, usage, nil
}

// onCancelled resolves a cancelled sequential run: partial results are
// discarded unless the caller opted in via config.
func (s *Service) onCancelled(questions []Question, err error) ([]Question, error) {
	if s.cfg.AcceptPartialOnCancel && len(questions) > 0 {
		return questions, err
	}
	return nil, err
}

// logUsage records the aggregate token consumption of a completed run.
func (s *Service) logUsage(req GenerationRequest, produced int, usage llm.Usage) {
	fields := []zap.Field{
		zap.String("topic", req.Topic),
		zap.Int("requested", req.Count),
		zap.Int("produced", produced),
		zap.Int("input_tokens", usage.InputTokens),
		zap.Int("output_tokens", usage.OutputTokens),
	}
	if cost := llm.LookupCost(s.provider.ModelID()); cost != nil {
		fields = append(fields, zap.Float64("est_cost_usd", cost.Cost(usage.InputTokens, usage.OutputTokens)))
	}
	s.logger.Info("generation complete", fields...)
}

// splitCount splits count into sub-batch sizes no larger than ceiling,
// e.g. (12, 5) → [5, 5, 2].
func splitCount(count, ceiling int) []int {
	if ceiling <= 0 || count <= ceiling {
		return []int{count}
	}
	var sizes []int
	for remaining := count; remaining > 0; remaining -= ceiling {
		sizes = append(sizes, min(remaining, ceiling))
	}
	return sizes
}

// stemsOf extracts stems for prompt-side deduplication.
func stemsOf(questions []Question) []string {
	if len(questions) == 0 {
		return nil
	}
	stems := make([]string, len(questions))
	for i, q := range questions {
		stems[i] = q.Stem
	}
	return stems
}
