package questiongen

// Config controls pipeline behavior.
type Config struct {
	// BatchCeiling is the maximum question count per generation call.
	// Requests above it are split into sub-batches.
	BatchCeiling int

	// VerifyBatchSize is the number of candidates audited per semantic
	// verification call, bounding prompt size.
	VerifyBatchSize int

	// MaxTopUpAttempts bounds the shortfall top-up loop in the
	// sequential orchestration mode.
	MaxTopUpAttempts int

	// MaxTokens is the token budget per LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// AcceptPartialOnCancel returns the questions accumulated so far
	// (alongside the context error) when a sequential run is cancelled.
	// When false, partial results are discarded.
	AcceptPartialOnCancel bool
}

// DefaultConfig returns the recommended pipeline parameters.
func DefaultConfig() Config {
	return Config{
		BatchCeiling:     10,
		VerifyBatchSize:  10,
		MaxTopUpAttempts: 3,
		MaxTokens:        8192,
		Temperature:      0.7,
	}
}
