// Package questiongen implements the exam question generation and
// validation pipeline: template selection, prompt construction, a
// two-stage correctness audit (structural and semantic), canonical
// mapping, and batch orchestration with retry and top-up.
package questiongen

// Difficulty is the requested difficulty tier for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

func (d Difficulty) valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

// Language is the output language for generated questions.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

func (l Language) valid() bool {
	return l == LanguageKorean || l == LanguageEnglish
}

// ValidationLevel controls how strictly the pipeline treats shortfalls.
type ValidationLevel string

const (
	// ValidationNone skips the semantic audit entirely.
	ValidationNone ValidationLevel = "none"

	// ValidationLight runs the semantic audit and tolerates shortfalls.
	ValidationLight ValidationLevel = "light"

	// ValidationStrict runs the semantic audit and fails the whole call
	// when fewer questions than requested survive after top-up.
	ValidationStrict ValidationLevel = "strict"
)

func (v ValidationLevel) valid() bool {
	switch v {
	case ValidationNone, ValidationLight, ValidationStrict:
		return true
	}
	return false
}

// GenerationRequest describes one question generation call.
// Immutable once issued; Normalized returns a copy with defaults applied.
type GenerationRequest struct {
	Topic           string          `json:"topic"`
	Description     string          `json:"description,omitempty"`
	Subtopics       []string        `json:"subtopics,omitempty"`
	Difficulty      Difficulty      `json:"difficulty"`
	Count           int             `json:"count"`
	ChoiceCount     int             `json:"choiceCount,omitempty"`
	Language        Language        `json:"language,omitempty"`
	ValidationLevel ValidationLevel `json:"validationLevel,omitempty"`
}

const maxDescriptionLen = 300

// Normalized returns a copy of the request with defaults filled in:
// choiceCount 4, language ko, validationLevel light.
func (r GenerationRequest) Normalized() GenerationRequest {
	if r.ChoiceCount == 0 {
		r.ChoiceCount = 4
	}
	if r.Language == "" {
		r.Language = LanguageKorean
	}
	if r.ValidationLevel == "" {
		r.ValidationLevel = ValidationLight
	}
	return r
}

// Validate checks request fields. Violations are input errors: they
// fail immediately and are never retried.
func (r GenerationRequest) Validate() error {
	if r.Topic == "" {
		return &InputError{Field: "topic", Message: "topic is required"}
	}
	if len([]rune(r.Description)) > maxDescriptionLen {
		return &InputError{Field: "description", Message: "description exceeds 300 characters"}
	}
	if !r.Difficulty.valid() {
		return &InputError{Field: "difficulty", Message: `difficulty must be "easy", "medium", "hard", or "mixed"`}
	}
	if r.Count < 1 || r.Count > 50 {
		return &InputError{Field: "count", Message: "count must be between 1 and 50"}
	}
	if r.ChoiceCount != 4 && r.ChoiceCount != 5 {
		return &InputError{Field: "choiceCount", Message: "choiceCount must be 4 or 5"}
	}
	if !r.Language.valid() {
		return &InputError{Field: "language", Message: `language must be "ko" or "en"`}
	}
	if !r.ValidationLevel.valid() {
		return &InputError{Field: "validationLevel", Message: `validationLevel must be "none", "light", or "strict"`}
	}
	return nil
}

// CandidateChoice is one answer option of a not-yet-audited question.
type CandidateChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Reason    string `json:"reason,omitempty"`
}

// CandidateQuestion is a question as produced by the generation call,
// before the audit stages. Discarded after mapping or rejection.
type CandidateQuestion struct {
	Stem        string            `json:"stem"`
	Choices     []CandidateChoice `json:"choices"`
	Explanation string            `json:"explanation"`
	Difficulty  Difficulty        `json:"difficulty,omitempty"`
}

// correctCount returns the number of choices flagged correct.
func (c CandidateQuestion) correctCount() int {
	n := 0
	for _, ch := range c.Choices {
		if ch.IsCorrect {
			n++
		}
	}
	return n
}

// Choice is one answer option of a finalized question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Metadata carries request context on a finalized question.
type Metadata struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
}

// Question is the only type crossing the pipeline's output boundary.
// Invariants: len(Choices) equals the request's choiceCount, exactly one
// choice id equals CorrectChoiceID, and stem, explanation, and every
// choice text are non-empty after trimming.
type Question struct {
	ID              string   `json:"id"`
	Stem            string   `json:"stem"`
	Choices         []Choice `json:"choices"`
	CorrectChoiceID string   `json:"correctChoiceId"`
	Explanation     string   `json:"explanation"`
	Metadata        Metadata `json:"metadata"`
}

// BatchProgress is emitted after each sub-batch in the sequential
// orchestration mode. Emitted, never stored.
type BatchProgress struct {
	CurrentBatch       int `json:"currentBatch"` // 1-indexed
	TotalBatches       int `json:"totalBatches"`
	QuestionsGenerated int `json:"questionsGenerated"` // cumulative
	TotalQuestions     int `json:"totalQuestions"`     // requested
}
