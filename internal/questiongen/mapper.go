package questiongen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MapCandidate converts an audited candidate into the externally-visible
// Question shape, enforcing the final invariants. Checks run in order
// and fail with a MappingError on the first violation:
//
//	1. stem non-empty
//	2. choice count equals the request's choiceCount
//	3. every choice has non-empty text
//	4. exactly one choice flagged correct
//	5. explanation non-empty
//
// A mapping failure removes only this candidate, never the batch.
// Choice ids are assigned strictly by position: 1st → "A", 2nd → "B", …
func MapCandidate(c CandidateQuestion, req GenerationRequest) (*Question, error) {
	stem := strings.TrimSpace(c.Stem)
	if stem == "" {
		return nil, &MappingError{Field: "stem", Message: "stem is empty"}
	}

	if len(c.Choices) != req.ChoiceCount {
		return nil, &MappingError{
			Field:   "choices",
			Message: fmt.Sprintf("expected %d choices, got %d", req.ChoiceCount, len(c.Choices)),
		}
	}

	choices := make([]Choice, len(c.Choices))
	correctID := ""
	correctCount := 0
	for i, ch := range c.Choices {
		text := strings.TrimSpace(ch.Text)
		if text == "" {
			return nil, &MappingError{
				Field:   "choices",
				Message: fmt.Sprintf("choice %d has empty text", i+1),
			}
		}
		id := choiceID(i)
		choices[i] = Choice{ID: id, Text: text}
		if ch.IsCorrect {
			correctID = id
			correctCount++
		}
	}

	if correctCount != 1 {
		return nil, &MappingError{
			Field:   "choices",
			Message: fmt.Sprintf("expected exactly 1 correct choice, got %d", correctCount),
		}
	}

	explanation := strings.TrimSpace(c.Explanation)
	if explanation == "" {
		return nil, &MappingError{Field: "explanation", Message: "explanation is empty"}
	}

	return &Question{
		ID:              uuid.NewString(),
		Stem:            stem,
		Choices:         choices,
		CorrectChoiceID: correctID,
		Explanation:     explanation,
		Metadata: Metadata{
			Topic:      req.Topic,
			Difficulty: resolveDifficulty(c.Difficulty, req.Difficulty),
		},
	}, nil
}

// choiceID returns the positional letter id for a choice index.
func choiceID(i int) string {
	return string(rune('A' + i))
}

// resolveDifficulty prefers the candidate's self-assessed difficulty,
// falling back to the request's with mixed resolved to medium.
func resolveDifficulty(candidate, requested Difficulty) Difficulty {
	switch candidate {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return candidate
	}
	if requested == DifficultyMixed {
		return DifficultyMedium
	}
	return requested
}
