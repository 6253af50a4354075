package questiongen

import (
	"errors"
	"testing"
)

func validCandidate() CandidateQuestion {
	return CandidateQuestion{
		Stem: "Which of the following is correct about goroutines?",
		Choices: []CandidateChoice{
			{Text: "They are OS threads"},
			{Text: "They are multiplexed onto OS threads", IsCorrect: true},
			{Text: "They cannot communicate"},
			{Text: "They require manual scheduling"},
		},
		Explanation: "The runtime multiplexes goroutines onto a small number of OS threads.",
		Difficulty:  DifficultyMedium,
	}
}

func mapperRequest() GenerationRequest {
	return GenerationRequest{
		Topic:       "Go concurrency",
		Difficulty:  DifficultyMedium,
		Count:       1,
		ChoiceCount: 4,
	}
}

func TestMapCandidate_Valid(t *testing.T) {
	q, err := MapCandidate(validCandidate(), mapperRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID == "" {
		t.Error("expected a non-empty id")
	}
	if len(q.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(q.Choices))
	}
	// Ids are assigned strictly by position.
	for i, want := range []string{"A", "B", "C", "D"} {
		if q.Choices[i].ID != want {
			t.Errorf("choice %d: expected id %s, got %s", i, want, q.Choices[i].ID)
		}
	}
	if q.CorrectChoiceID != "B" {
		t.Errorf("expected correct choice B, got %s", q.CorrectChoiceID)
	}
	if q.Metadata.Topic != "Go concurrency" {
		t.Errorf("unexpected topic: %s", q.Metadata.Topic)
	}
	if q.Metadata.Difficulty != DifficultyMedium {
		t.Errorf("unexpected difficulty: %s", q.Metadata.Difficulty)
	}
}

func TestMapCandidate_EmptyStem(t *testing.T) {
	c := validCandidate()
	c.Stem = "   "
	_, err := MapCandidate(c, mapperRequest())
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected MappingError, got %v", err)
	}
	if mapErr.Field != "stem" {
		t.Errorf("expected stem violation, got %s", mapErr.Field)
	}
}

func TestMapCandidate_WrongChoiceCount(t *testing.T) {
	c := validCandidate()
	c.Choices = c.Choices[:3]
	_, err := MapCandidate(c, mapperRequest())
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected MappingError, got %v", err)
	}
}

func TestMapCandidate_EmptyChoiceText(t *testing.T) {
	c := validCandidate()
	c.Choices[2].Text = ""
	if _, err := MapCandidate(c, mapperRequest()); err == nil {
		t.Fatal("expected error for empty choice text")
	}
}

func TestMapCandidate_MultipleCorrect(t *testing.T) {
	c := validCandidate()
	c.Choices[0].IsCorrect = true
	if _, err := MapCandidate(c, mapperRequest()); err == nil {
		t.Fatal("expected error for two correct choices")
	}
}

func TestMapCandidate_NoCorrect(t *testing.T) {
	c := validCandidate()
	c.Choices[1].IsCorrect = false
	if _, err := MapCandidate(c, mapperRequest()); err == nil {
		t.Fatal("expected error for zero correct choices")
	}
}

func TestMapCandidate_EmptyExplanation(t *testing.T) {
	c := validCandidate()
	c.Explanation = ""
	if _, err := MapCandidate(c, mapperRequest()); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}

func TestMapCandidate_DifficultyFallback(t *testing.T) {
	c := validCandidate()
	c.Difficulty = ""

	req := mapperRequest()
	req.Difficulty = DifficultyMixed

	q, err := MapCandidate(c, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// mixed resolves to medium when the candidate carries no difficulty.
	if q.Metadata.Difficulty != DifficultyMedium {
		t.Errorf("expected medium, got %s", q.Metadata.Difficulty)
	}
}

func TestMapCandidate_FiveChoices(t *testing.T) {
	c := validCandidate()
	c.Choices = append(c.Choices, CandidateChoice{Text: "They always run in parallel"})

	req := mapperRequest()
	req.ChoiceCount = 5

	q, err := MapCandidate(c, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Choices[4].ID != "E" {
		t.Errorf("expected 5th choice id E, got %s", q.Choices[4].ID)
	}
}
