package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/examgen/internal/llm"
)

func testCandidates(n int) []CandidateQuestion {
	out := make([]CandidateQuestion, n)
	for i := range out {
		out[i] = CandidateQuestion{
			Stem: fmt.Sprintf("Which of the following is correct about topic %d?", i),
			Choices: []CandidateChoice{
				{Text: "right answer", IsCorrect: true},
				{Text: "wrong one"},
				{Text: "wrong two"},
				{Text: "wrong three"},
			},
			Explanation: "because",
		}
	}
	return out
}

func auditResponse(verdicts []SemanticVerdict) llm.MockResponse {
	body, _ := json.Marshal(auditOutput{Verdicts: verdicts})
	return llm.MockResponse{Content: body}
}

func TestVerify_AllValid(t *testing.T) {
	mock := llm.NewMockProvider(auditResponse([]SemanticVerdict{
		{Index: 0, IsValid: true, CorrectedCorrectness: []bool{}},
		{Index: 1, IsValid: true, CorrectedCorrectness: []bool{}},
	}))
	v := NewVerifier(mock, DefaultConfig())

	verdicts, _ := v.Verify(context.Background(), testCandidates(2))
	if len(verdicts) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(verdicts))
	}
	for i, verdict := range verdicts {
		if !verdict.IsValid {
			t.Errorf("verdict %d: expected valid", i)
		}
		if verdict.Index != i {
			t.Errorf("verdict %d: expected global index %d, got %d", i, i, verdict.Index)
		}
	}
}

// The audit is fail-open: an unparsable response passes every candidate
// in the batch with a note, rather than discarding content.
func TestVerify_FailOpenOnUnparsableContent(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`this is not json`)},
	)
	v := NewVerifier(mock, DefaultConfig())

	verdicts, _ := v.Verify(context.Background(), testCandidates(6))
	if len(verdicts) != 6 {
		t.Fatalf("expected 6 verdicts, got %d", len(verdicts))
	}
	for i, verdict := range verdicts {
		if !verdict.IsValid {
			t.Errorf("verdict %d: expected valid under fail-open", i)
		}
		if verdict.IssueSummary == "" {
			t.Errorf("verdict %d: expected a degradation note", i)
		}
	}
}

func TestVerify_FailOpenOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	v := NewVerifier(mock, DefaultConfig())

	verdicts, _ := v.Verify(context.Background(), testCandidates(3))
	for i, verdict := range verdicts {
		if !verdict.IsValid || verdict.IssueSummary == "" {
			t.Errorf("verdict %d: expected fail-open pass with note, got %+v", i, verdict)
		}
	}
}

func TestVerify_BatchesOfTen(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`bad`)},
		llm.MockResponse{Content: json.RawMessage(`bad`)},
	)
	v := NewVerifier(mock, DefaultConfig())

	verdicts, _ := v.Verify(context.Background(), testCandidates(12))
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 audit calls for 12 candidates, got %d", mock.CallCount())
	}
	if len(verdicts) != 12 {
		t.Fatalf("expected 12 verdicts, got %d", len(verdicts))
	}
	// Verdicts from the second batch carry global indexes.
	if verdicts[11].Index != 11 {
		t.Errorf("expected global index 11, got %d", verdicts[11].Index)
	}
}

func TestApplyVerdict_ValidPassesThrough(t *testing.T) {
	c := testCandidates(1)[0]
	got, ok := ApplyVerdict(c, SemanticVerdict{IsValid: true})
	if !ok {
		t.Fatal("expected candidate kept")
	}
	if !got.Choices[0].IsCorrect {
		t.Error("valid verdict must not alter choices")
	}
}

func TestApplyVerdict_CorrectionApplied(t *testing.T) {
	c := testCandidates(1)[0]
	got, ok := ApplyVerdict(c, SemanticVerdict{
		IsValid:              false,
		CorrectedCorrectness: []bool{false, true, false, false},
	})
	if !ok {
		t.Fatal("expected candidate kept after correction")
	}
	if got.Choices[0].IsCorrect || !got.Choices[1].IsCorrect {
		t.Errorf("correction not applied: %+v", got.Choices)
	}
}

func TestApplyVerdict_LengthMismatchIgnored(t *testing.T) {
	c := testCandidates(1)[0]
	_, ok := ApplyVerdict(c, SemanticVerdict{
		IsValid:              false,
		CorrectedCorrectness: []bool{true, false},
	})
	if ok {
		t.Fatal("expected candidate dropped when correction length mismatches")
	}
}

func TestApplyVerdict_InvalidWithoutCorrectionDropped(t *testing.T) {
	c := testCandidates(1)[0]
	_, ok := ApplyVerdict(c, SemanticVerdict{IsValid: false, IssueSummary: "marked answer is wrong"})
	if ok {
		t.Fatal("expected candidate dropped")
	}
}
