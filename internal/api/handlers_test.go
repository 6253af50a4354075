package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/questiongen"
)

func generationResponse(n int) llm.MockResponse {
	type choice struct {
		Text      string `json:"text"`
		IsCorrect bool   `json:"isCorrect"`
	}
	type candidate struct {
		Stem        string   `json:"stem"`
		Choices     []choice `json:"choices"`
		Explanation string   `json:"explanation"`
	}
	var out struct {
		Questions []candidate `json:"questions"`
	}
	for i := 0; i < n; i++ {
		out.Questions = append(out.Questions, candidate{
			Stem: fmt.Sprintf("Which of the following is correct about topic %d?", i),
			Choices: []choice{
				{Text: "right", IsCorrect: true},
				{Text: "wrong one"},
				{Text: "wrong two"},
				{Text: "wrong three"},
			},
			Explanation: "because",
		})
	}
	body, _ := json.Marshal(out)
	return llm.MockResponse{Content: body}
}

func newTestRouter(responses ...llm.MockResponse) (*gin.Engine, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := questiongen.NewService(mock, zap.NewNop(), questiongen.DefaultConfig())
	return NewRouter(svc, zap.NewNop()), mock
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func TestGenerateEndpoint(t *testing.T) {
	router, _ := newTestRouter(generationResponse(3))

	w := postJSON(t, router, "/api/questions/generate", map[string]any{
		"topic":           "Go concurrency",
		"difficulty":      "medium",
		"count":           3,
		"language":        "en",
		"validationLevel": "none",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("success = false, error %q", env.Error)
	}

	var data struct {
		Questions []questiongen.Question `json:"questions"`
	}
	raw, _ := json.Marshal(env.Data)
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Questions) != 3 {
		t.Errorf("got %d questions, want 3", len(data.Questions))
	}
}

func TestGenerateEndpoint_InputError(t *testing.T) {
	router, mock := newTestRouter()

	w := postJSON(t, router, "/api/questions/generate", map[string]any{
		"topic":      "",
		"difficulty": "medium",
		"count":      3,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Error == "" {
		t.Errorf("want success=false with error message, got %+v", env)
	}
	if mock.CallCount() != 0 {
		t.Errorf("input errors must not reach the provider")
	}
}

func TestGenerateEndpoint_MalformedBody(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/questions/generate", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGenerateEndpoint_ProviderFailure(t *testing.T) {
	router, _ := newTestRouter() // empty queue: every call fails

	w := postJSON(t, router, "/api/questions/generate", map[string]any{
		"topic":      "Go concurrency",
		"difficulty": "medium",
		"count":      2,
	})

	if w.Code < 500 {
		t.Fatalf("status = %d, want a 5xx", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Error == "" {
		t.Errorf("want success=false with error message, got %+v", env)
	}
}

func TestRegenerateEndpoint(t *testing.T) {
	rewritten := map[string]any{
		"question": map[string]any{
			"stem": "Which statement about channels is correct?",
			"choices": []map[string]any{
				{"text": "fresh a", "isCorrect": false},
				{"text": "the kept answer", "isCorrect": true},
				{"text": "fresh c", "isCorrect": false},
				{"text": "fresh d", "isCorrect": false},
			},
			"explanation": "reworded",
		},
	}
	body, _ := json.Marshal(rewritten)
	router, _ := newTestRouter(llm.MockResponse{Content: body})

	w := postJSON(t, router, "/api/questions/regenerate", map[string]any{
		"question": questiongen.Question{
			ID:   "q-1",
			Stem: "Which of the following is correct about channels?",
			Choices: []questiongen.Choice{
				{ID: "A", Text: "a"}, {ID: "B", Text: "the kept answer"},
				{ID: "C", Text: "c"}, {ID: "D", Text: "d"},
			},
			CorrectChoiceID: "B",
			Explanation:     "because",
			Metadata:        questiongen.Metadata{Topic: "Go", Difficulty: questiongen.DifficultyMedium},
		},
		"targetLanguage": "en",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("success = false, error %q", env.Error)
	}

	var data struct {
		Question questiongen.Question `json:"question"`
	}
	raw, _ := json.Marshal(env.Data)
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Question.CorrectChoiceID != "B" {
		t.Errorf("CorrectChoiceID = %q, want B", data.Question.CorrectChoiceID)
	}
}
