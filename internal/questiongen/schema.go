package questiongen

import "github.com/abhisek/examgen/internal/llm"

// choiceSchema is shared between generation and regeneration responses.
var choiceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text": map[string]any{
			"type":        "string",
			"description": "The choice text shown to the examinee",
		},
		"isCorrect": map[string]any{
			"type":        "boolean",
			"description": "Whether this choice is a correct answer",
		},
		"reason": map[string]any{
			"type":        "string",
			"description": "Short note on why this choice is correct or a plausible distractor",
		},
	},
	"required":             []any{"text", "isCorrect", "reason"},
	"additionalProperties": false,
}

var candidateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"stem": map[string]any{
			"type":        "string",
			"description": "The question prompt. Its phrasing must state whether one or several answers are expected.",
		},
		"choices": map[string]any{
			"type":        "array",
			"items":       choiceSchema,
			"description": "The answer options, in display order",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct answer is correct",
		},
		"difficulty": map[string]any{
			"type":        "string",
			"enum":        []any{"easy", "medium", "hard"},
			"description": "Self-assessed difficulty of this question",
		},
	},
	"required":             []any{"stem", "choices", "explanation", "difficulty"},
	"additionalProperties": false,
}

// GenerationSchema constrains the question generation response.
var GenerationSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of multiple-choice exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": candidateSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// RegenerationSchema constrains the single-question rewrite response.
var RegenerationSchema = &llm.Schema{
	Name:        "exam-question-rewrite",
	Description: "A rewritten multiple-choice exam question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": candidateSchema,
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

// AuditSchema constrains the semantic audit response.
var AuditSchema = &llm.Schema{
	Name:        "exam-audit",
	Description: "Per-question verdicts on answer-key consistency",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdicts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index": map[string]any{
							"type":        "integer",
							"description": "Position of the question in the submitted batch, 0-based",
						},
						"isValid": map[string]any{
							"type":        "boolean",
							"description": "Whether the marked answers are factually defensible and match the stem's phrasing",
						},
						"correctedCorrectness": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "boolean"},
							"description": "When invalid but salvageable: the corrected isCorrect flags, one per choice in order. Empty otherwise.",
						},
						"issueSummary": map[string]any{
							"type":        "string",
							"description": "Short description of the problem, empty when valid",
						},
					},
					"required":             []any{"index", "isValid", "correctedCorrectness", "issueSummary"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"verdicts"},
		"additionalProperties": false,
	},
}
