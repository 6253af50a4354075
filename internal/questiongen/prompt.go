package questiongen

import (
	"fmt"
	"strings"
)

const generationSystemPrompt = `You are an expert exam writer creating multiple-choice questions.

Rules:
- Generate exactly the requested number of questions about the given topic.
- Every question must have exactly the requested number of choices.
- The stem's phrasing must state how many answers are expected ("which ONE is correct", "select ALL that apply", "which is NOT true"), and the number of choices marked correct must agree with that phrasing.
- Unless a stem explicitly asks for multiple answers, mark exactly one choice correct.
- Distractors must be plausible but clearly wrong to someone who knows the material. No joke options.
- The explanation must say why the correct answer is correct, not merely restate it.
- Do not leak the answer in the stem.
- Do not repeat any stem from the "already generated" list.
- Write all text in the requested language.`

const auditSystemPrompt = `You are an expert exam reviewer auditing answer keys.

For each submitted question, judge whether the choices marked correct are factually defensible AND consistent with the stem's own phrasing (a "which one is correct" stem must have exactly one correct choice; a "select all" stem may have several; a "which is NOT true" stem's marked answer must be the false statement).

If the marked answers are wrong but the question is salvageable by re-marking, return the corrected flags, one per choice in the original order. If the question is unsalvageable, mark it invalid with an empty correction.`

func languageName(l Language) string {
	if l == LanguageEnglish {
		return "English"
	}
	return "Korean"
}

// buildGenerationMessage constructs the user message for one generation call.
func buildGenerationMessage(req GenerationRequest, templates []TemplateDescriptor, n int, priorStems []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.Description)
	}
	if len(req.Subtopics) > 0 {
		fmt.Fprintf(&b, "Subtopics: %s\n", strings.Join(req.Subtopics, ", "))
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Language: %s\n", languageName(req.Language))
	fmt.Fprintf(&b, "Questions to generate: %d\n", n)
	fmt.Fprintf(&b, "Choices per question: %d\n", req.ChoiceCount)

	b.WriteString("\nQuestion archetypes to draw from (vary across them):\n")
	for i, t := range templates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Prompt)
	}

	b.WriteString("\nAlready generated (do not repeat):\n")
	b.WriteString(formatPriorStems(priorStems, maxPriorStems))

	return b.String()
}

// maxPriorStems bounds the dedup list so prompts stay small.
const maxPriorStems = 30

// formatPriorStems formats already-generated stems for the prompt,
// keeping only the most recent entries. Returns "None" when empty.
func formatPriorStems(stems []string, max int) string {
	if len(stems) == 0 {
		return "None"
	}

	if max > 0 && len(stems) > max {
		stems = stems[len(stems)-max:]
	}

	var b strings.Builder
	for i, s := range stems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildAuditMessage constructs the user message for one semantic audit call.
func buildAuditMessage(batch []CandidateQuestion) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Audit the answer keys of the following %d questions.\n", len(batch))

	for i, q := range batch {
		fmt.Fprintf(&b, "\nQuestion %d (detected directive: %s):\n", i, ClassifyDirective(q.Stem))
		fmt.Fprintf(&b, "Stem: %s\n", q.Stem)
		for j, c := range q.Choices {
			marker := " "
			if c.IsCorrect {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %d. %s\n", marker, j+1, c.Text)
		}
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}

	b.WriteString("\nChoices marked with * are flagged correct. Return one verdict per question, indexed from 0.")

	return b.String()
}

const regenerateSystemPrompt = `You are an expert exam writer rewriting a single multiple-choice question.

Rules:
- Rewrite the stem and choices with fresh wording, keeping the same knowledge being tested.
- The correct answer must stay the same fact; its wording may change but its meaning may not.
- Keep the same number of choices and mark exactly the rewritten form of the original correct answer as correct.
- Keep the same difficulty tier unless a different one is requested.
- Write all text in the requested language.`

// buildRegenerateMessage constructs the user message for a single-question rewrite.
func buildRegenerateMessage(q Question, difficulty Difficulty, language Language) string {
	var b strings.Builder

	b.WriteString("Rewrite this question:\n\n")
	fmt.Fprintf(&b, "Stem: %s\n", q.Stem)
	for _, c := range q.Choices {
		marker := " "
		if c.ID == q.CorrectChoiceID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s. %s\n", marker, c.ID, c.Text)
	}
	fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	fmt.Fprintf(&b, "Topic: %s\n", q.Metadata.Topic)
	fmt.Fprintf(&b, "\nTarget difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Target language: %s\n", languageName(language))
	b.WriteString("The choice marked with * is the correct answer and must remain the correct answer.")

	return b.String()
}
