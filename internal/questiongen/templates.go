package questiongen

import "slices"

// TemplateKind is the archetype of a question template.
type TemplateKind string

const (
	KindConcept      TemplateKind = "concept"
	KindCode         TemplateKind = "code"
	KindScenario     TemplateKind = "scenario"
	KindCompare      TemplateKind = "compare"
	KindMultipleTrue TemplateKind = "multiple_true"
)

// TemplateDescriptor is one question archetype in the static catalog.
// An empty Difficulties or Languages set means no restriction.
type TemplateDescriptor struct {
	ID           string
	Kind         TemplateKind
	Prompt       string
	Difficulties []Difficulty
	Languages    []Language
}

// templateCatalog is the process-lifetime constant catalog of question
// archetypes. Used only to steer prompt content.
var templateCatalog = []TemplateDescriptor{
	{
		ID:     "concept-definition",
		Kind:   KindConcept,
		Prompt: "Ask for the definition or core idea of a key concept within the topic.",
	},
	{
		ID:     "concept-principle",
		Kind:   KindConcept,
		Prompt: "Ask which statement correctly describes a principle, rule, or mechanism of the topic.",
	},
	{
		ID:           "concept-example",
		Kind:         KindConcept,
		Prompt:       "Ask which option is (or is not) an example of a concept from the topic.",
		Difficulties: []Difficulty{DifficultyEasy, DifficultyMedium},
	},
	{
		ID:           "concept-acronym",
		Kind:         KindConcept,
		Prompt:       "Ask what an acronym or initialism from the topic stands for or means.",
		Difficulties: []Difficulty{DifficultyEasy},
		Languages:    []Language{LanguageEnglish},
	},
	{
		ID:           "code-output",
		Kind:         KindCode,
		Prompt:       "Show a short code snippet related to the topic and ask for its output or behavior.",
		Difficulties: []Difficulty{DifficultyMedium, DifficultyHard},
	},
	{
		ID:           "code-bugfix",
		Kind:         KindCode,
		Prompt:       "Show a code snippet containing a subtle bug and ask which choice identifies or fixes it.",
		Difficulties: []Difficulty{DifficultyHard},
	},
	{
		ID:           "code-fill",
		Kind:         KindCode,
		Prompt:       "Show a code snippet with a blank and ask which choice completes it correctly.",
		Difficulties: []Difficulty{DifficultyMedium, DifficultyHard},
	},
	{
		ID:           "scenario-troubleshoot",
		Kind:         KindScenario,
		Prompt:       "Describe a realistic failure or symptom and ask for the most likely cause or fix.",
		Difficulties: []Difficulty{DifficultyMedium, DifficultyHard},
	},
	{
		ID:           "scenario-decision",
		Kind:         KindScenario,
		Prompt:       "Describe a practical situation and ask which approach is most appropriate and why.",
		Difficulties: []Difficulty{DifficultyHard},
	},
	{
		ID:     "compare-pair",
		Kind:   KindCompare,
		Prompt: "Ask which statement correctly contrasts two related concepts from the topic.",
	},
	{
		ID:           "compare-tradeoff",
		Kind:         KindCompare,
		Prompt:       "Ask about the trade-offs of choosing one approach over another within the topic.",
		Difficulties: []Difficulty{DifficultyHard},
	},
	{
		ID:           "multiple-true-statements",
		Kind:         KindMultipleTrue,
		Prompt:       "Present several statements about the topic and ask which combination of them is true.",
		Difficulties: []Difficulty{DifficultyMedium, DifficultyHard},
	},
}

// kindQuota is the per-kind shortlist quota applied for a difficulty.
// Easy favors concept archetypes; hard favors code, scenario, compare,
// and multiple_true.
var kindQuotas = map[Difficulty]map[TemplateKind]int{
	DifficultyEasy: {
		KindConcept:      3,
		KindCompare:      1,
		KindMultipleTrue: 1,
	},
	DifficultyMedium: {
		KindConcept:      2,
		KindCode:         1,
		KindScenario:     1,
		KindCompare:      1,
		KindMultipleTrue: 1,
	},
	DifficultyHard: {
		KindConcept:      1,
		KindCode:         2,
		KindScenario:     2,
		KindCompare:      1,
		KindMultipleTrue: 2,
	},
	DifficultyMixed: {
		KindConcept:      2,
		KindCode:         1,
		KindScenario:     1,
		KindCompare:      1,
		KindMultipleTrue: 1,
	},
}

// SelectTemplates picks a diverse, difficulty- and language-appropriate
// subset of the catalog for a request. For counts above 30 the entire
// filtered catalog is returned to maximize variety. If the quota-based
// shortlist comes out with fewer than 3 entries, the first 5 available
// entries are used instead.
func SelectTemplates(difficulty Difficulty, language Language, count int) []TemplateDescriptor {
	filtered := filterCatalog(difficulty, language)

	if count > 30 {
		return filtered
	}

	quotas := kindQuotas[difficulty]
	taken := map[TemplateKind]int{}
	var shortlist []TemplateDescriptor
	for _, t := range filtered {
		if taken[t.Kind] < quotas[t.Kind] {
			shortlist = append(shortlist, t)
			taken[t.Kind]++
		}
	}

	if len(shortlist) < 3 {
		fallback := filtered
		if len(fallback) == 0 {
			fallback = templateCatalog
		}
		if len(fallback) > 5 {
			fallback = fallback[:5]
		}
		return fallback
	}

	return shortlist
}

func filterCatalog(difficulty Difficulty, language Language) []TemplateDescriptor {
	var out []TemplateDescriptor
	for _, t := range templateCatalog {
		if !matchesDifficulty(t, difficulty) || !matchesLanguage(t, language) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesDifficulty(t TemplateDescriptor, d Difficulty) bool {
	// An unrestricted entry matches everything; mixed matches any entry.
	if len(t.Difficulties) == 0 || d == DifficultyMixed {
		return true
	}
	return slices.Contains(t.Difficulties, d)
}

func matchesLanguage(t TemplateDescriptor, l Language) bool {
	if len(t.Languages) == 0 {
		return true
	}
	return slices.Contains(t.Languages, l)
}
