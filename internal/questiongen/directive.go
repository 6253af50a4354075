package questiongen

import (
	"regexp"
	"strings"
)

// Directive is the answer-cardinality expectation implied by a stem's
// own phrasing.
type Directive string

const (
	DirectiveSingleCorrect   Directive = "single_correct"
	DirectiveSingleIncorrect Directive = "single_incorrect"
	DirectiveMultiCorrect    Directive = "multi_correct"
	DirectiveMultiIncorrect  Directive = "multi_incorrect"
	DirectiveUnknown         Directive = "unknown"
)

// directiveRule pairs a phrase pattern with the directive it implies.
type directiveRule struct {
	id        string
	pattern   *regexp.Regexp
	directive Directive
}

// directiveRules is evaluated top to bottom, most specific first.
// Multi-answer patterns are textual supersets of single-answer patterns
// ("옳지 않은 것을 모두" contains "옳지 않은"), so they must come first.
// Stems are lowercased before matching.
var directiveRules = []directiveRule{
	// Multi-answer, incorrect.
	{"ko-multi-incorrect", regexp.MustCompile(`(옳지 ?않은|틀린|잘못된|아닌) ?것을 ?모두`), DirectiveMultiIncorrect},
	{"en-multi-incorrect", regexp.MustCompile(`(select|choose|mark) +all[^.?]*(incorrect|not +true|false)`), DirectiveMultiIncorrect},

	// Multi-answer, correct.
	{"ko-multi-correct", regexp.MustCompile(`(옳은|맞는|올바른|해당하는) ?것을 ?모두|모두 ?고르`), DirectiveMultiCorrect},
	{"en-multi-correct", regexp.MustCompile(`(select|choose|mark) +all( +that +apply|[^.?]*(correct|true))|all +of +the +following +that`), DirectiveMultiCorrect},

	// Single answer, incorrect.
	{"ko-single-incorrect", regexp.MustCompile(`옳지 ?않은|틀린 ?것|잘못된 ?것|아닌 ?것|적절하지 ?않은`), DirectiveSingleIncorrect},
	{"en-single-incorrect", regexp.MustCompile(`\bnot\b[^.?]*(correct|true)|incorrect|\bfalse\b|\bexcept\b`), DirectiveSingleIncorrect},

	// Single answer, correct.
	{"ko-single-correct", regexp.MustCompile(`옳은 ?것|맞는 ?것|올바른 ?것|적절한 ?것|무엇인가|고르시오`), DirectiveSingleCorrect},
	{"en-single-correct", regexp.MustCompile(`which[^.?]*(correct|true|best)|what +is\b|\bcorrect\b|\btrue\b`), DirectiveSingleCorrect},
}

// ClassifyDirective classifies a stem's phrasing into its expected
// answer cardinality. Pure and total: the same stem always yields the
// same directive, and unmatched stems default to unknown.
func ClassifyDirective(stem string) Directive {
	s := strings.ToLower(stem)
	for _, r := range directiveRules {
		if r.pattern.MatchString(s) {
			return r.directive
		}
	}
	return DirectiveUnknown
}
