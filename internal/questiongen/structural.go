package questiongen

import "fmt"

// StructuralVerdict records the outcome of cross-checking a candidate's
// correct-answer count against its stem's directive.
type StructuralVerdict struct {
	Directive Directive

	// ExpectedCorrectCount is 1 for single-answer directives and 0 when
	// the directive places no fixed expectation (multi or unknown).
	ExpectedCorrectCount int

	ActualCorrectCount int
	IsValid            bool
	Issues             []string
}

// ValidateStructure cross-checks the actual correct-answer count against
// the directive. Policy:
//
//	single_correct / single_incorrect — exactly 1 flagged correct
//	multi_correct / multi_incorrect   — at least 1 flagged correct
//	unknown                           — never invalid, informational issue
func ValidateStructure(directive Directive, choices []CandidateChoice) StructuralVerdict {
	actual := 0
	for _, c := range choices {
		if c.IsCorrect {
			actual++
		}
	}

	v := StructuralVerdict{
		Directive:          directive,
		ActualCorrectCount: actual,
		IsValid:            true,
	}

	switch directive {
	case DirectiveSingleCorrect, DirectiveSingleIncorrect:
		v.ExpectedCorrectCount = 1
		if actual != 1 {
			v.IsValid = false
			v.Issues = append(v.Issues, fmt.Sprintf("directive %s expects exactly 1 correct choice, found %d", directive, actual))
		}
	case DirectiveMultiCorrect, DirectiveMultiIncorrect:
		if actual == 0 {
			v.IsValid = false
			v.Issues = append(v.Issues, fmt.Sprintf("directive %s expects at least 1 correct choice, found none", directive))
		}
	default:
		v.Issues = append(v.Issues, "directive could not be classified; correct-answer count unchecked")
	}

	return v
}
