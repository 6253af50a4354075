package questiongen

import (
	"errors"
	"fmt"
)

// InputError indicates a malformed or out-of-range request field.
// Input errors fail immediately and are never retried.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid request field %q: %s", e.Field, e.Message)
}

// MappingError indicates a verified candidate violated the canonical
// question shape. The offending candidate is dropped; the rest of the
// batch is unaffected.
type MappingError struct {
	Field   string
	Message string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping failed on %s: %s", e.Field, e.Message)
}

// AllCandidatesInvalidError indicates every candidate in a generation
// response failed structural validation. The whole attempt is fatal:
// there is no salvageable content.
type AllCandidatesInvalidError struct {
	Issues []string
}

func (e *AllCandidatesInvalidError) Error() string {
	return fmt.Sprintf("all %d candidates failed structural validation", len(e.Issues))
}

// ShortfallError indicates fewer valid questions than requested survived
// after batching and top-up. Fatal only under strict validation.
type ShortfallError struct {
	Requested int
	Produced  int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("produced %d of %d requested questions", e.Produced, e.Requested)
}

// ErrNoQuestions indicates zero valid questions were produced.
// Always fatal regardless of validation level.
var ErrNoQuestions = errors.New("no valid questions produced")
