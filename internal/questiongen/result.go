package questiongen

// resultState is the variant tag of a Result.
type resultState int

const (
	stateLoading resultState = iota
	stateSuccess
	stateError
)

// Result is a tri-state wrapper for caller-facing flows: Loading while
// an orchestration is in flight, then Success or Error. Errors carry a
// descriptive message and optional cause instead of an exception
// hierarchy.
type Result[T any] struct {
	state   resultState
	value   T
	message string
	cause   error
}

// Loading returns a Result in the loading state.
func Loading[T any]() Result[T] {
	return Result[T]{state: stateLoading}
}

// Success returns a Result holding a value.
func Success[T any](v T) Result[T] {
	return Result[T]{state: stateSuccess, value: v}
}

// Failure returns a Result holding an error message and optional cause.
func Failure[T any](message string, cause error) Result[T] {
	return Result[T]{state: stateError, message: message, cause: cause}
}

func (r Result[T]) IsLoading() bool { return r.state == stateLoading }
func (r Result[T]) IsSuccess() bool { return r.state == stateSuccess }
func (r Result[T]) IsError() bool   { return r.state == stateError }

// Value returns the held value and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == stateSuccess
}

// ErrorMessage returns the descriptive message of an error result,
// empty otherwise.
func (r Result[T]) ErrorMessage() string {
	return r.message
}

// Cause returns the underlying error of an error result, which may be nil.
func (r Result[T]) Cause() error {
	return r.cause
}
