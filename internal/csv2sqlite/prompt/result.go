package prompt

// Result is the answer to a prompt: either a value or a cancellation.
type Result[T any] struct {
	value     T
	cancelled bool
}

// Ok returns a Result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Cancelled returns a Result for a prompt the user aborted.
func Cancelled[T any]() Result[T] {
	return Result[T]{cancelled: true}
}

// Value returns the answer and true, or the zero value and false when
// the prompt was cancelled.
func (r Result[T]) Value() (T, bool) {
	return r.value, !r.cancelled
}

// IsCancelled reports whether the prompt was aborted.
func (r Result[T]) IsCancelled() bool {
	return r.cancelled
}
