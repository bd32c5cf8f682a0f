package qa

// Result is the outcome of a pipeline stage. Stages never fail: when the external service misbehaves they return a
// documented fallback value and record why in Reason.
type Result[T any] struct {
	Value T
	// Reason is nil on success and explains the fallback otherwise.
	Reason error
}

// Ok wraps a value produced by the service.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Reason: nil}
}

// Fallback wraps a fallback value together with the reason the service could not produce the real one.
func Fallback[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Reason: reason}
}

// Degraded reports whether Value is a fallback.
func (r Result[T]) Degraded() bool {
	return r.Reason != nil
}
