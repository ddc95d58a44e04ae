package domain

// Result is the explicit-failure-value wrapper used by the Result-typed
// repository and service variants: a value is either a success carrying
// data, or a failure carrying exactly one taxonomy error. Callers must
// branch on OK before touching Data or Err.
type Result[T any] struct {
	OK   bool
	Data T
	Err  error
}

// Ok creates a success result.
func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Fail creates a failure result. err must be one of the taxonomy
// variants; the Result-typed repository guarantees this by mapping every
// underlying failure before wrapping.
func Fail[T any](err error) Result[T] {
	return Result[T]{OK: false, Err: err}
}

// Unwrap converts the result back to Go's (value, error) convention.
// It is the bridge used by tests to assert behavioral equivalence between
// the two repository variants.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err
}
