// Package result models the lifecycle of an asynchronous read as a closed
// tagged union: Loading, Success carrying a value, or Error carrying a cause.
// Consumers switch on Tag and must handle all three cases.
package result

// Tag identifies which variant a Result holds.
type Tag int

const (
	// TagLoading is the zero tag: a read that has produced nothing yet.
	TagLoading Tag = iota
	TagSuccess
	TagError
)

func (t Tag) String() string {
	switch t {
	case TagSuccess:
		return "success"
	case TagError:
		return "error"
	default:
		return "loading"
	}
}

// Result is one immutable emission of an asynchronous read. The zero value
// is Loading.
type Result[T any] struct {
	tag   Tag
	value T
	err   error
}

// Loading returns the pre-emission state.
func Loading[T any]() Result[T] {
	return Result[T]{}
}

// Ok wraps a successfully read value.
func Ok[T any](v T) Result[T] {
	return Result[T]{tag: TagSuccess, value: v}
}

// Err wraps a read failure.
func Err[T any](err error) Result[T] {
	return Result[T]{tag: TagError, err: err}
}

// Tag reports which variant this Result holds.
func (r Result[T]) Tag() Tag {
	return r.tag
}

// Value returns the carried value. It is only meaningful when Tag is
// TagSuccess; otherwise it is the zero value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the carried failure, nil unless Tag is TagError.
func (r Result[T]) Err() error {
	return r.err
}
