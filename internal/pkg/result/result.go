// Package result provides the three-state outcome wrapper carried by the
// observe streams. One-shot operations return (T, error) instead; Loading
// never appears outside a stream.
package result

type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

type Result[T any] struct {
	Status Status
	Data   T
	Err    error
}

func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Status: StatusError, Err: err}
}

func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
