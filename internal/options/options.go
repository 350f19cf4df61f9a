// Package options implements a small generic functional-options pattern
// shared by configurable types across assetkit (currently env.Environment).
package options

// Option configures a *T, returning an error if the value it was given is
// invalid.
type Option[T any] interface {
	apply(T) error
}

type funcOption[T any] struct {
	fn func(T) error
}

func (o *funcOption[T]) apply(target T) error { return o.fn(target) }

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) *funcOption[T] {
	return &funcOption[T]{fn: fn}
}

// NoError wraps a configuration function that cannot fail.
func NoError[T any](fn func(T)) *funcOption[T] {
	return &funcOption[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs every option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
