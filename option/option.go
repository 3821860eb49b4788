// Package option holds the variadic functional options used across propchain.
package option

// Option mutates an options struct of type T.
type Option[T any] func(opts *T)

// Build applies opts in order on top of defaults and returns defaults.
func Build[T any](defaults *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		if opt != nil {
			opt(defaults)
		}
	}
	return defaults
}
