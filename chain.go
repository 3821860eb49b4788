package propchain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/a-peyrard/propchain/option"
	"github.com/a-peyrard/propchain/set"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

const (
	defaultChainName = "chain"
	describeMaxKeys  = 20
)

type (
	// Chain resolves keys against ordered sources, the first source holding a key wins.
	//
	// Sources are searched from index 0, then the fallback sources are searched in order.
	// A Chain is meant to be built and queried from a single goroutine.
	Chain struct {
		name     string
		sources  []Source
		fallback []Source
		logger   zerolog.Logger
	}

	Options struct {
		name     string
		fallback []Source
		logger   zerolog.Logger
	}

	// AddOptions customize the insertion of a source in a chain.
	AddOptions struct {
		conditions []condition
	}
)

// WithName names the chain, it is only visible when the chain is nested in another one.
func WithName(name string) option.Option[Options] {
	return func(opts *Options) {
		opts.name = name
	}
}

// WithFallback sets the sources searched, in order, once every regular source missed.
func WithFallback(sources ...Source) option.Option[Options] {
	return func(opts *Options) {
		opts.fallback = append(opts.fallback, sources...)
	}
}

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// New creates an empty chain. Without WithFallback nothing is resolved until sources are added.
func New(opts ...option.Option[Options]) *Chain {
	options := option.Build(
		&Options{
			name:   defaultChainName,
			logger: zerolog.Nop(),
		},
		opts...,
	)

	return &Chain{
		name:     options.name,
		sources:  make([]Source, 0),
		fallback: slices.Clone(options.fallback),
		logger:   options.logger,
	}
}

// NewEnvironment creates a chain falling back on the process properties (SystemSource),
// then on the environment variables (EnvSource).
func NewEnvironment(opts ...option.Option[Options]) *Chain {
	return New(
		append(
			[]option.Option[Options]{WithFallback(NewSystemSource(), NewEnvSource())},
			opts...,
		)...,
	)
}

// AddFirst inserts source with the highest priority.
func (c *Chain) AddFirst(source Source, opts ...option.Option[AddOptions]) error {
	return c.insert(func() (int, error) { return 0, nil }, source, opts)
}

// AddLast inserts source with the lowest priority, still before the fallback sources.
func (c *Chain) AddLast(source Source, opts ...option.Option[AddOptions]) error {
	return c.insert(func() (int, error) { return len(c.sources), nil }, source, opts)
}

// AddBefore inserts source right before the first source named relative.
func (c *Chain) AddBefore(relative string, source Source, opts ...option.Option[AddOptions]) error {
	return c.insert(func() (int, error) { return c.indexOfRelative(relative, source) }, source, opts)
}

// AddAfter inserts source right after the first source named relative.
func (c *Chain) AddAfter(relative string, source Source, opts ...option.Option[AddOptions]) error {
	return c.insert(
		func() (int, error) {
			idx, err := c.indexOfRelative(relative, source)
			return idx + 1, err
		},
		source,
		opts,
	)
}

// Replace swaps the first source named name with source, keeping its position.
func (c *Chain) Replace(name string, source Source) error {
	if err := c.validate(source); err != nil {
		return err
	}
	idx := c.indexOf(name)
	if idx < 0 {
		return fmt.Errorf("unable to replace %s:\n\t%w", name, ErrSourceNotFound)
	}

	c.sources[idx] = source
	c.logger.Debug().Str("replaced", name).Str("source", source.Name()).Msg("property source replaced")
	return nil
}

// Remove removes the first source named name.
func (c *Chain) Remove(name string) (Source, bool) {
	idx := c.indexOf(name)
	if idx < 0 {
		return nil, false
	}

	removed := c.sources[idx]
	c.sources = slices.Delete(c.sources, idx, idx+1)
	c.logger.Debug().Str("source", name).Msg("property source removed")
	return removed, true
}

// Resolve returns the value of key from the first source holding it.
func (c *Chain) Resolve(key string) (any, bool) {
	if value, found := resolveIn(c.sources, key); found {
		c.logger.Trace().Str("key", key).Msg("property resolved")
		return value, true
	}
	if value, found := resolveIn(c.fallback, key); found {
		c.logger.Trace().Str("key", key).Msg("property resolved from fallback")
		return value, true
	}
	return nil, false
}

func resolveIn(sources []Source, key string) (any, bool) {
	for _, source := range sources {
		if value, found := source.Lookup(key); found {
			return value, true
		}
	}
	return nil, false
}

// ResolveString resolves key and renders its value as a string.
func (c *Chain) ResolveString(key string) (string, bool) {
	value, found := c.Resolve(key)
	if !found {
		return "", false
	}
	str, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value), true
	}
	return str, true
}

func (c *Chain) Contains(key string) bool {
	_, found := c.Resolve(key)
	return found
}

// Sources returns a copy of the regular sources, highest priority first.
func (c *Chain) Sources() []Source {
	return slices.Clone(c.sources)
}

// Source returns the first source named name.
func (c *Chain) Source(name string) (Source, bool) {
	idx := c.indexOf(name)
	if idx < 0 {
		return nil, false
	}
	return c.sources[idx], true
}

func (c *Chain) Len() int {
	return len(c.sources)
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) Lookup(key string) (any, bool) {
	return c.Resolve(key)
}

// Keys lists the keys of every enumerable source, regular sources first, without duplicates.
func (c *Chain) Keys() []string {
	seen := set.New[string]()
	keys := make([]string, 0)
	for _, source := range slices.Concat(c.sources, c.fallback) {
		for _, k := range source.Keys() {
			if seen.Add(k) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func (c *Chain) insert(position func() (int, error), source Source, opts []option.Option[AddOptions]) error {
	if err := c.validate(source); err != nil {
		return err
	}

	options := option.Build(&AddOptions{}, opts...)
	for _, cond := range options.conditions {
		if !c.validateCondition(cond) {
			c.logger.Debug().
				Str("source", source.Name()).
				Stringer("condition", cond).
				Msg("property source skipped, condition not met")
			return nil
		}
	}

	idx, err := position()
	if err != nil {
		return err
	}

	if c.indexOf(source.Name()) >= 0 {
		c.logger.Warn().
			Str("source", source.Name()).
			Msg("duplicate property source name, the source with the highest priority shadows the other")
	}

	c.sources = slices.Insert(c.sources, idx, source)
	c.logger.Debug().Str("source", source.Name()).Int("position", idx).Msg("property source added")
	return nil
}

func (c *Chain) validate(source Source) error {
	if source == nil {
		return ErrNilSource
	}
	if other, ok := source.(*Chain); ok && other.reaches(c, set.New[*Chain]()) {
		return ErrSelfReference
	}
	if source.Name() == "" {
		return ErrEmptySourceName
	}
	return nil
}

// reaches tells if target is c or is nested, at any depth, in the sources or fallback of c.
func (c *Chain) reaches(target *Chain, visited set.Set[*Chain]) bool {
	if c == target {
		return true
	}
	if !visited.Add(c) {
		return false
	}
	for _, source := range slices.Concat(c.sources, c.fallback) {
		if nested, ok := source.(*Chain); ok && nested.reaches(target, visited) {
			return true
		}
	}
	return false
}

func (c *Chain) indexOf(name string) int {
	return slices.IndexFunc(c.sources, func(s Source) bool {
		return s.Name() == name
	})
}

func (c *Chain) indexOfRelative(relative string, source Source) (int, error) {
	if source.Name() == relative {
		return 0, fmt.Errorf("property source %s cannot be added relative to itself", relative)
	}
	idx := c.indexOf(relative)
	if idx < 0 {
		return 0, fmt.Errorf("unable to add %s relative to %s:\n\t%w", source.Name(), relative, ErrSourceNotFound)
	}
	return idx, nil
}

// Describe renders the sources of the chain, in resolution order.
func (c *Chain) Describe() string {
	var b strings.Builder
	b.WriteString("* Property sources:\n")
	describeSources(&b, c.sources)
	b.WriteString("* Fallback sources:\n")
	describeSources(&b, c.fallback)
	return b.String()
}

func describeSources(b *strings.Builder, sources []Source) {
	if len(sources) == 0 {
		b.WriteString("\t(none)\n")
		return
	}
	for i, source := range sources {
		keys := source.Keys()
		b.WriteString(fmt.Sprintf("\t%d. %s (%T, %d keys)\n", i, source.Name(), source, len(keys)))
		if len(keys) > describeMaxKeys {
			b.WriteString(fmt.Sprintf("\t\t... %d keys not shown\n", len(keys)))
			continue
		}
		for _, k := range keys {
			value, _ := source.Lookup(k)
			b.WriteString(fmt.Sprintf("\t\t- %s = %v\n", k, value))
		}
	}
}

// ResolveAs resolves key and converts its value to T.
//
// A missing key is not an error: found is false and value is the zero value.
// A value that cannot be converted gives a *ConversionError.
func ResolveAs[T any](c *Chain, key string) (value T, found bool, err error) {
	raw, found := c.Resolve(key)
	if !found {
		return value, false, nil
	}
	value, err = convertKey[T](key, raw)
	return value, true, err
}

// ResolveOr resolves key as T, or returns def when the key is missing.
func ResolveOr[T any](c *Chain, key string, def T) (T, error) {
	value, found, err := ResolveAs[T](c, key)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return value, nil
}

// ResolveRequired resolves key as T and fails with ErrMissingKey when no source holds it.
func ResolveRequired[T any](c *Chain, key string) (T, error) {
	value, found, err := ResolveAs[T](c, key)
	if err != nil {
		return value, err
	}
	if !found {
		return value, fmt.Errorf("unable to resolve %s:\n\t%w", key, ErrMissingKey)
	}
	return value, nil
}

// IsConversionError tells if err is, or wraps, a *ConversionError.
func IsConversionError(err error) bool {
	var convErr *ConversionError
	return errors.As(err, &convErr)
}
