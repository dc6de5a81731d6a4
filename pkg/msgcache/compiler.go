package msgcache

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// Compiler compiles message sources through a Store.
//
// Concurrent compilations of the same source share one parse. Failed
// compilations are never stored, so every caller sees the CompileError.
type Compiler struct {
	store Store
	opts  []icu.CompileOption
	group singleflight.Group
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompileOptions sets the options passed to icu.Compile.
// The cache key ignores them, so one store should serve one option set.
func WithCompileOptions(opts ...icu.CompileOption) CompilerOption {
	return func(c *Compiler) {
		c.opts = append(c.opts, opts...)
	}
}

// NewCompiler creates a caching compiler. A nil store gets a default
// Memory store.
func NewCompiler(store Store, opts ...CompilerOption) *Compiler {
	if store == nil {
		store = NewMemory()
	}
	c := &Compiler{store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns the compiled message for source, reusing a stored
// compilation when one exists.
//
// Store failures other than ErrNotFound do not fail the call: the source
// is compiled directly and the store write is best-effort.
func (c *Compiler) Compile(ctx context.Context, source string) (icu.Message, error) {
	key := Key(source)

	if msg, err := c.store.Get(ctx, key); err == nil {
		return msg, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have finished while we waited.
		if msg, err := c.store.Get(ctx, key); err == nil {
			return msg, nil
		}

		msg, err := icu.Compile(source, c.opts...)
		if err != nil {
			return nil, err
		}

		_ = c.store.Set(ctx, key, msg)
		return msg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(icu.Message), nil
}

// Forget drops the stored compilation of source.
func (c *Compiler) Forget(ctx context.Context, source string) error {
	if err := c.store.Delete(ctx, Key(source)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to forget message: %w", err)
	}
	return nil
}

// Store returns the underlying store.
func (c *Compiler) Store() Store {
	return c.store
}
