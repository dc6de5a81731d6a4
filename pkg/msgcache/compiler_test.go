package msgcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amannn/next-intl-sub001/pkg/icu"
	"github.com/amannn/next-intl-sub001/pkg/msgcache"
)

// countingStore records Set calls on top of a Memory store.
type countingStore struct {
	*msgcache.Memory
	sets atomic.Int32
}

func (s *countingStore) Set(ctx context.Context, key string, msg icu.Message) error {
	s.sets.Add(1)
	return s.Memory.Set(ctx, key, msg)
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("store unavailable")

func (brokenStore) Get(context.Context, string) (icu.Message, error) { return nil, errBroken }
func (brokenStore) Set(context.Context, string, icu.Message) error { return errBroken }
func (brokenStore) Delete(context.Context, string) error { return errBroken }
func (brokenStore) Has(context.Context, string) (bool, error) { return false, errBroken }
func (brokenStore) Clear(context.Context) error { return errBroken }
func (brokenStore) Close() error { return nil }

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &countingStore{Memory: msgcache.NewMemory()}
	c := msgcache.NewCompiler(store)

	const src = "{n, plural, one {# item} other {# items}}"
	first, err := c.Compile(ctx, src)
	require.NoError(t, err)

	second, err := c.Compile(ctx, src)
	require.NoError(t, err)

	if diff := cmp.Diff(icu.MustCompile(src), second); diff != "" {
		t.Errorf("cached message mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), store.sets.Load())

	ok, err := store.Has(ctx, msgcache.Key(src))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompiler_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &countingStore{Memory: msgcache.NewMemory()}
	c := msgcache.NewCompiler(store)

	_, err := c.Compile(ctx, "{n, plural, one {x}}")
	require.Error(t, err)
	assert.Equal(t, icu.CodeMissingOtherClause, icu.Code(err))
	assert.Equal(t, int32(0), store.sets.Load())

	_, err = c.Compile(ctx, "{n, plural, one {x}}")
	require.ErrorIs(t, err, icu.ErrCompile)
}

func TestCompiler_CompileOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := msgcache.NewCompiler(nil, msgcache.WithCompileOptions(icu.WithMaxDepth(1)))

	_, err := c.Compile(ctx, "{a, select, x {{b, select, y {z} other {w}}} other {v}}")
	require.Error(t, err)
	assert.Equal(t, icu.CodeMaxDepthExceeded, icu.Code(err))
}

func TestCompiler_BrokenStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := msgcache.NewCompiler(brokenStore{})

	msg, err := c.Compile(ctx, "Hello {name}")
	require.NoError(t, err)

	out, err := icu.FormatString(msg, "en", icu.Values{"name": icu.String("Ada")})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)

	require.ErrorIs(t, c.Forget(ctx, "Hello {name}"), errBroken)
}

func TestCompiler_Forget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := msgcache.NewCompiler(msgcache.NewMemory())

	_, err := c.Compile(ctx, "x")
	require.NoError(t, err)
	require.NoError(t, c.Forget(ctx, "x"))

	ok, err := c.Store().Has(ctx, msgcache.Key("x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompiler_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := msgcache.NewCompiler(msgcache.NewMemory())

	var wg sync.WaitGroup
	results := make([]icu.Message, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := c.Compile(ctx, "{g, select, a {A} other {B}}")
			if err == nil {
				results[i] = msg
			}
		}()
	}
	wg.Wait()

	want := icu.MustCompile("{g, select, a {A} other {B}}")
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
