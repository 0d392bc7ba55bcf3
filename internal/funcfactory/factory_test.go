package funcfactory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/dirstore"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/funcfactory"
	"github.com/specialistvlad/scriptfunc/internal/handler"
	"github.com/specialistvlad/scriptfunc/internal/hclhook"
	"github.com/specialistvlad/scriptfunc/internal/inmemorystore"
	"github.com/specialistvlad/scriptfunc/internal/invocable"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/specialistvlad/scriptfunc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func args(t *testing.T, srcs ...string) []hcl.Expression {
	t.Helper()
	out := make([]hcl.Expression, len(srcs))
	for i, src := range srcs {
		expr, diags := hclsyntax.ParseExpression([]byte(src), "arg", hcl.InitialPos)
		require.False(t, diags.HasErrors(), diags.Error())
		out[i] = expr
	}
	return out
}

func newFactory(t *testing.T, store artifact.Store, stubs *testutil.StubModule, opts ...funcfactory.Option) *funcfactory.Factory {
	t.Helper()
	f, err := funcfactory.New(store, registry.New(hclhook.Module{}, stubs), opts...)
	require.NoError(t, err)
	return f
}

func memStore(files ...string) *inmemorystore.Store {
	s := inmemorystore.New()
	for _, name := range files {
		s.Put(name, []byte("a, b"))
	}
	return s
}

func TestFunction_EndToEnd(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{
		"sum.groovy": "a, b",
		"sum.hcl":    testutil.SumScript,
	})
	stubs := testutil.NewStubModule("groovy")
	f := newFactory(t, dirstore.New(dir), stubs)
	ctx, _ := testutil.NewLogContext()

	fn, err := f.Function(ctx, fnname.Qualified("sum", "groovy"), args(t, "1", "2"), nil)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Len(t, fn.Args(), 2)
	assert.Equal(t, "groovy", fn.Handler().Language)

	v, err := fn.Evaluate(nil)
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)})).True(), "got %#v", v)

	fn, err = f.Function(ctx, fnname.Qualified("sum", "hcl"), args(t, "1", "2"), nil)
	require.NoError(t, err)
	v, err = fn.Evaluate(nil)
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.NumberIntVal(3)).True())

	missing, err := f.FunctionByLocalName(ctx, "missing", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFunction_SingleFlight(t *testing.T) {
	stubs := testutil.NewStubModule("groovy")
	stubs.Hooks["groovy"].Delay = 20 * time.Millisecond
	f := newFactory(t, memStore("sum.groovy"), stubs)

	const goroutines = 16
	results := make([]*invocable.Function, goroutines)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			fn, err := f.Function(context.Background(), fnname.Qualified("sum", "groovy"), nil, nil)
			assert.NoError(t, err)
			results[i] = fn
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), stubs.Hooks["groovy"].Compiles.Load())
	for _, fn := range results {
		require.NotNil(t, fn)
		assert.Same(t, results[0].Handler(), fn.Handler())
	}
}

func TestFunction_QualifiedPrecedence(t *testing.T) {
	for _, order := range [][]string{{"foo.xsd", "foo.js"}, {"foo.js", "foo.xsd"}} {
		stubs := testutil.NewStubModule("xsd", "js")
		f := newFactory(t, memStore(order...), stubs)

		fn, err := f.Function(context.Background(), fnname.Qualified("foo", "xsd"), nil, nil)
		require.NoError(t, err)
		require.NotNil(t, fn)
		assert.Equal(t, "foo.xsd", fn.Handler().Artifact.FileName)

		first, err := f.FunctionByLocalName(context.Background(), "foo", nil, nil)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, order[0], first.Handler().Artifact.FileName)
		assert.Equal(t, "foo", first.Handler().Artifact.BaseName)

		again, err := f.FunctionByLocalName(context.Background(), "foo", nil, nil)
		require.NoError(t, err)
		assert.Same(t, first.Handler(), again.Handler())
	}
}

func TestFunction_NotFoundIsNotCached(t *testing.T) {
	store := memStore()
	stubs := testutil.NewStubModule("groovy")
	f := newFactory(t, store, stubs)
	ctx, logs := testutil.NewLogContext()

	fn, err := f.Function(ctx, fnname.Qualified("late", "groovy"), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, fn)
	assert.Contains(t, logs.String(), "Function not recognized.")

	store.Put("late.groovy", []byte("x"))

	fn, err = f.Function(ctx, fnname.Qualified("late", "groovy"), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, 1, f.Resident())
}

func TestFunction_ConfigurationFault(t *testing.T) {
	store := memStore()
	store.Put("bad.groovy", []byte("broken"))
	store.Put("schema.xsd", []byte("<x/>"))
	stubs := testutil.NewStubModule("groovy")
	f := newFactory(t, store, stubs)

	fn, err := f.Function(context.Background(), fnname.Qualified("bad", "groovy"), nil, nil)
	assert.Nil(t, fn)
	require.ErrorIs(t, err, handler.ErrArtifactInvalid)
	assert.True(t, funcfactory.IsConfigurationFault(err))

	_, err = f.Function(context.Background(), fnname.Qualified("schema", "xsd"), nil, nil)
	require.ErrorIs(t, err, handler.ErrArtifactInvalid)

	store.Put("bad.groovy", []byte("a"))
	fn, err = f.Function(context.Background(), fnname.Qualified("bad", "groovy"), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, fn)
	assert.Equal(t, int64(2), stubs.Hooks["groovy"].Compiles.Load())
}

func TestIsConfigurationFault(t *testing.T) {
	assert.False(t, funcfactory.IsConfigurationFault(nil))
	assert.False(t, funcfactory.IsConfigurationFault(artifact.ErrStoreUnavailable))
	assert.True(t, funcfactory.IsConfigurationFault(&handler.ConstructError{FileName: "x.js", Kind: handler.ErrArtifactUnavailable}))
}

func TestFunctionNames_SkipsArtifactsWithoutHook(t *testing.T) {
	f := newFactory(t, memStore("a.groovy", "b.xsd", "c.hcl", "d.groovy"), testutil.NewStubModule("groovy"))
	ctx, logs := testutil.NewLogContext()

	names := f.FunctionNames(ctx)
	assert.Equal(t, []fnname.Name{
		fnname.Qualified("a", "groovy"),
		fnname.Qualified("c", "hcl"),
		fnname.Qualified("d", "groovy"),
	}, names)
	assert.Contains(t, logs.String(), "Artifact skipped, no hook.")
	assert.Contains(t, logs.String(), "b.xsd")
}

func TestFunctionNames_DoesNotTouchCache(t *testing.T) {
	store := testutil.NewCountingStore(memStore("a.groovy"))
	f := newFactory(t, store, testutil.NewStubModule("groovy"))

	f.FunctionNames(context.Background())
	f.FunctionNames(context.Background())

	assert.Equal(t, int64(2), store.ListCalls.Load())
	assert.Zero(t, f.Resident())
}

func TestEviction_Rebuilds(t *testing.T) {
	stubs := testutil.NewStubModule("groovy")
	f := newFactory(t, memStore("a.groovy", "b.groovy"), stubs, funcfactory.WithCapacity(1))
	ctx := context.Background()

	a1, err := f.Function(ctx, fnname.Qualified("a", "groovy"), nil, nil)
	require.NoError(t, err)
	_, err = f.Function(ctx, fnname.Qualified("b", "groovy"), nil, nil)
	require.NoError(t, err)
	a2, err := f.Function(ctx, fnname.Qualified("a", "groovy"), nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a1.Handler().ID, a2.Handler().ID)
	assert.Equal(t, int64(3), stubs.Hooks["groovy"].Compiles.Load())
	assert.Equal(t, uint64(2), f.Stats().Evictions)
	assert.Equal(t, 1, f.Resident())
}

func TestStoreOutage_IsAbsorbed(t *testing.T) {
	store := &testutil.FlakyStore{Inner: memStore("a.groovy")}
	f := newFactory(t, store, testutil.NewStubModule("groovy"))
	ctx, logs := testutil.NewLogContext()

	store.SetDown(true)
	assert.Empty(t, f.FunctionNames(ctx))

	fn, err := f.Function(ctx, fnname.Qualified("a", "groovy"), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, fn)
	fn, err = f.FunctionByLocalName(ctx, "a", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, fn)
	assert.Contains(t, logs.String(), "level=WARN")

	store.SetDown(false)
	fn, err = f.Function(ctx, fnname.Qualified("a", "groovy"), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, fn)
}

func TestWithLogger_UsedWhenContextHasNone(t *testing.T) {
	ctx, logs := testutil.NewLogContext()
	f := newFactory(t, memStore("x.xsd"), testutil.NewStubModule("groovy"),
		funcfactory.WithLogger(ctxlog.FromContext(ctx)))

	f.FunctionNames(context.Background())
	assert.Contains(t, logs.String(), "Artifact skipped, no hook.")
}
