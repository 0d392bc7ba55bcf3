package app

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/handler"
	"github.com/specialistvlad/scriptfunc/internal/hclhook"
	"github.com/specialistvlad/scriptfunc/internal/inmemorystore"
	"github.com/specialistvlad/scriptfunc/internal/redisstore"
	"github.com/specialistvlad/scriptfunc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// setupApp creates an app over cfg with debug logging captured in a buffer.
func setupApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.Log.Level = "debug"
	full, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	a, err := NewApp(logBuffer, full)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, a.Close())
		if os.Getenv("SCRIPTFUNC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return a, logBuffer
}

func parseArgs(t *testing.T, srcs ...string) []hcl.Expression {
	t.Helper()
	out := make([]hcl.Expression, len(srcs))
	for i, src := range srcs {
		expr, diags := hclsyntax.ParseExpression([]byte(src), "arg", hcl.InitialPos)
		require.False(t, diags.HasErrors(), diags.Error())
		out[i] = expr
	}
	return out
}

func TestApp_DirStore(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{
		"sum.hcl":   testutil.SumScript,
		"notes.txt": "not a function",
	})
	a, logs := setupApp(t, Config{Store: StoreConfig{Type: StoreDir, Path: dir}})
	ctx := context.Background()

	names := a.FunctionNames(ctx)
	assert.Contains(t, names, fnname.Qualified("sum", "hcl"))
	assert.Contains(t, names, fnname.Qualified("upper", "builtin"))
	assert.Contains(t, names, fnname.Qualified("env", "builtin"))
	assert.NotContains(t, names, fnname.Qualified("notes", "txt"))
	assert.Contains(t, logs.String(), "Artifact skipped, no hook.")

	v, err := a.Call(ctx, fnname.Local("sum"), parseArgs(t, "20", "22"), nil, nil)
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.NumberIntVal(42)).True())

	v, err = a.Call(ctx, fnname.Local("upper"), parseArgs(t, `"x"`), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("X"), v)

	fn, err := a.Source().Function(ctx, fnname.Qualified("sum", "hcl"), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, "hcl", fn.Handler().Language)
}

func TestApp_CallErrors(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{"bad.hcl": "result = ("})
	a, _ := setupApp(t, Config{Store: StoreConfig{Path: dir}})
	ctx := context.Background()

	_, err := a.Call(ctx, fnname.Local("nothing"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNotRecognized)

	_, err = a.Call(ctx, fnname.Qualified("bad", "hcl"), nil, nil, nil)
	assert.ErrorIs(t, err, handler.ErrArtifactInvalid)

	fallback := cty.StringVal("fallback")
	v, err := a.Call(ctx, fnname.Local("upper"), parseArgs(t, "1", "2"), &fallback, nil)
	require.NoError(t, err)
	assert.Equal(t, fallback, v)
}

func TestApp_MemoryStore(t *testing.T) {
	a, _ := setupApp(t, Config{Store: StoreConfig{Type: StoreMemory}})
	store, ok := a.Store().(*inmemorystore.Store)
	require.True(t, ok)
	store.Put("double.hcl", []byte("params = [\"x\"]\nresult = x * 2"))

	v, err := a.Call(context.Background(), fnname.Qualified("double", "hcl"), parseArgs(t, "x"), nil,
		&hcl.EvalContext{Variables: map[string]cty.Value{"x": cty.NumberIntVal(8)}})
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.NumberIntVal(16)).True())
}

func TestApp_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	a, _ := setupApp(t, Config{Store: StoreConfig{Type: StoreRedis, Redis: RedisConfig{Addr: mr.Addr()}}})

	mr.HSet(redisstore.DefaultKey, "sum.hcl", testutil.SumScript)

	names := a.Factory().FunctionNames(context.Background())
	assert.Equal(t, []fnname.Name{fnname.Qualified("sum", "hcl")}, names)

	v, err := a.Call(context.Background(), fnname.Local("sum"), parseArgs(t, "1", "1"), nil, nil)
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.NumberIntVal(2)).True())
}

func TestApp_RedisOutageIsNotRecognized(t *testing.T) {
	mr := miniredis.RunT(t)
	a, logs := setupApp(t, Config{Store: StoreConfig{Type: StoreRedis, Redis: RedisConfig{Addr: mr.Addr()}}})
	mr.Close()

	assert.Empty(t, a.Factory().FunctionNames(context.Background()))
	_, err := a.Call(context.Background(), fnname.Local("sum"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNotRecognized)
	assert.Contains(t, logs.String(), "Store enumeration failed.")
}

func TestApp_Warm(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{
		"a.hcl":    "result = 1",
		"b.hcl":    "result = 2",
		"c.hcl":    "result = ",
		"d.groovy": "a",
	})
	a, logs := setupApp(t, Config{Store: StoreConfig{Path: dir}, Warm: WarmConfig{Workers: 2}})

	report, err := a.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, WarmReport{Listed: 3, Built: 2, Failed: 1}, report)
	assert.Equal(t, 2, a.Factory().Resident())
	assert.Contains(t, logs.String(), "Function failed to build.")

	again, err := a.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report, again)
	assert.Equal(t, uint64(2), a.Factory().Stats().Constructions)
}

func TestApp_WarmCancelled(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{"a.hcl": "result = 1"})
	a, _ := setupApp(t, Config{Store: StoreConfig{Path: dir}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Warm(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewApp_CustomModules(t *testing.T) {
	dir := testutil.WriteArtifacts(t, map[string]string{"sum.groovy": "a, b"})
	cfg, err := NewConfig(Config{Store: StoreConfig{Path: dir}})
	require.NoError(t, err)

	a, err := NewApp(&testutil.SafeBuffer{}, cfg, hclhook.Module{}, testutil.NewStubModule("groovy"))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"groovy", "hcl"}, a.Registry().Extensions())
	names := a.Factory().FunctionNames(context.Background())
	assert.Equal(t, []fnname.Name{fnname.Qualified("sum", "groovy")}, names)
}
