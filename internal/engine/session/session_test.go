package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminforras/analog/internal/adapters/compilerfe"
	"github.com/benjaminforras/analog/internal/adapters/sourcecache"
	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/engine/session"
	"github.com/benjaminforras/analog/internal/testkit"
)

func newConfig(host *testkit.MemHost, roots ...string) session.Config {
	return session.Config{
		Roots:    roots,
		Options:  domain.DefaultOptions(),
		Host:     host,
		Frontend: compilerfe.New(),
		Cache:    sourcecache.New(),
	}
}

func TestNew_EmptyRootSet(t *testing.T) {
	host := testkit.NewMemHost(nil)

	_, err := session.New(newConfig(host))
	require.ErrorIs(t, err, domain.ErrEmptyRootSet)

	_, err = session.New(newConfig(host, "", ""))
	require.ErrorIs(t, err, domain.ErrEmptyRootSet)
}

func TestNew_InvalidOptions(t *testing.T) {
	cfg := newConfig(testkit.NewMemHost(nil), "src/a.mod")
	cfg.Options.OutDir = ""

	_, err := session.New(cfg)
	require.ErrorIs(t, err, domain.ErrInvalidOptions)
}

func TestNew_NormalizesAndDeduplicatesRoots(t *testing.T) {
	s, err := session.New(newConfig(testkit.NewMemHost(nil), "./src/a.mod", "src/a.mod", "src/b.mod"))
	require.NoError(t, err)

	roots := s.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "src/a.mod", roots[0].String())
	assert.Equal(t, "src/b.mod", roots[1].String())
}

func TestAnalyze_DiscoversImportGraph(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/main.mod": `import './dep.mod';

@Component({ selector: 'app-root', template: '<h1></h1>' })
export class AppComponent {}
`,
		"src/dep.mod": `@Injectable({})
export class DataService {}
`,
	})
	s, err := session.New(newConfig(host, "src/main.mod"))
	require.NoError(t, err)

	program, err := s.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), program.Generation)
	assert.Equal(t, 2, program.Len())

	a, ok := program.Analysis("src/main.mod")
	require.True(t, ok)
	assert.Equal(t, []string{"src/dep.mod"}, a.Deps)

	_, ok = program.Analysis("src/dep.mod")
	assert.True(t, ok)
}

func TestAnalyze_MissingRootIsHostError(t *testing.T) {
	s, err := session.New(newConfig(testkit.NewMemHost(nil), "src/missing.mod"))
	require.NoError(t, err)

	_, err = s.Analyze(context.Background())
	require.ErrorIs(t, err, domain.ErrHostRead)
}

func TestAnalyze_CacheHitSkipsHostRead(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/a.mod": `@Injectable({})
export class S {}
`,
	})
	cfg := newConfig(host, "src/a.mod")
	s, err := session.New(cfg)
	require.NoError(t, err)
	_, err = s.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, host.Reads("src/a.mod"))

	// A second session over the same cache analyzes without re-reading.
	s2, err := session.New(cfg)
	require.NoError(t, err)
	_, err = s2.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, host.Reads("src/a.mod"))
}

func TestAnalyze_ReusesUnchangedModulesInWatchMode(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/main.mod": `import './dep.mod';

@Component({ selector: 'app-root', template: 't' })
export class AppComponent { f() {} }
`,
		"src/dep.mod": `@Injectable({})
export class DataService {}
`,
	})
	cfg := newConfig(host, "src/main.mod")
	cfg.Watch = true

	s1, err := session.New(cfg)
	require.NoError(t, err)
	first, err := s1.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, first.ReusedCount())

	// Edit main, invalidate its cache entry, rebuild with the previous program.
	host.Set("src/main.mod", `import './dep.mod';

@Component({ selector: 'app-root', template: 't' })
export class AppComponent { f() { return 1; } }
`)
	cfg.Cache.Invalidate([]string{"src/main.mod"})
	cfg.Previous = first

	s2, err := session.New(cfg)
	require.NoError(t, err)
	second, err := s2.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Generation)
	assert.Equal(t, 1, second.ReusedCount())

	dep, ok := second.Analysis("src/dep.mod")
	require.True(t, ok)
	assert.True(t, dep.Reused)

	main, ok := second.Analysis("src/main.mod")
	require.True(t, ok)
	assert.False(t, main.Reused)

	priorMain, ok := first.Analysis("src/main.mod")
	require.True(t, ok)
	assert.Greater(t, main.Module.Version, priorMain.Module.Version)
}

func TestAnalyze_NoReuseOutsideWatchMode(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/a.mod": `@Injectable({})
export class S {}
`,
	})
	cfg := newConfig(host, "src/a.mod")
	s1, err := session.New(cfg)
	require.NoError(t, err)
	first, err := s1.Analyze(context.Background())
	require.NoError(t, err)

	cfg.Previous = first
	s2, err := session.New(cfg)
	require.NoError(t, err)
	second, err := s2.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.ReusedCount())
}

func TestEmitter_BeforeAnalyze(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{"src/a.mod": "const x = 1;\n"})
	s, err := session.New(newConfig(host, "src/a.mod"))
	require.NoError(t, err)

	_, err = s.Emitter(domain.TransformerPipeline{})
	require.ErrorIs(t, err, domain.ErrNotAnalyzed)

	_, err = s.Analyze(context.Background())
	require.NoError(t, err)

	_, err = s.Emitter(domain.TransformerPipeline{})
	require.NoError(t, err)
}

func TestAnalyze_ParseDiagnosticsSurfaceOnProgram(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/a.mod": `@Component({ template: 't' })
export class C {}
`,
	})
	s, err := session.New(newConfig(host, "src/a.mod"))
	require.NoError(t, err)

	program, err := s.Analyze(context.Background())
	require.NoError(t, err)

	a, ok := program.Analysis("src/a.mod")
	require.True(t, ok)
	require.Len(t, a.Diagnostics, 1)
	assert.Equal(t, "AG2001", a.Diagnostics[0].Code)
}

func TestAnalyze_ParseDiagnosticsSurviveCacheHit(t *testing.T) {
	host := testkit.NewMemHost(map[string]string{
		"src/a.mod": `@Component({ template: 't' })
export class C {}
`,
	})
	cfg := newConfig(host, "src/a.mod")

	s1, err := session.New(cfg)
	require.NoError(t, err)
	_, err = s1.Analyze(context.Background())
	require.NoError(t, err)

	// The second session serves the parse from the cache; the diagnostics
	// must come with it.
	s2, err := session.New(cfg)
	require.NoError(t, err)
	program, err := s2.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, host.Reads("src/a.mod"))

	a, ok := program.Analysis("src/a.mod")
	require.True(t, ok)
	require.Len(t, a.Diagnostics, 1)
	assert.Equal(t, "AG2001", a.Diagnostics[0].Code)
}
