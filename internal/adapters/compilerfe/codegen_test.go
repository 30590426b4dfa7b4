package compilerfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminforras/analog/internal/core/domain"
)

func parsed(t *testing.T, id, src string) *domain.Module {
	t.Helper()
	m, diags := parseModule(id, src, 1)
	require.Empty(t, diags)
	return m
}

func TestEmitModule_Registration(t *testing.T) {
	m := parsed(t, "src/app.mod", `import './dep.mod';

@Component({ selector: 'app-root', template: '<h1></h1>', inputs: ['title'] })
export class AppComponent {
  title = '';
}
`)
	content, sourceMap, diags, err := emitModule(m, domain.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, sourceMap)

	assert.Contains(t, content, "// Code generated by analog. DO NOT EDIT.")
	assert.Contains(t, content, `import "./dep.mod";`)
	assert.Contains(t, content, "const AppComponent = defineClass({")
	assert.Contains(t, content, `selector: "app-root"`)
	assert.Contains(t, content, `inputs: ["title"]`)
	assert.Contains(t, content, `registerClass("AppComponent", AppComponent);`)
	assert.Contains(t, content, "export { AppComponent };")
}

func TestEmitModule_Deterministic(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Directive({
  selector: '[appFocus]',
  host: {'(focus)': 'onFocus()', '(blur)': 'onBlur()', '(click)': 'onClick()'},
})
export class FocusDirective {}
`)
	first, _, _, err := emitModule(m, domain.DefaultOptions(), nil)
	require.NoError(t, err)
	for range 10 {
		again, _, _, err := emitModule(m, domain.DefaultOptions(), nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEmitModule_InlinesExternalResources(t *testing.T) {
	m := parsed(t, "src/card.mod", `@Component({
  selector: 'app-card',
  templateUrl: './card.html',
  styleUrls: ['./card.css'],
})
export class CardComponent {}
`)
	resources := map[string]string{
		"./card.html": "<div>card</div>",
		"./card.css":  ".card { color: red }",
	}
	content, _, diags, err := emitModule(m, domain.DefaultOptions(), resources)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Contains(t, content, `template: "<div>card</div>"`)
	assert.Contains(t, content, `styles: [".card { color: red }"]`)
}

func TestEmitModule_SourceMap(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Injectable({})
export class S {}
`)
	opts := domain.DefaultOptions()
	opts.SourceMap = true

	_, sourceMap, _, err := emitModule(m, opts, nil)
	require.NoError(t, err)
	assert.Contains(t, sourceMap, `"version":3`)
	assert.Contains(t, sourceMap, `"src/a.js"`)
	assert.Contains(t, sourceMap, `"src/a.mod"`)
}

func TestEmitModule_WarnsOnEmptyModule(t *testing.T) {
	m := parsed(t, "src/empty.mod", "const x = 1;\n")
	_, _, diags, err := emitModule(m, domain.DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "AG4001", diags[0].Code)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
}

func TestEmitHotPatch(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Component({ selector: 'x', template: 't' })
export class C {
  greet() { return 'hi'; }
}
`)
	require.Len(t, m.Classes, 1)

	patch, err := emitHotPatch(m, m.Classes[0])
	require.NoError(t, err)
	assert.Contains(t, patch, "export default function hotUpdate(registry)")
	assert.Contains(t, patch, `registry.patchClass("C",`)
	assert.Contains(t, patch, "greet() { return 'hi'; }")
}

func TestEmitHotPatch_ClassVanished(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Component({ selector: 'x', template: 't' })
export class C {}
`)
	ghost := domain.ClassDecl{Name: domain.NewInternedString("Gone")}
	_, err := emitHotPatch(m, ghost)
	require.ErrorIs(t, err, errClassVanished)
}

func TestFrontend_AnalyzeModule_MissingTemplate(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Component({ selector: 'x', templateUrl: './missing.html' })
export class C {}
`)
	resources, diags := New().AnalyzeModule(m, stubHost{})
	assert.Empty(t, resources)
	require.Len(t, diags, 1)
	assert.Equal(t, "AG3001", diags[0].Code)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
}

func TestFrontend_AnalyzeModule_MissingStyleIsWarning(t *testing.T) {
	m := parsed(t, "src/a.mod", `@Component({ selector: 'x', template: 't', styleUrls: ['./missing.css'] })
export class C {}
`)
	_, diags := New().AnalyzeModule(m, stubHost{})
	require.Len(t, diags, 1)
	assert.Equal(t, "AG3002", diags[0].Code)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
}

// stubHost is a ports.Host with no files.
type stubHost struct{}

func (stubHost) ReadFile(string) (string, bool) { return "", false }
func (stubHost) FileExists(string) bool         { return false }
func (stubHost) DefaultLibFileName() string     { return "lib.analog.d.mod" }

func (stubHost) ResolveModuleName(string, string) (string, bool) { return "", false }
