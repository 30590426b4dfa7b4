package compilerfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminforras/analog/internal/core/domain"
)

const componentSource = `import './shared.mod';
import { Dep } from './dep.mod';

@Component({
  selector: 'app-root',
  template: '<h1>{{title}}</h1>',
  inputs: ['title'],
  outputs: ['closed'],
  host: {'(click)': 'onClick()'},
})
export class AppComponent {
  title = 'hello';
  onClick() {}
}
`

func TestParseModule_Component(t *testing.T) {
	m, diags := parseModule("src/app.mod", componentSource, 1)
	require.Empty(t, diags)

	assert.Equal(t, "src/app.mod", m.ID.String())
	assert.Equal(t, int64(1), m.Version)
	assert.Equal(t, []string{"./shared.mod", "./dep.mod"}, m.Imports)

	require.Len(t, m.Classes, 1)
	c := m.Classes[0]
	assert.Equal(t, "AppComponent", c.Name.String())
	assert.Equal(t, domain.KindComponent, c.Surface.Kind)
	assert.Equal(t, "app-root", c.Surface.Selector)
	assert.Equal(t, "<h1>{{title}}</h1>", c.Surface.Template)
	assert.Equal(t, []string{"title"}, c.Surface.Inputs)
	assert.Equal(t, []string{"closed"}, c.Surface.Outputs)
	assert.Equal(t, map[string]string{"(click)": "onClick()"}, c.Surface.HostHooks)
	assert.NotZero(t, c.BodyFingerprint)
}

func TestParseModule_MultipleClasses(t *testing.T) {
	src := `@Injectable({})
export class DataService {
  load() {}
}

@Pipe({ name: 'upper' })
export class UpperPipe {
  transform(v) { return v; }
}
`
	m, diags := parseModule("src/lib.mod", src, 1)
	require.Empty(t, diags)
	require.Len(t, m.Classes, 2)
	assert.Equal(t, domain.KindInjectable, m.Classes[0].Surface.Kind)
	assert.Equal(t, domain.KindPipe, m.Classes[1].Surface.Kind)
}

func TestParseModule_TemplateRefAndStyles(t *testing.T) {
	src := `@Component({
  selector: 'app-card',
  templateUrl: './card.html',
  styleUrls: ['./card.css', './theme.css'],
})
export class CardComponent {}
`
	m, diags := parseModule("src/card.mod", src, 1)
	require.Empty(t, diags)
	require.Len(t, m.Classes, 1)
	assert.Equal(t, "./card.html", m.Classes[0].Surface.TemplateRef)
	assert.Equal(t, []string{"./card.css", "./theme.css"}, m.Classes[0].Surface.StyleRefs)
}

func TestParseModule_BodyFingerprintTracksBodyOnly(t *testing.T) {
	a := `@Component({ selector: 'x', template: 't' })
export class C { f() { return 1; } }
`
	b := `@Component({ selector: 'x', template: 't' })
export class C { f() { return 2; } }
`
	ma, _ := parseModule("a.mod", a, 1)
	mb, _ := parseModule("a.mod", b, 2)
	require.Len(t, ma.Classes, 1)
	require.Len(t, mb.Classes, 1)
	assert.NotEqual(t, ma.Classes[0].BodyFingerprint, mb.Classes[0].BodyFingerprint)
	assert.True(t, ma.Classes[0].Surface.Equal(mb.Classes[0].Surface))
}

func TestParseModule_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"unknown annotation", "@Widget({})\nexport class C {}\n", "AG1001"},
		{"annotation not invoked", "@Component\nexport class C {}\n", "AG1002"},
		{"unterminated annotation", "@Component({ selector: 'x'\n", "AG1003"},
		{"malformed metadata", "@Component({ selector: })\nexport class C {}\n", "AG1004"},
		{"no class follows", "@Component({ selector: 'x', template: 't' })\nconst x = 1;\n", "AG1005"},
		{"unterminated body", "@Component({ selector: 'x', template: 't' })\nexport class C {\n", "AG1006"},
		{"component without selector", "@Component({ template: 't' })\nexport class C {}\n", "AG2001"},
		{"component without template", "@Component({ selector: 'x' })\nexport class C {}\n", "AG2002"},
		{"directive without selector", "@Directive({})\nexport class D {}\n", "AG2003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := parseModule("a.mod", tt.src, 1)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.code, diags[0].Code)
			assert.Equal(t, domain.SeverityError, diags[0].Severity)
			assert.Empty(t, m.Classes)
		})
	}
}

func TestParseModule_RecoverAfterBadAnnotation(t *testing.T) {
	src := `@Widget({})
export class Bad {}

@Injectable({})
export class Good {}
`
	m, diags := parseModule("a.mod", src, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, "AG1001", diags[0].Code)
	require.Len(t, m.Classes, 1)
	assert.Equal(t, "Good", m.Classes[0].Name.String())
}

func TestIndexAnnotation_IgnoresMidLineAt(t *testing.T) {
	src := "const email = 'a@b.c';\n@Injectable({})\nexport class S {}\n"
	at := indexAnnotation(src, 0)
	require.GreaterOrEqual(t, at, 0)
	assert.Equal(t, byte('@'), src[at])
	assert.Equal(t, "@Injectable", src[at:at+len("@Injectable")])
}

func TestMatchDelim_SkipsStringLiterals(t *testing.T) {
	src := `({ selector: 'a)b', template: "}{" })`
	closing := matchDelim(src, 0, '(', ')')
	require.Equal(t, len(src)-1, closing)
}

func TestClassAfter_RejectsInterveningCode(t *testing.T) {
	name, _ := classAfter("\nconst x = 1;\nexport class C {}", 0)
	assert.Empty(t, name)

	name, brace := classAfter("\nexport class C {}", 0)
	assert.Equal(t, "C", name)
	assert.Equal(t, byte('{'), "\nexport class C {}"[brace])
}
