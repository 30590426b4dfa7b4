package compilerfe

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/benjaminforras/analog/internal/core/domain"
)

// errClassVanished reports a hot-patch request for a class the module no
// longer declares. This is a programmer error: eligibility must be decided
// before requesting a patch.
var errClassVanished = zerr.New("class not present in module")

// emitModule generates a registration module: the original imports followed
// by one defineClass call per annotated class. Output is deterministic for a
// fixed module and resource set.
func emitModule(m *domain.Module, opts domain.CompilerOptions, resources map[string]string) (string, string, []domain.Diagnostic, error) {
	var b strings.Builder
	b.WriteString("// Code generated by analog. DO NOT EDIT.\n")

	for _, imp := range m.Imports {
		fmt.Fprintf(&b, "import %s;\n", strconv.Quote(imp))
	}
	if len(m.Imports) > 0 {
		b.WriteByte('\n')
	}

	var diags []domain.Diagnostic
	for _, c := range m.Classes {
		writeClassRegistration(&b, c, resources)
	}
	if len(m.Classes) == 0 {
		diags = append(diags, domain.Warning(m.ID.String(), "AG4001", "module declares no annotated classes"))
	}

	sourceMap := ""
	if opts.SourceMap {
		sourceMap = fmt.Sprintf(`{"version":3,"file":%s,"sources":[%s],"mappings":""}`,
			strconv.Quote(outputName(m)), strconv.Quote(m.ID.String()))
	}
	return b.String(), sourceMap, diags, nil
}

func writeClassRegistration(b *strings.Builder, c domain.ClassDecl, resources map[string]string) {
	name := c.Name.String()
	s := c.Surface

	fmt.Fprintf(b, "const %s = defineClass({\n", name)
	fmt.Fprintf(b, "  kind: %s,\n", strconv.Quote(string(s.Kind)))
	if s.Selector != "" {
		fmt.Fprintf(b, "  selector: %s,\n", strconv.Quote(s.Selector))
	}
	writeStringList(b, "inputs", s.Inputs)
	writeStringList(b, "outputs", s.Outputs)
	if len(s.HostHooks) > 0 {
		b.WriteString("  host: {")
		for i, k := range slices.Sorted(maps.Keys(s.HostHooks)) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: %s", strconv.Quote(k), strconv.Quote(s.HostHooks[k]))
		}
		b.WriteString("},\n")
	}
	if template, ok := classTemplate(c, resources); ok {
		fmt.Fprintf(b, "  template: %s,\n", strconv.Quote(template))
	}
	if styles := classStyles(c, resources); len(styles) > 0 {
		writeStringList(b, "styles", styles)
	}
	fmt.Fprintf(b, "  fingerprint: %s,\n", strconv.Quote(fingerprintHex(c)))
	b.WriteString("});\n")
	fmt.Fprintf(b, "registerClass(%s, %s);\n", strconv.Quote(name), name)
	fmt.Fprintf(b, "export { %s };\n", name)
}

func writeStringList(b *strings.Builder, field string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s: [", field)
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteString("],\n")
}

// classTemplate returns the effective template text: inline wins, external
// references resolve through the inlined resource set.
func classTemplate(c domain.ClassDecl, resources map[string]string) (string, bool) {
	if c.Surface.Template != "" {
		return c.Surface.Template, true
	}
	if c.Surface.TemplateRef != "" {
		if text, ok := resources[c.Surface.TemplateRef]; ok {
			return text, true
		}
	}
	return "", false
}

func classStyles(c domain.ClassDecl, resources map[string]string) []string {
	var styles []string
	for _, ref := range c.Surface.StyleRefs {
		if text, ok := resources[ref]; ok {
			styles = append(styles, text)
		}
	}
	return styles
}

// emitHotPatch generates an isolated patch module replacing the class's
// behavior in a running instance. The patch ships the class's current body
// source; applying it swaps method implementations and leaves instance state
// untouched.
func emitHotPatch(m *domain.Module, class domain.ClassDecl) (string, error) {
	name := class.Name.String()
	body, ok := classBody(m.Text, name)
	if !ok {
		return "", zerr.With(errClassVanished, "class", name)
	}

	var b strings.Builder
	b.WriteString("// Code generated by analog. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "export default function hotUpdate(registry) {\n")
	fmt.Fprintf(&b, "  registry.patchClass(%s, %s, class {%s});\n",
		strconv.Quote(name), strconv.Quote(fingerprintHex(class)), body)
	b.WriteString("}\n")
	return b.String(), nil
}

// classBody extracts the raw body of a named class from module text.
func classBody(text, name string) (string, bool) {
	idx := strings.Index(text, "class "+name)
	if idx < 0 {
		return "", false
	}
	brace := strings.IndexByte(text[idx:], '{')
	if brace < 0 {
		return "", false
	}
	open := idx + brace
	closing := matchDelim(text, open, '{', '}')
	if closing < 0 {
		return "", false
	}
	return text[open+1 : closing], true
}

func fingerprintHex(c domain.ClassDecl) string {
	return strconv.FormatUint(c.BodyFingerprint, 16)
}

// outputName maps a source id to its generated file name.
func outputName(m *domain.Module) string {
	id := m.ID.String()
	if i := strings.LastIndexByte(id, '.'); i > 0 {
		id = id[:i]
	}
	return id + ".js"
}
