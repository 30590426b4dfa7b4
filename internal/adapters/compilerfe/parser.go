package compilerfe

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/benjaminforras/analog/internal/core/domain"
)

// annotationKinds are the class annotations the dialect understands.
var annotationKinds = map[string]domain.AnnotationKind{
	"Component":  domain.KindComponent,
	"Directive":  domain.KindDirective,
	"Injectable": domain.KindInjectable,
	"Pipe":       domain.KindPipe,
}

// parseModule parses module text into imports and annotated class
// declarations. Parse failures surface as diagnostics; the returned module is
// always usable.
func parseModule(id, text string, version int64) (*domain.Module, []domain.Diagnostic) {
	m := &domain.Module{
		ID:      domain.NewInternedString(domain.NormalizeID(id)),
		Version: version,
		Text:    text,
	}
	var diags []domain.Diagnostic

	m.Imports = parseImports(text)

	pos := 0
	for {
		at := indexAnnotation(text, pos)
		if at < 0 {
			break
		}
		decl, next, diag := parseAnnotatedClass(id, text, at)
		pos = next
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}
		m.Classes = append(m.Classes, decl)
	}

	return m, diags
}

// parseImports extracts ordered import specifiers as written.
func parseImports(text string) []string {
	var imports []string
	for line := range strings.Lines(text) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}
		rest := trimmed
		if idx := strings.Index(trimmed, " from "); idx >= 0 {
			rest = trimmed[idx+len(" from "):]
		} else {
			rest = strings.TrimPrefix(trimmed, "import ")
		}
		if spec, ok := unquote(strings.TrimSuffix(strings.TrimSpace(rest), ";")); ok {
			imports = append(imports, spec)
		}
	}
	return imports
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q == '\'' || q == '"') && s[len(s)-1] == q {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// indexAnnotation finds the next line-leading '@' at or after pos.
func indexAnnotation(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		// Only accept annotations at the start of a (possibly indented) line.
		j := i - 1
		for j >= 0 && (text[j] == ' ' || text[j] == '\t') {
			j--
		}
		if j < 0 || text[j] == '\n' {
			return i
		}
	}
	return -1
}

// parseAnnotatedClass parses one @Kind({...}) block and the class declaration
// that follows it. It returns the position to resume scanning from.
func parseAnnotatedClass(file, text string, at int) (domain.ClassDecl, int, *domain.Diagnostic) {
	line := lineAt(text, at)
	nameEnd := at + 1
	for nameEnd < len(text) && isIdentByte(text[nameEnd]) {
		nameEnd++
	}
	kindName := text[at+1 : nameEnd]
	kind, known := annotationKinds[kindName]
	if !known {
		d := domain.Error(file, "AG1001", "unknown annotation @"+kindName)
		d.Line = line
		return domain.ClassDecl{}, nameEnd, &d
	}

	open := nameEnd
	for open < len(text) && (text[open] == ' ' || text[open] == '\t') {
		open++
	}
	if open >= len(text) || text[open] != '(' {
		d := domain.Error(file, "AG1002", "annotation @"+kindName+" is not invoked")
		d.Line = line
		return domain.ClassDecl{}, nameEnd, &d
	}
	closing := matchDelim(text, open, '(', ')')
	if closing < 0 {
		d := domain.Error(file, "AG1003", "unterminated annotation @"+kindName)
		d.Line = line
		return domain.ClassDecl{}, len(text), &d
	}

	fields, err := parseAnnotationLiteral(text[open+1 : closing])
	if err != nil {
		d := domain.Error(file, "AG1004", "malformed @"+kindName+" metadata: "+err.Error())
		d.Line = line
		return domain.ClassDecl{}, closing + 1, &d
	}

	name, bodyStart := classAfter(text, closing+1)
	if name == "" {
		d := domain.Error(file, "AG1005", "annotation @"+kindName+" is not attached to a class")
		d.Line = line
		return domain.ClassDecl{}, closing + 1, &d
	}
	bodyEnd := matchDelim(text, bodyStart, '{', '}')
	if bodyEnd < 0 {
		d := domain.Error(file, "AG1006", "unterminated body of class "+name)
		d.Line = line
		return domain.ClassDecl{}, len(text), &d
	}
	body := text[bodyStart+1 : bodyEnd]

	surface, diag := surfaceFromFields(file, line, kind, name, fields)
	if diag != nil {
		return domain.ClassDecl{}, bodyEnd + 1, diag
	}

	return domain.ClassDecl{
		Name:            domain.NewInternedString(name),
		Surface:         surface,
		BodyFingerprint: xxhash.Sum64String(body),
	}, bodyEnd + 1, nil
}

// surfaceFromFields maps the annotation literal onto a ClassSurface.
func surfaceFromFields(file string, line int, kind domain.AnnotationKind, class string, fields map[string]any) (domain.ClassSurface, *domain.Diagnostic) {
	s := domain.ClassSurface{Kind: kind}
	s.Selector, _ = fields["selector"].(string)
	s.Template, _ = fields["template"].(string)
	s.TemplateRef, _ = fields["templateUrl"].(string)
	if v, ok := fields["inputs"].([]string); ok {
		s.Inputs = v
	}
	if v, ok := fields["outputs"].([]string); ok {
		s.Outputs = v
	}
	if v, ok := fields["host"].(map[string]string); ok {
		s.HostHooks = v
	}
	if v, ok := fields["styleUrls"].([]string); ok {
		s.StyleRefs = v
	}

	if kind == domain.KindComponent {
		if s.Selector == "" {
			d := domain.Error(file, "AG2001", "component "+class+" has no selector")
			d.Line = line
			return s, &d
		}
		if s.Template == "" && s.TemplateRef == "" {
			d := domain.Error(file, "AG2002", "component "+class+" has neither template nor templateUrl")
			d.Line = line
			return s, &d
		}
	}
	if kind == domain.KindDirective && s.Selector == "" {
		d := domain.Error(file, "AG2003", "directive "+class+" has no selector")
		d.Line = line
		return s, &d
	}
	return s, nil
}

// classAfter locates "export class Name {" (export optional) after pos and
// returns the class name and the index of the opening body brace.
func classAfter(text string, pos int) (string, int) {
	rest := text[pos:]
	idx := strings.Index(rest, "class ")
	if idx < 0 {
		return "", -1
	}
	// Reject when anything other than whitespace/export separates the
	// annotation from the class keyword.
	between := strings.TrimSpace(rest[:idx])
	if between != "" && between != "export" && between != "export abstract" {
		return "", -1
	}
	nameStart := pos + idx + len("class ")
	nameEnd := nameStart
	for nameEnd < len(text) && isIdentByte(text[nameEnd]) {
		nameEnd++
	}
	name := text[nameStart:nameEnd]
	if name == "" {
		return "", -1
	}
	brace := strings.IndexByte(text[nameEnd:], '{')
	if brace < 0 {
		return "", -1
	}
	return name, nameEnd + brace
}

// matchDelim returns the index of the delimiter closing the one at open,
// tracking nesting and string literals.
func matchDelim(text string, open int, openc, closec byte) int {
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case openc:
			depth++
		case closec:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, pos int) int {
	return strings.Count(text[:pos], "\n") + 1
}
