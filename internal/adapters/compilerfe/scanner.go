package compilerfe

import (
	"strings"

	"go.trai.ch/zerr"
)

// errLiteral reports a malformed annotation object literal.
var errLiteral = zerr.New("malformed annotation literal")

// scanner is a minimal cursor over annotation literal text. The dialect only
// allows string literals, string arrays, string-to-string objects and bare
// words as values, which keeps the grammar flat.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		c := s.src[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			s.pos++
			continue
		}
		// Line comments inside literals are tolerated.
		if c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
			for !s.eof() && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		return
	}
}

func (s *scanner) expect(c byte) error {
	s.skipSpace()
	if s.peek() != c {
		return zerr.With(errLiteral, "expected", string(c))
	}
	s.pos++
	return nil
}

// parseString consumes a single- or double-quoted string.
func (s *scanner) parseString() (string, error) {
	s.skipSpace()
	quote := s.peek()
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", zerr.With(errLiteral, "expected", "string")
	}
	s.pos++
	var b strings.Builder
	for !s.eof() {
		c := s.src[s.pos]
		if c == '\\' && s.pos+1 < len(s.src) {
			b.WriteByte(s.src[s.pos+1])
			s.pos += 2
			continue
		}
		if c == quote {
			s.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		s.pos++
	}
	return "", zerr.With(errLiteral, "expected", "closing quote")
}

// parseIdent consumes a bare word (identifier, number, true/false).
func (s *scanner) parseIdent() string {
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		if c == ',' || c == '}' || c == ']' || c == ':' || c == ' ' || c == '\n' || c == '\r' || c == '\t' {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

// parseStringArray consumes ['a', 'b'].
func (s *scanner) parseStringArray() ([]string, error) {
	if err := s.expect('['); err != nil {
		return nil, err
	}
	var out []string
	for {
		s.skipSpace()
		if s.peek() == ']' {
			s.pos++
			return out, nil
		}
		v, err := s.parseString()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// parseStringMap consumes { '(click)': 'onClick()' }.
func (s *scanner) parseStringMap() (map[string]string, error) {
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for {
		s.skipSpace()
		if s.peek() == '}' {
			s.pos++
			return out, nil
		}
		k, err := s.parseKey()
		if err != nil {
			return nil, err
		}
		if err := s.expect(':'); err != nil {
			return nil, err
		}
		v, err := s.parseString()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
}

// parseKey consumes a property key, quoted or bare.
func (s *scanner) parseKey() (string, error) {
	s.skipSpace()
	if c := s.peek(); c == '\'' || c == '"' {
		return s.parseString()
	}
	k := s.parseIdent()
	if k == "" {
		return "", zerr.With(errLiteral, "expected", "key")
	}
	return k, nil
}

// parseValue consumes any supported value form.
func (s *scanner) parseValue() (any, error) {
	s.skipSpace()
	switch c := s.peek(); {
	case c == '\'' || c == '"' || c == '`':
		return s.parseString()
	case c == '[':
		return s.parseStringArray()
	case c == '{':
		return s.parseStringMap()
	default:
		if w := s.parseIdent(); w != "" {
			return w, nil
		}
		return nil, errLiteral
	}
}

// parseAnnotationLiteral parses the object literal between the annotation's
// parentheses into a flat field map.
func parseAnnotationLiteral(src string) (map[string]any, error) {
	s := &scanner{src: src}
	s.skipSpace()
	if s.eof() {
		// @Injectable() with no literal is legal.
		return map[string]any{}, nil
	}
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	for {
		s.skipSpace()
		if s.eof() {
			return nil, zerr.With(errLiteral, "expected", "}")
		}
		if s.peek() == '}' {
			s.pos++
			return fields, nil
		}
		k, err := s.parseKey()
		if err != nil {
			return nil, err
		}
		if err := s.expect(':'); err != nil {
			return nil, err
		}
		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		fields[k] = v
	}
}
