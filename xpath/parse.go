package xpath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax reports a path expression outside the documented subset.
var ErrSyntax = errors.New("invalid path expression")

// Parse parses a path expression. The result is immutable; Eval never
// mutates it.
func Parse(s string) (*Path, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSyntax)
	}
	p := &Path{raw: raw}
	sc := &scanner{s: s}
	// a single leading / is tolerated (absolute form)
	sc.eat('/')
	for {
		deep := sc.eat('/')
		if sc.done() {
			return nil, fmt.Errorf("%w: trailing / in %q", ErrSyntax, raw)
		}
		if sc.eat('@') {
			attr := sc.name()
			if attr == "" || !sc.done() {
				return nil, fmt.Errorf("%w: attribute selector must end the path in %q", ErrSyntax, raw)
			}
			if deep {
				return nil, fmt.Errorf("%w: //@ selector in %q", ErrSyntax, raw)
			}
			if len(p.Steps) == 0 {
				return nil, fmt.Errorf("%w: attribute selector without steps in %q", ErrSyntax, raw)
			}
			p.Attr = attr
			return p, nil
		}
		name := sc.name()
		if name == "" {
			return nil, fmt.Errorf("%w: missing step name at offset %d in %q", ErrSyntax, sc.i, raw)
		}
		if name == "text" && sc.eatStr("()") {
			if !sc.done() {
				return nil, fmt.Errorf("%w: text() must end the path in %q", ErrSyntax, raw)
			}
			if deep || len(p.Steps) == 0 {
				return nil, fmt.Errorf("%w: text() selector without steps in %q", ErrSyntax, raw)
			}
			p.Text = true
			return p, nil
		}
		step := &Step{Name: name, Deep: deep}
		if sc.eat('[') {
			pred, err := parsePred(sc, raw)
			if err != nil {
				return nil, err
			}
			step.Pred = pred
		}
		p.Steps = append(p.Steps, step)
		if sc.done() {
			return p, nil
		}
		if !sc.eat('/') {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrSyntax, sc.s[sc.i], sc.i, raw)
		}
	}
}

// MustParse parses a path expression, panicking on error. Test helper.
func MustParse(s string) *Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parsePred(sc *scanner, raw string) (*Pred, error) {
	pred := &Pred{}
	for {
		sc.spaces()
		clause, err := parseClause(sc, raw)
		if err != nil {
			return nil, err
		}
		pred.Clauses = append(pred.Clauses, clause)
		sc.spaces()
		if sc.eat(']') {
			return pred, nil
		}
		if sc.eatWord("or") {
			continue
		}
		if sc.eatWord("and") {
			// only the documented disjunction is supported
			return nil, fmt.Errorf("%w: \"and\" predicates are not supported in %q", ErrSyntax, raw)
		}
		return nil, fmt.Errorf("%w: expected ] or \"or\" at offset %d in %q", ErrSyntax, sc.i, raw)
	}
}

func parseClause(sc *scanner, raw string) (Clause, error) {
	var c Clause
	if sc.eat('@') {
		c.Attr = sc.name()
		if c.Attr == "" {
			return c, fmt.Errorf("%w: missing attribute name at offset %d in %q", ErrSyntax, sc.i, raw)
		}
	} else {
		c.Child = sc.name()
		if c.Child == "" {
			return c, fmt.Errorf("%w: missing predicate name at offset %d in %q", ErrSyntax, sc.i, raw)
		}
		if c.Child == "text" || strings.Contains(c.Child, "(") {
			return c, fmt.Errorf("%w: unsupported predicate form in %q", ErrSyntax, raw)
		}
	}
	sc.spaces()
	if !sc.eat('=') {
		if c.Attr != "" {
			// bare [@attr] presence test
			return c, nil
		}
		return c, fmt.Errorf("%w: child predicate requires = at offset %d in %q", ErrSyntax, sc.i, raw)
	}
	sc.spaces()
	v, err := sc.quoted()
	if err != nil {
		return c, fmt.Errorf("%w: %v in %q", ErrSyntax, err, raw)
	}
	c.Value = v
	c.HasValue = true
	return c, nil
}

type scanner struct {
	s string
	i int
}

func (sc *scanner) done() bool {
	return sc.i >= len(sc.s)
}

func (sc *scanner) eat(b byte) bool {
	if sc.done() || sc.s[sc.i] != b {
		return false
	}
	sc.i++
	return true
}

func (sc *scanner) eatStr(s string) bool {
	if !strings.HasPrefix(sc.s[sc.i:], s) {
		return false
	}
	sc.i += len(s)
	return true
}

// eatWord consumes a keyword followed by at least one space or a
// closing bracket boundary.
func (sc *scanner) eatWord(w string) bool {
	rest := sc.s[sc.i:]
	if !strings.HasPrefix(rest, w) {
		return false
	}
	after := rest[len(w):]
	if after == "" || after[0] == ' ' {
		sc.i += len(w)
		sc.spaces()
		return true
	}
	return false
}

func (sc *scanner) spaces() {
	for !sc.done() && sc.s[sc.i] == ' ' {
		sc.i++
	}
}

// name consumes a tag or attribute name: letters, digits, '_', '-',
// '.' and ':'.
func (sc *scanner) name() string {
	start := sc.i
	for !sc.done() {
		b := sc.s[sc.i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '_', b == '-', b == '.', b == ':':
		default:
			return sc.s[start:sc.i]
		}
		sc.i++
	}
	return sc.s[start:]
}

func (sc *scanner) quoted() (string, error) {
	if sc.done() {
		return "", errors.New("missing quoted value")
	}
	q := sc.s[sc.i]
	if q != '"' && q != '\'' {
		return "", fmt.Errorf("expected quoted value at offset %d", sc.i)
	}
	sc.i++
	start := sc.i
	for !sc.done() {
		if sc.s[sc.i] == q {
			v := sc.s[start:sc.i]
			sc.i++
			return v, nil
		}
		sc.i++
	}
	return "", errors.New("unterminated quoted value")
}
