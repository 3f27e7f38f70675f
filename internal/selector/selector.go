// internal/selector/selector.go

// Package selector parses CSS-style selector groups ("ul > li.item, .row")
// into a small AST consumed by the dom matcher. Only selectors are handled;
// there are no declarations, at-rules or stylesheets here.
package selector

import (
	"fmt"
	"strings"
)

// Group represents a comma-separated list of complex selectors. An element
// matches a group when it matches any member.
type Group []Complex

// Complex represents a sequence of simple selectors joined by combinators
// (e.g., "div > p").
type Complex struct {
	Parts []Part
}

// Part pairs a simple selector with the combinator that precedes it.
type Part struct {
	Combinator Combinator
	Simple     Simple
}

// Simple represents the core components of one compound selector
// (tag, ID, classes, attributes).
type Simple struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   []Attr
}

// Attr represents an attribute selector like `[href]` or `[target="_blank"]`.
type Attr struct {
	Name  string
	Op    string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value string
}

// Combinator defines the relationship between consecutive simple selectors.
type Combinator int

const (
	CombinatorNone            Combinator = iota // No combinator (first selector)
	CombinatorDescendant                        // Space
	CombinatorChild                             // >
	CombinatorAdjacentSibling                   // +
	CombinatorGeneralSibling                    // ~
)

// IsValid checks if the simple selector has at least one component.
func (s Simple) IsValid() bool {
	return s.Tag != "" || s.ID != "" || len(s.Classes) > 0 || len(s.Attrs) > 0
}

// String reassembles the simple selector in canonical form.
func (s Simple) String() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	for _, a := range s.Attrs {
		b.WriteByte('[')
		b.WriteString(a.Name)
		if a.Op != "" {
			b.WriteString(a.Op)
			b.WriteByte('"')
			b.WriteString(a.Value)
			b.WriteByte('"')
		}
		b.WriteByte(']')
	}
	return b.String()
}

// String reassembles the complex selector, spelling descendant combinators as
// single spaces.
func (c Complex) String() string {
	var b strings.Builder
	for i, p := range c.Parts {
		if i > 0 {
			switch p.Combinator {
			case CombinatorChild:
				b.WriteString(" > ")
			case CombinatorAdjacentSibling:
				b.WriteString(" + ")
			case CombinatorGeneralSibling:
				b.WriteString(" ~ ")
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString(p.Simple.String())
	}
	return b.String()
}

// String reassembles the full group.
func (g Group) String() string {
	parts := make([]string, len(g))
	for i, c := range g {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Parse analyzes a standalone selector group. Unlike a stylesheet parser it is
// strict: an empty group, a malformed simple selector or trailing garbage all
// return an error.
func Parse(input string) (Group, error) {
	p := &parser{input: input}
	group, err := p.parseGroup()
	if err != nil {
		return nil, fmt.Errorf("parse selector %q: %w", input, err)
	}
	p.consumeWhitespace()
	if !p.eof() {
		return nil, fmt.Errorf("parse selector %q: unexpected %q at offset %d", input, p.currentChar(), p.pos)
	}
	return group, nil
}

// parser holds the byte-lexer state.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseGroup() (Group, error) {
	var group Group
	for {
		complex, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		group = append(group, complex)

		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.currentChar() != ',' {
			break
		}
		p.consumeChar()
	}
	if len(group) == 0 {
		return nil, fmt.Errorf("empty selector group")
	}
	return group, nil
}

func (p *parser) parseComplex() (Complex, error) {
	var complex Complex
	combinator := CombinatorNone

	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == ',' {
			break
		}

		simple, err := p.parseSimple()
		if err != nil {
			return Complex{}, err
		}
		complex.Parts = append(complex.Parts, Part{Combinator: combinator, Simple: simple})

		// Whitespace after a simple selector implies a descendant combinator
		// unless an explicit combinator follows.
		sawSpace := p.consumeWhitespace()
		if p.eof() || p.currentChar() == ',' {
			break
		}

		switch p.currentChar() {
		case '>':
			combinator = CombinatorChild
			p.consumeChar()
		case '+':
			combinator = CombinatorAdjacentSibling
			p.consumeChar()
		case '~':
			combinator = CombinatorGeneralSibling
			p.consumeChar()
		default:
			if !sawSpace {
				return Complex{}, fmt.Errorf("unexpected %q at offset %d", p.currentChar(), p.pos)
			}
			combinator = CombinatorDescendant
			continue
		}

		// An explicit combinator must be followed by another simple selector.
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == ',' {
			return Complex{}, fmt.Errorf("selector ends with a combinator")
		}
	}

	if len(complex.Parts) == 0 {
		return Complex{}, fmt.Errorf("empty selector")
	}
	return complex, nil
}

// parseSimple parses a single compound selector (e.g., div#id.class1.class2).
func (p *parser) parseSimple() (Simple, error) {
	simple := Simple{}

	// Universal or tag name.
	if !p.eof() {
		ch := p.currentChar()
		if ch == '*' {
			p.consumeChar()
			simple.Tag = "*"
		} else if isIdentStart(ch) {
			simple.Tag = strings.ToLower(p.parseIdentifier())
		}
	}

	// IDs, classes and attributes.
loop:
	for !p.eof() {
		switch p.currentChar() {
		case '#':
			p.consumeChar()
			id := p.parseIdentifier()
			if id == "" {
				return Simple{}, fmt.Errorf("expected identifier after '#' at offset %d", p.pos)
			}
			simple.ID = id
		case '.':
			p.consumeChar()
			class := p.parseIdentifier()
			if class == "" {
				return Simple{}, fmt.Errorf("expected identifier after '.' at offset %d", p.pos)
			}
			simple.Classes = append(simple.Classes, class)
		case '[':
			p.consumeChar()
			attr, err := p.parseAttr()
			if err != nil {
				return Simple{}, err
			}
			simple.Attrs = append(simple.Attrs, attr)
		default:
			break loop
		}
	}

	if !simple.IsValid() && simple.Tag != "*" {
		return Simple{}, fmt.Errorf("invalid simple selector at offset %d", p.pos)
	}
	return simple, nil
}

// parseAttr parses the contents of `[...]` for an attribute selector. The
// opening '[' has already been consumed; this consumes through the ']'.
// Attribute names are lowercased to match x/net/html's parsed attributes.
func (p *parser) parseAttr() (Attr, error) {
	p.consumeWhitespace()
	name := strings.ToLower(p.parseIdentifier())
	if name == "" {
		return Attr{}, fmt.Errorf("expected attribute name at offset %d", p.pos)
	}
	p.consumeWhitespace()

	if p.eof() {
		return Attr{}, fmt.Errorf("unexpected end of input in attribute selector")
	}

	// A bare `[disabled]` presence selector.
	if p.currentChar() == ']' {
		p.consumeChar()
		return Attr{Name: name}, nil
	}

	var op strings.Builder
	op.WriteByte(p.consumeChar())

	// Two-character operators like `~=`, `|=`, `^=`, `$=`, `*=`.
	if op.String() != "=" {
		if p.eof() || p.currentChar() != '=' {
			return Attr{}, fmt.Errorf("invalid attribute operator at offset %d", p.pos)
		}
		op.WriteByte(p.consumeChar())
	}
	switch op.String() {
	case "=", "~=", "|=", "^=", "$=", "*=":
	default:
		return Attr{}, fmt.Errorf("invalid attribute operator %q", op.String())
	}

	p.consumeWhitespace()

	var value string
	if !p.eof() && (p.currentChar() == '"' || p.currentChar() == '\'') {
		quote := p.consumeChar()
		start := p.pos
		for !p.eof() && p.currentChar() != quote {
			p.pos++
		}
		if p.eof() {
			return Attr{}, fmt.Errorf("unterminated attribute value")
		}
		value = p.input[start:p.pos]
		p.consumeChar()
	} else {
		value = p.parseIdentifier()
	}
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ']' {
		return Attr{}, fmt.Errorf("expected ']' to close attribute selector")
	}
	p.consumeChar()

	return Attr{Name: name, Op: op.String(), Value: value}, nil
}

// -- Lexer-like Helpers --

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *parser) consumeWhitespace() bool {
	consumed := false
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
		consumed = true
	}
	return consumed
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
