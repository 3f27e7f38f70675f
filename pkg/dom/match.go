// pkg/dom/match.go
package dom

import (
	"strings"

	"github.com/xkilldash9x/dragsense/internal/selector"
	"github.com/xkilldash9x/dragsense/pkg/drag"
)

// CompileFilter parses a CSS-style selector into a drag.Filter. The filter
// matches only elements belonging to a Document; any other drag.Element
// implementation is rejected. Use the result as a drag item or target filter,
// or with Document.FindFirst and FindAll.
func CompileFilter(input string) (drag.Filter, error) {
	group, err := selector.Parse(input)
	if err != nil {
		return nil, err
	}
	return func(el drag.Element) bool {
		e, ok := el.(*Element)
		if !ok {
			return false
		}
		return matchGroup(e, group)
	}, nil
}

// MustCompileFilter is CompileFilter for selectors known valid at build time.
// It panics on a parse error.
func MustCompileFilter(input string) drag.Filter {
	f, err := CompileFilter(input)
	if err != nil {
		panic(err)
	}
	return f
}

func matchGroup(e *Element, group selector.Group) bool {
	for _, complex := range group {
		if matchComplex(e, complex.Parts) {
			return true
		}
	}
	return false
}

// matchComplex evaluates right to left: the rightmost compound must match the
// element itself, then each combinator walks to the ancestor or sibling that
// must satisfy the remainder.
func matchComplex(e *Element, parts []selector.Part) bool {
	last := parts[len(parts)-1]
	if !matchSimple(e, last.Simple) {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	rest := parts[:len(parts)-1]

	switch last.Combinator {
	case selector.CombinatorChild:
		if p := e.parentElement(); p != nil {
			return matchComplex(p, rest)
		}
		return false
	case selector.CombinatorAdjacentSibling:
		if s := e.prevElement(); s != nil {
			return matchComplex(s, rest)
		}
		return false
	case selector.CombinatorGeneralSibling:
		for s := e.prevElement(); s != nil; s = s.prevElement() {
			if matchComplex(s, rest) {
				return true
			}
		}
		return false
	default:
		for p := e.parentElement(); p != nil; p = p.parentElement() {
			if matchComplex(p, rest) {
				return true
			}
		}
		return false
	}
}

func matchSimple(e *Element, s selector.Simple) bool {
	if s.Tag != "" && s.Tag != "*" && s.Tag != e.Tag() {
		return false
	}
	if s.ID != "" && e.ID() != s.ID {
		return false
	}
	for _, class := range s.Classes {
		if !e.HasClass(class) {
			return false
		}
	}
	for _, attr := range s.Attrs {
		if !matchAttr(e, attr) {
			return false
		}
	}
	return true
}

func matchAttr(e *Element, a selector.Attr) bool {
	val, present := e.Attr(a.Name)
	if !present {
		return false
	}
	switch a.Op {
	case "":
		return true
	case "=":
		return val == a.Value
	case "~=":
		for _, f := range strings.Fields(val) {
			if f == a.Value {
				return true
			}
		}
		return false
	case "|=":
		return val == a.Value || strings.HasPrefix(val, a.Value+"-")
	case "^=":
		return a.Value != "" && strings.HasPrefix(val, a.Value)
	case "$=":
		return a.Value != "" && strings.HasSuffix(val, a.Value)
	case "*=":
		return a.Value != "" && strings.Contains(val, a.Value)
	default:
		return false
	}
}
