// browser/parser/selector.go
package parser

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
)

// Selector picks the elements a rule applies to. SimpleSelector is the only variant.
type Selector interface {
	Specificity() Specificity
	String() string
	isSelector()
}

// SimpleSelector matches on tag, id and classes. Empty fields match anything, so
// the zero value is the universal selector.
type SimpleSelector struct {
	Tag     string
	ID      string
	Classes []string
}

func (SimpleSelector) isSelector() {}

// Specificity is the (id, class, tag) weight of a selector.
type Specificity struct {
	A, B, C int
}

// Compare orders specificities lexicographically, ids first.
func (s Specificity) Compare(o Specificity) int {
	if c := cmp.Compare(s.A, o.A); c != 0 {
		return c
	}
	if c := cmp.Compare(s.B, o.B); c != 0 {
		return c
	}
	return cmp.Compare(s.C, o.C)
}

// Less reports whether s weighs less than o.
func (s Specificity) Less(o Specificity) bool { return s.Compare(o) < 0 }

func (s SimpleSelector) Specificity() Specificity {
	var sp Specificity
	if s.ID != "" {
		sp.A = 1
	}
	sp.B = len(s.Classes)
	if s.Tag != "" {
		sp.C = 1
	}
	return sp
}

func (s SimpleSelector) String() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// sortBySpecificity orders selectors from most to least specific, keeping the
// source order of equal ones.
func sortBySpecificity(selectors []Selector) {
	sort.SliceStable(selectors, func(i, j int) bool {
		return selectors[j].Specificity().Less(selectors[i].Specificity())
	})
}

// token is a copy of a css.Token that outlives the parser's buffers.
type token struct {
	tt   css.TokenType
	data string
}

func copyTokens(values []css.Token) []token {
	out := make([]token, 0, len(values))
	for _, v := range values {
		if v.TokenType == css.CommentToken {
			continue
		}
		out = append(out, token{tt: v.TokenType, data: string(v.Data)})
	}
	return out
}

// joinTokens rebuilds source text, collapsing each whitespace run to one space.
func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.tt == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(t.data)
	}
	return strings.TrimSpace(b.String())
}

// splitGroups splits a selector prelude on top-level commas.
func splitGroups(toks []token) [][]token {
	groups := [][]token{{}}
	for _, t := range toks {
		if t.tt == css.CommaToken {
			groups = append(groups, []token{})
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], t)
	}
	return groups
}

func trimWhitespace(toks []token) []token {
	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// parseSelectorList turns one ruleset prelude into selectors sorted by
// descending specificity. Anything beyond a comma-separated list of tag, #id and
// .class compounds is a syntax error.
func parseSelectorList(prelude []token, rule int) ([]Selector, error) {
	var selectors []Selector
	for _, g := range splitGroups(prelude) {
		toks := trimWhitespace(g)
		sel, reason := parseSimpleSelector(toks)
		if reason != "" {
			return nil, &rendererr.SelectorSyntaxError{Rule: rule, Selector: joinTokens(g), Reason: reason}
		}
		selectors = append(selectors, sel)
	}
	sortBySpecificity(selectors)
	return selectors, nil
}

func parseSimpleSelector(toks []token) (SimpleSelector, string) {
	var sel SimpleSelector
	if len(toks) == 0 {
		return sel, "empty selector"
	}

	i := 0
	switch {
	case toks[0].tt == css.IdentToken:
		sel.Tag = toks[0].data
		i++
	case toks[0].tt == css.DelimToken && toks[0].data == "*":
		i++
	}

	for i < len(toks) {
		t := toks[i]
		switch {
		case t.tt == css.HashToken:
			sel.ID = strings.TrimPrefix(t.data, "#")
			i++
		case t.tt == css.DelimToken && t.data == ".":
			if i+1 >= len(toks) || toks[i+1].tt != css.IdentToken {
				return sel, "expected a class name after '.'"
			}
			sel.Classes = append(sel.Classes, toks[i+1].data)
			i += 2
		case t.tt == css.WhitespaceToken:
			return sel, "combinators are not supported"
		case t.tt == css.DelimToken && strings.ContainsAny(t.data, ">+~"):
			return sel, fmt.Sprintf("combinator %q is not supported", t.data)
		case t.tt == css.ColonToken:
			return sel, "pseudo-classes are not supported"
		case t.tt == css.LeftBracketToken:
			return sel, "attribute selectors are not supported"
		default:
			return sel, fmt.Sprintf("unexpected %q", t.data)
		}
	}
	return sel, ""
}
