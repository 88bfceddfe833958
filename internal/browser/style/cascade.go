package style

import (
	"sort"

	"github.com/xkilldash9x/boxmodel/internal/browser/dom"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
	"go.uber.org/zap"
)

// Engine runs the cascade.
type Engine struct {
	logger       *zap.Logger
	inlineStyles bool
	inline       *parser.Parser
}

// Option configures an Engine.
type Option func(*Engine)

// WithInlineStyles applies declarations from style attributes after every
// stylesheet rule, so they win over any selector.
func WithInlineStyles(enabled bool) Option {
	return func(e *Engine) { e.inlineStyles = enabled }
}

// NewEngine creates an Engine. A nil logger discards everything.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger.Named("cascade")}
	for _, opt := range opts {
		opt(e)
	}
	e.inline = parser.NewParser(e.logger)
	return e
}

// Resolve runs the plain cascade with no inline styles.
func Resolve(root *dom.Node, sheet *parser.StyleSheet) *StyledNode {
	return NewEngine(nil).Resolve(root, sheet)
}

// Resolve builds the styled tree for root. It does not modify its inputs and
// always produces the same tree for the same inputs.
func (e *Engine) Resolve(root *dom.Node, sheet *parser.StyleSheet) *StyledNode {
	if sheet == nil {
		sheet = &parser.StyleSheet{}
	}
	elements := 0
	styled := e.styleTree(root, sheet, &elements)
	e.logger.Debug("Cascade resolved",
		zap.Int("elements", elements),
		zap.Int("rules", len(sheet.Rules)))
	return styled
}

func (e *Engine) styleTree(n *dom.Node, sheet *parser.StyleSheet, elements *int) *StyledNode {
	sn := &StyledNode{
		Node:      n,
		Specified: map[string]parser.Value{},
		Children:  make([]*StyledNode, 0, len(n.Children)),
	}
	if n.IsElement() {
		*elements++
		sn.Specified = e.specifiedValues(n, sheet)
	}
	for _, c := range n.Children {
		sn.Children = append(sn.Children, e.styleTree(c, sheet, elements))
	}
	return sn
}

// matchedRule is a rule that applies to an element, weighted by the selector that matched.
type matchedRule struct {
	specificity parser.Specificity
	rule        *parser.Rule
}

// specifiedValues applies matching rules from lowest to highest specificity.
// Later writes win, both across rules and within a rule.
func (e *Engine) specifiedValues(elem *dom.Node, sheet *parser.StyleSheet) map[string]parser.Value {
	values := map[string]parser.Value{}
	rules := matchingRules(elem, sheet)

	// Stable, so equal specificity keeps stylesheet order.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].specificity.Less(rules[j].specificity)
	})
	for _, m := range rules {
		for _, decl := range m.rule.Declarations {
			values[decl.Name] = decl.Value
		}
	}

	if e.inlineStyles {
		if attr, ok := elem.Attr("style"); ok {
			for _, decl := range e.inline.ParseInlineDeclarations(attr) {
				values[decl.Name] = decl.Value
			}
		}
	}
	return values
}

func matchingRules(elem *dom.Node, sheet *parser.StyleSheet) []matchedRule {
	classes := elem.Classes()
	var out []matchedRule
	for i := range sheet.Rules {
		if m, ok := matchRule(elem, classes, &sheet.Rules[i]); ok {
			out = append(out, m)
		}
	}
	return out
}

// matchRule tests selectors in their stored order (most specific first) and
// stops at the first match; that selector alone sets the rule's specificity.
func matchRule(elem *dom.Node, classes map[string]struct{}, rule *parser.Rule) (matchedRule, bool) {
	for _, sel := range rule.Selectors {
		if matches(elem, classes, sel) {
			return matchedRule{specificity: sel.Specificity(), rule: rule}, true
		}
	}
	return matchedRule{}, false
}

func matches(elem *dom.Node, classes map[string]struct{}, sel parser.Selector) bool {
	switch s := sel.(type) {
	case parser.SimpleSelector:
		return matchesSimple(elem, classes, s)
	default:
		return false
	}
}

func matchesSimple(elem *dom.Node, classes map[string]struct{}, sel parser.SimpleSelector) bool {
	if sel.Tag != "" && sel.Tag != elem.Tag {
		return false
	}
	if sel.ID != "" {
		if id, ok := elem.ID(); !ok || id != sel.ID {
			return false
		}
	}
	for _, c := range sel.Classes {
		if _, ok := classes[c]; !ok {
			return false
		}
	}
	return true
}
