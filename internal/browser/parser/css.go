// browser/parser/css.go
package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
	"go.uber.org/zap"
)

// Declaration is one "name: value" pair of a rule.
type Declaration struct {
	Name  string
	Value Value
}

// Rule pairs selectors with declarations. Selectors are sorted by descending
// specificity, so Selectors[0] is always the most specific one.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// StyleSheet is an ordered list of rules.
type StyleSheet struct {
	Rules []Rule
}

// Parser converts stylesheet text into a StyleSheet.
type Parser struct {
	logger *zap.Logger
}

// NewParser returns a Parser that reports skipped input through logger.
// A nil logger discards everything.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.Named("css")}
}

// Parse parses text with a silent Parser.
func Parse(text string) (*StyleSheet, error) {
	return NewParser(nil).Parse(text)
}

// Parse reads a whole stylesheet. A malformed selector list fails the whole
// parse with a *rendererr.SelectorSyntaxError and no partial result. At-rules
// are skipped, and declarations the tokenizer rejects are dropped.
func (p *Parser) Parse(text string) (*StyleSheet, error) {
	cp := css.NewParser(parse.NewInputString(text), false)
	sheet := &StyleSheet{}
	var prelude []token

	for {
		gt, _, data := cp.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := cp.Err(); err != nil {
				if errors.Is(err, io.EOF) {
					return sheet, nil
				}
				// Declaration blocks are consumed elsewhere, so a hard error here
				// sits in selector position.
				return nil, &rendererr.SelectorSyntaxError{
					Rule:     len(sheet.Rules),
					Selector: joinTokens(trimWhitespace(prelude)),
					Reason:   err.Error(),
				}
			}
			p.logger.Debug("Skipping malformed input", zap.String("near", string(data)))

		case css.AtRuleGrammar:
			p.logger.Debug("Skipping at-rule", zap.String("rule", string(data)))

		case css.BeginAtRuleGrammar:
			p.logger.Debug("Skipping at-rule block", zap.String("rule", string(data)))
			p.skipBlock(cp)

		case css.QualifiedRuleGrammar:
			// One selector of a list; the last one arrives with BeginRulesetGrammar.
			toks := trimWhitespace(copyTokens(cp.Values()))
			prelude = append(prelude, toks...)
			if len(toks) == 0 || toks[len(toks)-1].tt != css.CommaToken {
				prelude = append(prelude, token{tt: css.CommaToken, data: ","})
			}

		case css.BeginRulesetGrammar:
			prelude = append(prelude, copyTokens(cp.Values())...)
			selectors, err := parseSelectorList(prelude, len(sheet.Rules))
			if err != nil {
				return nil, err
			}
			prelude = nil
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors:    selectors,
				Declarations: p.parseDeclarations(cp),
			})
		}
	}
}

// ParseInlineDeclarations parses the contents of a style attribute.
func (p *Parser) ParseInlineDeclarations(text string) []Declaration {
	cp := css.NewParser(parse.NewInputString(text), true)
	return p.parseDeclarations(cp)
}

// parseDeclarations consumes declarations up to the end of the current block.
func (p *Parser) parseDeclarations(cp *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := cp.Next()
		switch gt {
		case css.EndRulesetGrammar:
			return decls
		case css.ErrorGrammar:
			if cp.Err() != nil {
				return decls
			}
			p.logger.Debug("Dropping malformed declaration", zap.String("near", string(data)))
		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			if v, ok := p.convertValue(name, copyTokens(cp.Values())); ok {
				decls = append(decls, Declaration{Name: name, Value: v})
			}
		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			// Nested blocks are not part of the model.
			p.skipBlock(cp)
		}
	}
}

// skipBlock discards input up to the end of the block that was just opened.
func (p *Parser) skipBlock(cp *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := cp.Next()
		switch gt {
		case css.ErrorGrammar:
			if cp.Err() != nil {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// convertValue maps declaration tokens onto a Value. Input outside the supported
// set is kept as a Keyword of its source text, which ToPx reads as zero.
func (p *Parser) convertValue(name string, toks []token) (Value, bool) {
	toks = stripImportant(trimWhitespace(toks))
	if len(toks) == 0 {
		p.logger.Debug("Dropping empty declaration", zap.String("property", name))
		return nil, false
	}
	raw := joinTokens(toks)

	if len(toks) == 1 {
		t := toks[0]
		switch t.tt {
		case css.IdentToken:
			if c, ok := namedColors[strings.ToLower(t.data)]; ok {
				return c, true
			}
			return Keyword(t.data), true
		case css.NumberToken:
			if f, err := strconv.ParseFloat(t.data, 32); err == nil {
				return PxLength(float32(f)), true
			}
		case css.DimensionToken:
			n, _ := parse.Dimension([]byte(t.data))
			num, unit := t.data[:n], t.data[n:]
			if f, err := strconv.ParseFloat(num, 32); err == nil && strings.EqualFold(unit, "px") {
				return PxLength(float32(f)), true
			}
		case css.HashToken:
			if c, ok := parseHexColor(t.data); ok {
				return c, true
			}
		}
	} else if toks[0].tt == css.FunctionToken {
		if c, ok := ParseColor(raw); ok {
			return c, true
		}
	}

	p.logger.Debug("Unsupported value kept as keyword", zap.String("property", name), zap.String("value", raw))
	return Keyword(raw), true
}

// stripImportant drops a trailing "!important"; priority is not part of the cascade.
func stripImportant(toks []token) []token {
	n := len(toks)
	if n >= 2 && toks[n-2].tt == css.DelimToken && toks[n-2].data == "!" &&
		toks[n-1].tt == css.IdentToken && strings.EqualFold(toks[n-1].data, "important") {
		return trimWhitespace(toks[:n-2])
	}
	return toks
}
