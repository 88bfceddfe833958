// Package rendererr defines the error kinds shared by every rendering stage.
//
// Stages never abort the process. A malformed selector list, a document with
// nothing to render and a broken internal invariant are all reported as values
// so a host can recover or report per document.
package rendererr

import (
	"errors"
	"fmt"
)

// ErrNoRenderableRoot is returned when the root of the styled tree has display: none.
var ErrNoRenderableRoot = errors.New("root element is not rendered (display: none)")

// ErrEmptyDocument is returned when markup contains no element or text content.
var ErrEmptyDocument = errors.New("document has no renderable content")

// SelectorSyntaxError reports a malformed selector list. No partial stylesheet
// accompanies it.
type SelectorSyntaxError struct {
	// Rule is the 0-based index of the offending ruleset in the stylesheet.
	Rule     int
	Selector string
	Reason   string
}

func (e *SelectorSyntaxError) Error() string {
	return fmt.Sprintf("selector syntax error in rule %d (%q): %s", e.Rule, e.Selector, e.Reason)
}

// InvariantViolation signals a state the tree builders should never produce,
// such as asking an anonymous box for its style.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Op, e.Detail)
}

// IsSelectorSyntax reports whether err wraps a *SelectorSyntaxError.
func IsSelectorSyntax(err error) bool {
	var target *SelectorSyntaxError
	return errors.As(err, &target)
}

// IsInvariantViolation reports whether err wraps an *InvariantViolation.
func IsInvariantViolation(err error) bool {
	var target *InvariantViolation
	return errors.As(err, &target)
}
