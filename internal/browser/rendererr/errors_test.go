package rendererr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	syntax := fmt.Errorf("parsing stylesheet: %w", &SelectorSyntaxError{Rule: 4, Selector: "a > b", Reason: "unexpected '>'"})
	invariant := fmt.Errorf("layout: %w", &InvariantViolation{Op: "Style", Detail: "anonymous box has no style"})
	root := fmt.Errorf("build: %w", ErrNoRenderableRoot)

	assert.True(t, IsSelectorSyntax(syntax))
	assert.False(t, IsSelectorSyntax(invariant))
	assert.True(t, IsInvariantViolation(invariant))
	assert.False(t, IsInvariantViolation(root))
	assert.True(t, errors.Is(root, ErrNoRenderableRoot))

	assert.Equal(t, `parsing stylesheet: selector syntax error in rule 4 ("a > b"): unexpected '>'`, syntax.Error())
	assert.Contains(t, invariant.Error(), "internal invariant violated in Style")
}
