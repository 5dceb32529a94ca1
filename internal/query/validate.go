package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// DefaultMaxDepth is the default nesting depth limit for query trees.
// It guards against pathological nesting without rejecting any query a
// person would plausibly write.
const DefaultMaxDepth = 32

// Validation rule sentinels. Each violated rule surfaces a distinct value so
// the caller can present an actionable message.
var (
	// ErrEmptyTerm indicates a term with no text.
	ErrEmptyTerm = errors.New("empty term text")

	// ErrUnknownField indicates a field tag outside the recognized set.
	ErrUnknownField = errors.New("unrecognized field tag")

	// ErrDepthExceeded indicates the tree nests deeper than the limit.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// ValidationError reports which rule a query tree violated.
type ValidationError struct {
	Rule   error
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Rule, e.Detail)
	}
	return e.Rule.Error()
}

// Unwrap exposes both the violated rule and the syntax-error sentinel, so
// errors.Is matches either.
func (e *ValidationError) Unwrap() []error {
	return []error{e.Rule, domain.ErrSyntax}
}

// Validate walks a parsed query tree and rejects malformed input before any
// network call. It checks that every term has non-blank text, that every
// field restriction is a recognized PubMed tag, and that the tree depth stays
// below maxDepth (use 0 for DefaultMaxDepth).
func Validate(node Node, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return validate(node, 1, maxDepth)
}

func validate(node Node, depth, maxDepth int) error {
	if depth > maxDepth {
		return &ValidationError{
			Rule:   ErrDepthExceeded,
			Detail: fmt.Sprintf("limit is %d", maxDepth),
		}
	}

	switch n := node.(type) {
	case Term:
		if strings.TrimSpace(n.Text) == "" {
			return &ValidationError{Rule: ErrEmptyTerm}
		}
		if !n.Field.Recognized() {
			return &ValidationError{
				Rule:   ErrUnknownField,
				Detail: fmt.Sprintf("field %d", int(n.Field)),
			}
		}
		return nil

	case And:
		if err := validate(n.Left, depth+1, maxDepth); err != nil {
			return err
		}
		return validate(n.Right, depth+1, maxDepth)

	case Or:
		if err := validate(n.Left, depth+1, maxDepth); err != nil {
			return err
		}
		return validate(n.Right, depth+1, maxDepth)

	case Not:
		return validate(n.Child, depth+1, maxDepth)

	case Group:
		return validate(n.Child, depth+1, maxDepth)

	default:
		return &ValidationError{
			Rule:   domain.ErrSyntax,
			Detail: fmt.Sprintf("unknown node type %T", node),
		}
	}
}
