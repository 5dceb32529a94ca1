package query

import (
	"strings"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// embaseFields is the static PubMed-to-Embase field-tag mapping table. It is
// the single source of truth for the supported tag set: a field absent from
// this table is itself the signal for an unsupported construct, never a
// silent pass-through. FieldAuthor, FieldPublicationType, and FieldLanguage
// are valid PubMed tags with no Embase thesaurus equivalent, so they are
// deliberately not listed.
var embaseFields = map[Field]string{
	FieldTitleAbstract: ":ti,ab,kw",
	FieldTitle:         ":ti,kw",
	FieldAbstract:      ":ab,kw",
	FieldMeSH:          "/mj",
}

// Translate rewrites a validated query tree into an Embase-syntax string.
//
// Each term renders as its lowercased text in single quotes followed by the
// Embase field suffix from the mapping table. Boolean operators render
// uppercase; a NOT whose operand is a binary expression gets explicit
// parentheses, since Embase does not share PubMed's precedence rules for
// negation. Translation is deterministic: the same tree always produces the
// same string.
//
// Translate fails with a domain.UnsupportedConstructError when a term uses a
// PubMed field tag outside the mapping table.
func Translate(node Node) (string, error) {
	var sb strings.Builder
	if err := translate(&sb, node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func translate(sb *strings.Builder, node Node) error {
	switch n := node.(type) {
	case Term:
		suffix := ""
		if n.Field != FieldNone {
			mapped, ok := embaseFields[n.Field]
			if !ok {
				return &domain.UnsupportedConstructError{Tag: n.Field.String()}
			}
			suffix = mapped
		}
		sb.WriteByte('\'')
		sb.WriteString(strings.ToLower(n.Text))
		sb.WriteByte('\'')
		sb.WriteString(suffix)
		return nil

	case And:
		if err := translate(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(" AND ")
		return translate(sb, n.Right)

	case Or:
		if err := translate(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(" OR ")
		return translate(sb, n.Right)

	case Not:
		sb.WriteString("NOT ")
		if isBinary(n.Child) {
			sb.WriteByte('(')
			if err := translate(sb, n.Child); err != nil {
				return err
			}
			sb.WriteByte(')')
			return nil
		}
		return translate(sb, n.Child)

	case Group:
		sb.WriteByte('(')
		if err := translate(sb, n.Child); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil

	default:
		return domain.NewSyntaxError(-1, "unknown node type %T", node)
	}
}

// isBinary returns true for nodes that need explicit parentheses when
// negated.
func isBinary(node Node) bool {
	switch node.(type) {
	case And, Or:
		return true
	}
	return false
}
