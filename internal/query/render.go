package query

import "strings"

// RenderPubMed renders a query tree back to PubMed syntax. The output is
// semantically equivalent to the input the tree was parsed from, though not
// necessarily byte-identical: field tags use their canonical short spelling
// and operators are uppercased.
func RenderPubMed(node Node) string {
	var sb strings.Builder
	renderPubMed(&sb, node)
	return sb.String()
}

func renderPubMed(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case Term:
		if n.Quoted || strings.ContainsAny(n.Text, " ") {
			sb.WriteByte('"')
			sb.WriteString(n.Text)
			sb.WriteByte('"')
		} else {
			sb.WriteString(n.Text)
		}
		if n.Field != FieldNone {
			sb.WriteByte('[')
			sb.WriteString(n.Field.String())
			sb.WriteByte(']')
		}

	case And:
		renderPubMed(sb, n.Left)
		sb.WriteString(" AND ")
		renderPubMed(sb, n.Right)

	case Or:
		renderPubMed(sb, n.Left)
		sb.WriteString(" OR ")
		renderPubMed(sb, n.Right)

	case Not:
		sb.WriteString("NOT ")
		renderPubMed(sb, n.Child)

	case Group:
		sb.WriteByte('(')
		renderPubMed(sb, n.Child)
		sb.WriteByte(')')
	}
}
