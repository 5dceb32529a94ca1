// Package query implements parsing, validation, and dialect translation of
// PubMed-syntax search queries.
//
// A query is represented as a boolean expression tree of terms, field tags,
// and operators. The tree is built once per search invocation: the validator
// and both renderers (PubMed round-trip, Embase translation) are structural
// recursions over it.
package query

// Field restricts a search term to a specific bibliographic field.
type Field int

const (
	// FieldNone means the term is not restricted to a field.
	FieldNone Field = iota
	// FieldTitleAbstract matches title or abstract ([tiab], [Title/Abstract]).
	FieldTitleAbstract
	// FieldTitle matches the title only ([ti], [Title]).
	FieldTitle
	// FieldAbstract matches the abstract only ([ab], [Abstract]).
	FieldAbstract
	// FieldMeSH matches MeSH subject headings ([mh], [Mesh]).
	FieldMeSH
	// FieldAuthor matches author names ([au], [Author]).
	FieldAuthor
	// FieldPublicationType matches the publication type ([pt]).
	FieldPublicationType
	// FieldLanguage matches the publication language ([la]).
	FieldLanguage
)

// String returns the canonical PubMed tag spelling for the field.
func (f Field) String() string {
	switch f {
	case FieldTitleAbstract:
		return "tiab"
	case FieldTitle:
		return "ti"
	case FieldAbstract:
		return "ab"
	case FieldMeSH:
		return "mh"
	case FieldAuthor:
		return "au"
	case FieldPublicationType:
		return "pt"
	case FieldLanguage:
		return "la"
	default:
		return ""
	}
}

// Recognized returns true if the field is a known PubMed field tag or none.
func (f Field) Recognized() bool {
	return f >= FieldNone && f <= FieldLanguage
}

// fieldTags maps lowercase PubMed tag spellings to Field values.
// Both the long and short spellings PubMed accepts are listed.
var fieldTags = map[string]Field{
	"tiab":           FieldTitleAbstract,
	"title/abstract": FieldTitleAbstract,
	"ti":             FieldTitle,
	"title":          FieldTitle,
	"ab":             FieldAbstract,
	"abstract":       FieldAbstract,
	"mh":             FieldMeSH,
	"mesh":           FieldMeSH,
	"au":             FieldAuthor,
	"author":         FieldAuthor,
	"pt":             FieldPublicationType,
	"la":             FieldLanguage,
}

// Node is one node of the boolean expression tree. The tree is finite and
// acyclic by construction: nodes are only ever assembled bottom-up by the
// parser and never reference an ancestor.
type Node interface {
	node()
}

// Term is a leaf: free text with an optional field restriction.
type Term struct {
	Field Field
	Text  string
	// Quoted records whether the text was a quoted phrase in the input.
	// Quoted text preserves embedded operator words as literals.
	Quoted bool
}

// And joins two subexpressions; both must match.
type And struct {
	Left, Right Node
}

// Or joins two subexpressions; either may match.
type Or struct {
	Left, Right Node
}

// Not negates its child expression.
type Not struct {
	Child Node
}

// Group is an explicitly parenthesized subexpression. It is kept in the tree
// so round-trip rendering preserves the author's grouping.
type Group struct {
	Child Node
}

func (Term) node()  {}
func (And) node()   {}
func (Or) node()    {}
func (Not) node()   {}
func (Group) node() {}
