package query

import (
	"strings"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// Parse parses a raw PubMed-syntax query into a boolean expression tree.
//
// Grammar, loosest binding first:
//
//	or     := and ("OR" and)*
//	and    := not ("AND" not)*
//	not    := "NOT" not | primary
//	primary:= "(" or ")" | term
//	term   := (phrase | word+) tag?
//
// Operators are case-insensitive and associate left-to-right. Parentheses
// bind tighter than any operator. Adjacent bare words form a single
// multi-word term; quoted phrases keep operator-like words literal.
//
// Parse fails with a domain.SyntaxError on unbalanced parentheses or quotes,
// a missing operand, or an unrecognized field tag token.
func Parse(raw string) (Node, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewSyntaxError(0, "empty query")
	}

	tokens, err := lex(raw)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, domain.NewSyntaxError(tok.pos, "unexpected %q", tok.text)
	}
	return node, nil
}

type parser struct {
	tokens []token
	i      int
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().kind == tokenNot {
		p.next()
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{Child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.kind {
	case tokenLParen:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, domain.NewSyntaxError(tok.pos, "unbalanced parenthesis")
		}
		return Group{Child: inner}, nil

	case tokenPhrase, tokenWord:
		return p.parseTerm()

	case tokenRParen:
		return nil, domain.NewSyntaxError(tok.pos, "unbalanced parenthesis")

	case tokenAnd, tokenOr:
		return nil, domain.NewSyntaxError(tok.pos, "operator %q is missing its left operand", tok.text)

	case tokenTag:
		return nil, domain.NewSyntaxError(tok.pos, "field tag [%s] must follow a term", tok.text)

	default:
		return nil, domain.NewSyntaxError(tok.pos, "operator is missing its operand")
	}
}

func (p *parser) parseTerm() (Node, error) {
	tok := p.next()

	term := Term{}
	if tok.kind == tokenPhrase {
		term.Text = tok.text
		term.Quoted = true
	} else {
		// Consecutive bare words join into one multi-word term.
		words := []string{tok.text}
		for p.peek().kind == tokenWord {
			words = append(words, p.next().text)
		}
		term.Text = strings.Join(words, " ")
	}

	if p.peek().kind == tokenTag {
		tagTok := p.next()
		field, ok := fieldTags[strings.ToLower(tagTok.text)]
		if !ok {
			return nil, domain.NewSyntaxError(tagTok.pos, "unrecognized field tag [%s]", tagTok.text)
		}
		term.Field = field
	}

	return term, nil
}
