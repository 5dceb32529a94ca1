package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// tokenKind classifies lexer tokens.
type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenPhrase
	tokenTag
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
	tokenEOF
)

// token is a single lexical unit with its byte offset in the raw query.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits a raw PubMed query into tokens. Boolean operator words are
// matched case-insensitively; everything else keeps its original spelling.
func lex(raw string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(raw)

	for i < n {
		r, size := utf8.DecodeRuneInString(raw[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++

		case r == '"':
			end := strings.IndexByte(raw[i+1:], '"')
			if end < 0 {
				return nil, domain.NewSyntaxError(i, "unterminated quoted phrase")
			}
			tokens = append(tokens, token{kind: tokenPhrase, text: raw[i+1 : i+1+end], pos: i})
			i += end + 2

		case r == '[':
			end := strings.IndexByte(raw[i+1:], ']')
			if end < 0 {
				return nil, domain.NewSyntaxError(i, "unterminated field tag")
			}
			tokens = append(tokens, token{kind: tokenTag, text: raw[i+1 : i+1+end], pos: i})
			i += end + 2

		case r == ']':
			return nil, domain.NewSyntaxError(i, "unexpected ']'")

		default:
			start := i
			for i < n {
				wr, wsize := utf8.DecodeRuneInString(raw[i:])
				if isWordBoundary(wr) {
					break
				}
				i += wsize
			}
			word := raw[start:i]
			switch strings.ToUpper(word) {
			case "AND":
				tokens = append(tokens, token{kind: tokenAnd, text: word, pos: start})
			case "OR":
				tokens = append(tokens, token{kind: tokenOr, text: word, pos: start})
			case "NOT":
				tokens = append(tokens, token{kind: tokenNot, text: word, pos: start})
			default:
				tokens = append(tokens, token{kind: tokenWord, text: word, pos: start})
			}
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, pos: n})
	return tokens, nil
}

// isWordBoundary returns true for runes that terminate a bare word.
func isWordBoundary(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '"':
		return true
	}
	return unicode.IsSpace(r)
}
