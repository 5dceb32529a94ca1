package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxError(t *testing.T) {
	t.Run("positional message", func(t *testing.T) {
		err := NewSyntaxError(7, "unexpected %q", ")")
		assert.Equal(t, `syntax error at offset 7: unexpected ")"`, err.Error())
		assert.True(t, errors.Is(err, ErrSyntax))
	})

	t.Run("non-positional message", func(t *testing.T) {
		err := &SyntaxError{Pos: -1, Message: "maximum nesting depth exceeded"}
		assert.Equal(t, "syntax error: maximum nesting depth exceeded", err.Error())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("search failed: %w", NewSyntaxError(0, "empty query"))
		assert.True(t, errors.Is(err, ErrSyntax))

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, "empty query", syntaxErr.Message)
	})
}

func TestUnsupportedConstructError(t *testing.T) {
	err := &UnsupportedConstructError{Tag: "au"}
	assert.Equal(t, "no Embase equivalent for PubMed field tag [au]", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedConstruct))
	assert.False(t, errors.Is(err, ErrSyntax))
}

func TestSourceUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSourceUnavailableError(SourcePubMed, cause)

	assert.Equal(t, "PubMed unavailable: connection refused", err.Error())
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, cause), "cause must stay in the chain")
}

func TestQueryRejectedError(t *testing.T) {
	err := NewQueryRejectedError(SourceEmbase, 401, "unauthorized")
	assert.Contains(t, err.Error(), "Embase rejected query (status 401)")
	assert.True(t, errors.Is(err, ErrQueryRejected))
}

func TestMalformedRecordError(t *testing.T) {
	err := NewMalformedRecordError(SourceEmbase, "missing identifier")
	assert.Equal(t, "malformed Embase record: missing identifier", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestSource(t *testing.T) {
	assert.Equal(t, "PubMed", SourcePubMed.DisplayName())
	assert.Equal(t, "Embase", SourceEmbase.DisplayName())
	assert.Equal(t, "other", Source("other").DisplayName())

	assert.True(t, SourcePubMed.Valid())
	assert.True(t, SourceEmbase.Valid())
	assert.False(t, Source("scopus").Valid())
}

func TestCitation_HasAbstract(t *testing.T) {
	assert.False(t, Citation{}.HasAbstract())
	assert.False(t, Citation{Abstract: "  "}.HasAbstract())
	assert.True(t, Citation{Abstract: "text"}.HasAbstract())
}
