package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	t.Run("writes header and rows in order", func(t *testing.T) {
		citations := []domain.Citation{
			{
				Source:   domain.SourcePubMed,
				Author:   "Smith",
				Title:    "Pituitary Adenoma: A Review",
				Abstract: "Some abstract.",
				ID:       "111",
				Link:     "https://pubmed.ncbi.nlm.nih.gov/111/",
				Query:    `adenoma[tiab]`,
			},
			{
				Source: domain.SourceEmbase,
				Author: "Garcia",
				Title:  "Second Paper",
				ID:     "e2",
				Link:   "https://doi.org/10.1/x",
				Query:  `'adenoma':ti,ab,kw`,
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, citations))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"Source", "Author", "Title", "Abstract", "ID", "Link", "Query"}, records[0])
		assert.Equal(t, []string{
			"PubMed", "Smith", "Pituitary Adenoma: A Review", "Some abstract.",
			"111", "https://pubmed.ncbi.nlm.nih.gov/111/", `adenoma[tiab]`,
		}, records[1])
		assert.Equal(t, "Embase", records[2][0])
		// Missing abstract is an empty cell, not a dropped column.
		assert.Equal(t, "", records[2][3])
	})

	t.Run("escapes embedded quotes commas and newlines", func(t *testing.T) {
		citations := []domain.Citation{{
			Source:   domain.SourcePubMed,
			Title:    `He said "yes", then left`,
			Abstract: "line one\nline two",
			ID:       "1",
		}}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, citations))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, `He said "yes", then left`, records[1][2])
		assert.Equal(t, "line one\nline two", records[1][3])
	})

	t.Run("empty citation list yields header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, nil))
		assert.Equal(t, "Source,Author,Title,Abstract,ID,Link,Query", strings.TrimSpace(buf.String()))
	})
}
