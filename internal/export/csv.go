// Package export serializes citation lists for delivery to clients.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// csvHeader is the fixed column order for CSV exports.
var csvHeader = []string{"Source", "Author", "Title", "Abstract", "ID", "Link", "Query"}

// WriteCSV writes citations to w as CSV with a fixed header row.
// Row order follows the input slice. Empty fields are written as
// empty cells; quoting and escaping follow RFC 4180.
func WriteCSV(w io.Writer, citations []domain.Citation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, c := range citations {
		row := []string{
			c.Source.DisplayName(),
			c.Author,
			c.Title,
			c.Abstract,
			c.ID,
			c.Link,
			c.Query,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
