package server

import (
	"encoding/json"
	"net/http"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/pipeline"
)

// citationResponse is the JSON representation of one citation.
type citationResponse struct {
	Source   string `json:"source"`
	Author   string `json:"author,omitempty"`
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	ID       string `json:"id"`
	Link     string `json:"link,omitempty"`
	Query    string `json:"query"`
}

// searchResponse is the JSON response body for a completed search.
type searchResponse struct {
	SearchID          string                 `json:"search_id"`
	PubMedQuery       string                 `json:"pubmed_query"`
	EmbaseQuery       string                 `json:"embase_query,omitempty"`
	Partial           bool                   `json:"partial"`
	SourceErrors      []pipeline.SourceError `json:"source_errors,omitempty"`
	Skipped           int                    `json:"skipped"`
	DuplicatesRemoved int                    `json:"duplicates_removed"`
	TotalCount        int                    `json:"total_count"`
	Citations         []citationResponse     `json:"citations"`
}

// domainCitationToResponse converts a domain citation to its JSON form.
func domainCitationToResponse(c domain.Citation) citationResponse {
	return citationResponse{
		Source:   string(c.Source),
		Author:   c.Author,
		Title:    c.Title,
		Abstract: c.Abstract,
		ID:       c.ID,
		Link:     c.Link,
		Query:    c.Query,
	}
}

// resultToResponse converts a pipeline result to the JSON response body.
func resultToResponse(res *pipeline.Result) searchResponse {
	citations := make([]citationResponse, len(res.Citations))
	for i, c := range res.Citations {
		citations[i] = domainCitationToResponse(c)
	}
	return searchResponse{
		SearchID:          res.SearchID,
		PubMedQuery:       res.PubMedQuery,
		EmbaseQuery:       res.EmbaseQuery,
		Partial:           res.Partial,
		SourceErrors:      res.SourceErrors,
		Skipped:           res.Skipped,
		DuplicatesRemoved: res.DuplicatesRemoved,
		TotalCount:        len(res.Citations),
		Citations:         citations,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort log; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
