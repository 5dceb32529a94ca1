package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/export"
)

const maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies

// searchRequest is the JSON request body for running a search.
type searchRequest struct {
	Query      string `json:"query" validate:"required,max=10000"`
	MaxResults int    `json:"max_results,omitempty" validate:"omitempty,min=1,max=10000"`
	Format     string `json:"format,omitempty" validate:"omitempty,oneof=json csv"`
}

// runSearch handles POST /api/v1/searches. It runs the query against
// both databases and returns the merged citation list as JSON or CSV.
func (s *Server) runSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if err := s.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, validationMessage(verrs[0]))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := s.searcher.Search(ctx, req.Query)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	if req.MaxResults > 0 && len(result.Citations) > req.MaxResults {
		result.Citations = result.Citations[:req.MaxResults]
	}

	if req.Format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="citations.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := export.WriteCSV(w, result.Citations); err != nil {
			// Headers already sent; log via server logger.
			s.logger.Error().Err(err).Msg("csv export failed mid-stream")
		}
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

// validationMessage renders one validator failure as a client-facing message.
func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// writeSearchError maps pipeline and domain errors to HTTP status codes.
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSyntax):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnsupportedConstruct):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrQueryRejected):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
