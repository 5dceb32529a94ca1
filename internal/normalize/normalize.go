// Package normalize maps each source's raw hits into canonical citations.
package normalize

import (
	"fmt"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources"
)

// pubmedLinkFormat builds the article URL for a PMID or MEDLINE accession.
const pubmedLinkFormat = "https://pubmed.ncbi.nlm.nih.gov/%s/"

// Hit normalizes one raw hit into a citation. sentQuery is the exact query
// string that was sent to the source, so PubMed-origin and Embase-origin
// citations from the same search carry their own respective query strings.
//
// Missing optional fields (abstract, author, DOI) never fail normalization;
// a missing id does, with a domain.MalformedRecordError, since an
// unidentifiable record can be neither deduplicated nor deep-linked.
func Hit(hit sources.RawHit, source domain.Source, sentQuery string) (domain.Citation, error) {
	if hit.ID == "" {
		return domain.Citation{}, domain.NewMalformedRecordError(source, "missing identifier")
	}

	return domain.Citation{
		Source:   source,
		Author:   hit.AuthorSurname,
		Title:    hit.Title,
		Abstract: hit.Abstract,
		ID:       hit.ID,
		Link:     link(hit, source),
		Query:    sentQuery,
	}, nil
}

// All normalizes a raw hit list, dropping unidentifiable hits.
// The skipped count is reported so the caller can surface it; a skipped
// record is never a fatal error for the whole search.
func All(hits []sources.RawHit, source domain.Source, sentQuery string) (citations []domain.Citation, skipped int) {
	citations = make([]domain.Citation, 0, len(hits))
	for _, hit := range hits {
		c, err := Hit(hit, source, sentQuery)
		if err != nil {
			skipped++
			continue
		}
		citations = append(citations, c)
	}
	return citations, skipped
}

// link constructs the article URL for a hit. PubMed hits always link to the
// PubMed record. Embase hits link to the DOI when one is reported; records
// with only a MEDLINE accession fall back to the PubMed record, which the
// accession also identifies.
func link(hit sources.RawHit, source domain.Source) string {
	switch source {
	case domain.SourceEmbase:
		if hit.DOI != "" {
			return "https://doi.org/" + hit.DOI
		}
		return fmt.Sprintf(pubmedLinkFormat, hit.ID)
	default:
		return fmt.Sprintf(pubmedLinkFormat, hit.ID)
	}
}
