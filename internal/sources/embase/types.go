// Package embase provides a client for the Elsevier Embase content API.
//
// Embase is a biomedical literature database published by Elsevier. Access
// requires an Elsevier API key and, off-campus, an institutional token
// (insttoken). The client implements the sources.Runner interface.
package embase

// SearchResponse represents the top-level Embase article search response.
type SearchResponse struct {
	Results []Result `json:"results"`
}

// Result represents a single document in the Embase search results.
type Result struct {
	Head     Head     `json:"head"`
	ItemInfo ItemInfo `json:"itemInfo"`
}

// Head contains the bibliographic head of an Embase record.
type Head struct {
	CitationTitle CitationTitle `json:"citationTitle"`
	Abstracts     *Abstracts    `json:"abstracts,omitempty"`
	AuthorList    *AuthorList   `json:"authorList,omitempty"`
}

// CitationTitle wraps the title text variants of a record.
type CitationTitle struct {
	TitleText []TitleText `json:"titleText"`
}

// TitleText is one title variant.
type TitleText struct {
	Text string `json:"ttltext"`
}

// Abstracts wraps the abstract sections of a record.
type Abstracts struct {
	Abstracts []AbstractSection `json:"abstracts"`
}

// AbstractSection holds the paragraphs of one abstract.
type AbstractSection struct {
	Paras []string `json:"paras"`
}

// AuthorList contains the record's authors.
type AuthorList struct {
	Authors []Author `json:"authors"`
}

// Author represents a single author.
type Author struct {
	Surname   string `json:"surname"`
	GivenName string `json:"givenName,omitempty"`
	Initials  string `json:"initials,omitempty"`
}

// ItemInfo contains the record's identifiers.
type ItemInfo struct {
	ItemIDList ItemIDList `json:"itemIdList"`
}

// ItemIDList holds the identifiers Embase reports for a record. The MEDLINE
// accession (medl) doubles as a PMID for records indexed in both databases.
type ItemIDList struct {
	DOI  string `json:"doi,omitempty"`
	Medl string `json:"medl,omitempty"`
	PUI  string `json:"pui,omitempty"`
}
