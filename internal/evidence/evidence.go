// Package evidence defines the atomic output record of a harvest run and the
// normalization/deduplication rules applied before export.
package evidence

import (
	"regexp"
	"strings"
)

// Source types attached to Evidence records.
const (
	SourceJobAd  = "job-ad"
	SourcePDF    = "pdf"
	SourcePress  = "press"
	SourcePortal = "portal"
)

// Evidence links a company to the target vendor with its source and
// supporting text. Values are never mutated after creation.
type Evidence struct {
	CompanyName     string `json:"company_name"`
	SourceType      string `json:"source_type"`
	EvidenceURL     string `json:"evidence_url"`
	EvidenceSnippet string `json:"evidence_snippet"`
}

// Columns is the ordered header for tabular export.
var Columns = []string{"company_name", "source_type", "evidence_url", "evidence_snippet"}

// Row returns the record's fields in Columns order.
func (e Evidence) Row() []string {
	return []string{e.CompanyName, e.SourceType, e.EvidenceURL, e.EvidenceSnippet}
}

var nonWord = regexp.MustCompile(`\W+`)

// Normalize canonicalizes a company name for dedupe comparison: runs of
// whitespace and non-word characters collapse to a single space, the result
// is trimmed and lower-cased. Total and idempotent; used only as a dedupe
// key, never shown to the user.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(nonWord.ReplaceAllString(name, " ")))
}
