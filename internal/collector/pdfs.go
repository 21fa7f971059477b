package collector

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/heartland-harvester/internal/evidence"
	"github.com/sells-group/heartland-harvester/internal/fetcher"
	"github.com/sells-group/heartland-harvester/internal/pdftext"
	"github.com/sells-group/heartland-harvester/pkg/serpapi"
)

// pdfSearchCap bounds how many PDF hits one search requests; each hit costs
// a full document download.
const pdfSearchCap = 10

// PDFs searches SerpAPI for PDF documents mentioning the target vendor,
// downloads each one, and extracts a keyword snippet from its text.
type PDFs struct {
	search  serpapi.Client
	fetch   fetcher.Fetcher
	extract pdftext.Extractor
	query   string
	keyword string
	context int
}

// NewPDFs creates the PDF collector. A nil search client marks the collector
// unavailable; a nil extractor makes every Collect fail with a
// collector-wide error, since PDF parsing is a hard prerequisite.
func NewPDFs(search serpapi.Client, fetch fetcher.Fetcher, extract pdftext.Extractor, query, keyword string, snippetContext int) *PDFs {
	return &PDFs{
		search:  search,
		fetch:   fetch,
		extract: extract,
		query:   query,
		keyword: keyword,
		context: snippetContext,
	}
}

// Name implements Collector.
func (p *PDFs) Name() string { return "pdfs" }

// Available implements Collector.
func (p *PDFs) Available() bool { return p.search != nil }

// Collect implements Collector.
func (p *PDFs) Collect(ctx context.Context, limit int) ([]evidence.Evidence, error) {
	if p.extract == nil {
		return nil, &Error{Collector: p.Name(), Err: eris.New("pdf text extraction is unavailable")}
	}

	num := limit
	if num > pdfSearchCap {
		num = pdfSearchCap
	}
	resp, err := p.search.Search(ctx, p.query, num)
	if err != nil {
		return nil, &Error{Collector: p.Name(), Err: err}
	}

	results := make([]evidence.Evidence, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		if r.Link == "" {
			continue
		}

		data, err := p.fetch.Get(ctx, r.Link)
		if err != nil {
			zap.L().Warn("pdfs: skipping document that failed to download",
				zap.String("url", r.Link),
				zap.Error(err),
			)
			continue
		}

		text, err := p.extract.ExtractText(data)
		if err != nil {
			zap.L().Warn("pdfs: skipping unparseable document",
				zap.String("url", r.Link),
				zap.Error(err),
			)
			continue
		}

		results = append(results, evidence.Evidence{
			CompanyName:     companyFromTitle(r.Title),
			SourceType:      evidence.SourcePDF,
			EvidenceURL:     r.Link,
			EvidenceSnippet: pdftext.Snippet(text, p.keyword, p.context),
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
