package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/heartland-harvester/internal/evidence"
	"github.com/sells-group/heartland-harvester/pkg/serpapi"
)

func TestPDFs_Collect(t *testing.T) {
	search := &stubSearch{resp: &serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Acme Corp - Annual Report", Link: "https://acme.example/report.pdf"},
			{Title: "Beta LLC - Vendor List", Link: "https://beta.example/vendors.pdf"},
		},
	}}
	fetch := &stubFetcher{bodies: map[string][]byte{
		"https://acme.example/report.pdf":  []byte("AAAAA Heartland Payroll BBBBB"),
		"https://beta.example/vendors.pdf": []byte("nothing relevant in here"),
	}}

	c := NewPDFs(search, fetch, &stubExtractor{}, `"Heartland Payroll" filetype:pdf`, "heartland payroll", 5)
	got, err := c.Collect(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Acme Corp", got[0].CompanyName)
	assert.Equal(t, evidence.SourcePDF, got[0].SourceType)
	assert.Equal(t, "AAAA Heartland Payroll BBBB", got[0].EvidenceSnippet)
	assert.Equal(t, "", got[1].EvidenceSnippet, "absent keyword yields empty snippet")
}

func TestPDFs_MissingExtractorIsCollectorWide(t *testing.T) {
	search := &stubSearch{resp: &serpapi.SearchResponse{}}
	c := NewPDFs(search, &stubFetcher{}, nil, "q", "heartland payroll", 100)

	_, err := c.Collect(context.Background(), 10)
	require.Error(t, err)

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "pdfs", ce.Collector)
}

func TestPDFs_FailedDownloadSkipsItem(t *testing.T) {
	search := &stubSearch{resp: &serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Gone Inc - Filing", Link: "https://gone.example/missing.pdf"},
			{Title: "Acme Corp - Report", Link: "https://acme.example/ok.pdf"},
		},
	}}
	fetch := &stubFetcher{
		bodies: map[string][]byte{"https://acme.example/ok.pdf": []byte("Heartland Payroll inside")},
		errs:   map[string]error{"https://gone.example/missing.pdf": errors.New("http 404")},
	}

	c := NewPDFs(search, fetch, &stubExtractor{}, "q", "heartland payroll", 50)
	got, err := c.Collect(context.Background(), 10)
	require.NoError(t, err, "a single failed document must not abort the collector")
	require.Len(t, got, 1)
	assert.Equal(t, "Acme Corp", got[0].CompanyName)
}

func TestPDFs_UnparseableDocumentSkipsItem(t *testing.T) {
	search := &stubSearch{resp: &serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Broken - Doc", Link: "https://a.example/broken.pdf"},
		},
	}}
	fetch := &stubFetcher{bodies: map[string][]byte{"https://a.example/broken.pdf": []byte("not a pdf")}}

	c := NewPDFs(search, fetch, &stubExtractor{err: errors.New("bad xref")}, "q", "heartland payroll", 50)
	got, err := c.Collect(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPDFs_SearchCappedAtTen(t *testing.T) {
	search := &stubSearch{resp: &serpapi.SearchResponse{}}
	c := NewPDFs(search, &stubFetcher{}, &stubExtractor{}, "q", "heartland payroll", 50)

	_, err := c.Collect(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 10, search.lastNum, "PDF searches request at most 10 hits")
}

func TestPDFs_Available(t *testing.T) {
	assert.False(t, NewPDFs(nil, &stubFetcher{}, &stubExtractor{}, "q", "k", 1).Available())
	assert.True(t, NewPDFs(&stubSearch{}, &stubFetcher{}, nil, "q", "k", 1).Available(),
		"missing extractor is a collector-wide error at Collect time, not a silent skip")
}
