package collector

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/heartland-harvester/internal/evidence"
	"github.com/sells-group/heartland-harvester/pkg/serpapi"
)

// JobAds searches SerpAPI for job ads mentioning the target vendor.
type JobAds struct {
	search serpapi.Client
	query  string
}

// NewJobAds creates the job-ad collector. A nil search client marks the
// collector unavailable.
func NewJobAds(search serpapi.Client, query string) *JobAds {
	return &JobAds{search: search, query: query}
}

// Name implements Collector.
func (j *JobAds) Name() string { return "job-ads" }

// Available implements Collector.
func (j *JobAds) Available() bool { return j.search != nil }

// Collect implements Collector.
func (j *JobAds) Collect(ctx context.Context, limit int) ([]evidence.Evidence, error) {
	resp, err := j.search.Search(ctx, j.query, limit)
	if err != nil {
		return nil, &Error{Collector: j.Name(), Err: err}
	}

	results := make([]evidence.Evidence, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		if r.Link == "" {
			zap.L().Debug("job-ads: skipping result without link", zap.String("title", r.Title))
			continue
		}
		results = append(results, evidence.Evidence{
			CompanyName:     companyFromTitle(r.Title),
			SourceType:      evidence.SourceJobAd,
			EvidenceURL:     r.Link,
			EvidenceSnippet: r.Snippet,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
