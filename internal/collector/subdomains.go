package collector

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/heartland-harvester/internal/evidence"
	"github.com/sells-group/heartland-harvester/pkg/censys"
)

// Subdomains discovers vendor-hosted portals via Censys certificate search.
type Subdomains struct {
	hosts censys.Client
	query string
}

// NewSubdomains creates the subdomain collector. A nil client marks the
// collector unavailable.
func NewSubdomains(hosts censys.Client, query string) *Subdomains {
	return &Subdomains{hosts: hosts, query: query}
}

// Name implements Collector.
func (s *Subdomains) Name() string { return "subdomains" }

// Available implements Collector.
func (s *Subdomains) Available() bool { return s.hosts != nil }

// Collect implements Collector.
func (s *Subdomains) Collect(ctx context.Context, limit int) ([]evidence.Evidence, error) {
	resp, err := s.hosts.SearchHosts(ctx, s.query, limit)
	if err != nil {
		return nil, &Error{Collector: s.Name(), Err: err}
	}

	results := make([]evidence.Evidence, 0, len(resp.Result.Hits))
	for _, hit := range resp.Result.Hits {
		domain := hit.Name
		if domain == "" {
			domain = hit.IP
		}
		if domain == "" {
			zap.L().Debug("subdomains: skipping hit without name or ip")
			continue
		}
		results = append(results, evidence.Evidence{
			CompanyName:     domain,
			SourceType:      evidence.SourcePortal,
			EvidenceURL:     "https://" + domain,
			EvidenceSnippet: "discovered via Censys",
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
