package collector

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/heartland-harvester/internal/evidence"
	"github.com/sells-group/heartland-harvester/internal/fetcher"
)

// Press parses the PR Newswire search RSS feed for vendor announcements.
type Press struct {
	fetch   fetcher.Fetcher
	feedURL string
	query   string
}

// NewPress creates the press-release collector. It needs no credentials.
func NewPress(fetch fetcher.Fetcher, feedURL, query string) *Press {
	return &Press{fetch: fetch, feedURL: feedURL, query: query}
}

// Name implements Collector.
func (p *Press) Name() string { return "press" }

// Available implements Collector.
func (p *Press) Available() bool { return true }

type rssFeed struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
}

// Collect implements Collector.
func (p *Press) Collect(ctx context.Context, limit int) ([]evidence.Evidence, error) {
	params := url.Values{}
	params.Set("q", p.query)

	body, err := p.fetch.Get(ctx, p.feedURL+"?"+params.Encode())
	if err != nil {
		return nil, &Error{Collector: p.Name(), Err: err}
	}

	feed, err := parseFeed(body)
	if err != nil {
		return nil, &Error{Collector: p.Name(), Err: err}
	}

	results := make([]evidence.Evidence, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			zap.L().Debug("press: skipping incomplete feed item", zap.String("title", item.Title))
			continue
		}
		results = append(results, evidence.Evidence{
			CompanyName:     companyFromTitle(item.Title),
			SourceType:      evidence.SourcePress,
			EvidenceURL:     item.Link,
			EvidenceSnippet: item.Description,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// parseFeed decodes the RSS document, honoring non-UTF-8 charset
// declarations the way feeds in the wild require.
func parseFeed(body []byte) (*rssFeed, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "press: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var feed rssFeed
	if err := decoder.Decode(&feed); err != nil {
		return nil, eris.Wrap(err, "press: decode feed")
	}
	return &feed, nil
}
