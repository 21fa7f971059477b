package collector

import (
	"context"
	"net/http"

	"github.com/sells-group/heartland-harvester/pkg/censys"
	"github.com/sells-group/heartland-harvester/pkg/serpapi"
)

// stubSearch is a canned serpapi.Client.
type stubSearch struct {
	resp    *serpapi.SearchResponse
	err     error
	lastNum int
}

func (s *stubSearch) Search(_ context.Context, _ string, num int) (*serpapi.SearchResponse, error) {
	s.lastNum = num
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// stubHosts is a canned censys.Client.
type stubHosts struct {
	resp *censys.HostsSearchResponse
	err  error
}

func (s *stubHosts) SearchHosts(_ context.Context, _ string, _ int) (*censys.HostsSearchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// stubFetcher returns canned bodies keyed by URL.
type stubFetcher struct {
	bodies map[string][]byte
	errs   map[string]error
	calls  []string
}

func (s *stubFetcher) Get(_ context.Context, url string) ([]byte, error) {
	s.calls = append(s.calls, url)
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	return s.bodies[url], nil
}

func (s *stubFetcher) Do(_ context.Context, _ *http.Request) (*http.Response, error) {
	panic("not used in tests")
}

// stubExtractor returns the PDF bytes as text, or a fixed error.
type stubExtractor struct {
	err error
}

func (s *stubExtractor) ExtractText(data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(data), nil
}
