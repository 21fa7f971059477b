// Package collector holds the source-specific adapters that turn external
// search results into Evidence records. Every collector honors the same
// contract: produce at most limit records, skip malformed items, and fail as
// a whole only on collector-wide preconditions.
package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/heartland-harvester/internal/evidence"
)

// Collector is a source-specific adapter producing Evidence from one
// external system.
type Collector interface {
	// Name identifies the collector in logs and CLI flags.
	Name() string

	// Available reports whether the collector's prerequisites (credentials)
	// are present. Unavailable collectors are silently skipped.
	Available() bool

	// Collect produces at most limit Evidence records. Malformed upstream
	// items are skipped; a returned error means the whole collector failed
	// and contributed nothing.
	Collect(ctx context.Context, limit int) ([]evidence.Evidence, error)
}

// Error is a collector-wide failure: a missing capability or an unusable
// upstream payload. The orchestrator logs it and moves on.
type Error struct {
	Collector string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("collector %s: %v", e.Collector, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// companyFromTitle extracts the company portion of a result title, which the
// upstream sources format as "Company - rest of title".
func companyFromTitle(title string) string {
	return strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
}
