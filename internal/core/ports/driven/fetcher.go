package driven

import (
	"context"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// Fetcher materialises a source's raw data for one language, returning a
// local path to the fetched file. Downloading over the network is outside
// the pipeline proper; this port exists so the build orchestrator can
// drive whatever fetch collaborator is configured while enforcing the
// per-origin budget.
//
// Implementations must honour ctx cancellation: fetches can be queued
// behind an origin's connection limit for a long time.
type Fetcher interface {
	// Fetch ensures the raw data for (source, lang) is present locally.
	// The language code passed upstream is the source's own code, i.e.
	// already translated through the source's language map.
	Fetch(ctx context.Context, source domain.Source, lang domain.LanguageCode) (path string, err error)
}
