package driven

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// Geocoder turns coordinates into address candidates.
type Geocoder interface {
	// ReverseGeocode looks up at most maxResults addresses near the
	// coordinates, ordered by relevance. It blocks until the lookup
	// finishes or ctx is done. A failed lookup that may succeed on retry
	// wraps domain.ErrTransientProvider.
	ReverseGeocode(ctx context.Context, lat, lon float64, maxResults int) (domain.AddressCandidates, error)
}
