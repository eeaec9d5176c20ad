package driven

import (
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// ActivityRecognizer is the platform activity recognition service.
type ActivityRecognizer interface {
	// RequestActivityUpdates registers a listener that receives a
	// classification roughly every interval. Callbacks follow the same
	// rules as LocationProvider.RequestUpdates.
	RequestActivityUpdates(
		interval time.Duration,
		onResult func(domain.MotionClassification),
		onError func(error),
	) (unregister func(), err error)
}
