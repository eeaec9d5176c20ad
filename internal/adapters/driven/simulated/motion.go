package simulated

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure ActivityRecognizer implements the interface.
var _ driven.ActivityRecognizer = (*ActivityRecognizer)(nil)

// DefaultScript is the classification sequence replayed by default.
var DefaultScript = []domain.MotionClassification{
	{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityStill, Confidence: 0.8},
		{Kind: domain.ActivityTilting, Confidence: 0.2},
	}},
	{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityWalking, Confidence: 0.7},
		{Kind: domain.ActivityOnFoot, Confidence: 0.7},
		{Kind: domain.ActivityStill, Confidence: 0.1},
	}},
	{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityRunning, Confidence: 0.55},
		{Kind: domain.ActivityOnFoot, Confidence: 0.45},
	}},
	{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityOnBicycle, Confidence: 0.6},
		{Kind: domain.ActivityInVehicle, Confidence: 0.3},
	}},
	{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityInVehicle, Confidence: 0.9},
	}},
	{},
}

// MotionConfig configures the simulated activity recognizer.
type MotionConfig struct {
	// Script is replayed in a loop. Defaults to DefaultScript.
	Script []domain.MotionClassification

	// Unavailable makes registration fail with domain.ErrProviderUnavailable.
	Unavailable bool

	// Now overrides the clock. Optional.
	Now func() time.Time
}

// ActivityRecognizer replays a scripted sequence of classifications.
type ActivityRecognizer struct {
	cfg MotionConfig
}

// NewActivityRecognizer creates a simulated activity recognizer.
func NewActivityRecognizer(cfg MotionConfig) *ActivityRecognizer {
	if len(cfg.Script) == 0 {
		cfg.Script = DefaultScript
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ActivityRecognizer{cfg: cfg}
}

// RequestActivityUpdates emits one classification per interval. Each
// registration replays the script from the start.
func (r *ActivityRecognizer) RequestActivityUpdates(
	interval time.Duration,
	onResult func(domain.MotionClassification),
	_ func(error),
) (func(), error) {
	if r.cfg.Unavailable {
		return nil, domain.ErrProviderUnavailable
	}
	if interval <= 0 {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	go func() {
		defer close(done)
		for i := 0; ; i++ {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			c := r.cfg.Script[i%len(r.cfg.Script)]
			c.Time = r.cfg.Now()
			onResult(c)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}
