package simulated

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// Ensure LocationProvider implements the interface.
var _ driven.LocationProvider = (*LocationProvider)(nil)

// DefaultStepMeters is the distance covered between two simulated fixes.
const DefaultStepMeters = 12.0

const metersPerDegree = 111_320.0

// LocationConfig configures the simulated location provider.
type LocationConfig struct {
	// Latitude and Longitude are the start of the simulated track.
	Latitude  float64
	Longitude float64

	// StepMeters is the distance between consecutive fixes.
	StepMeters float64

	// Unavailable makes every call fail with domain.ErrProviderUnavailable.
	Unavailable bool

	// NoInitialFix makes LastKnown report no fix until the first update.
	NoInitialFix bool

	// Now overrides the clock. Optional.
	Now func() time.Time
}

// LocationProvider walks a slow circle around its starting point.
type LocationProvider struct {
	cfg LocationConfig

	mu      sync.Mutex
	last    domain.Position
	hasFix  bool
	heading float64
	active  int
}

// NewLocationProvider creates a simulated location provider.
func NewLocationProvider(cfg LocationConfig) *LocationProvider {
	if cfg.StepMeters <= 0 {
		cfg.StepMeters = DefaultStepMeters
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	p := &LocationProvider{cfg: cfg}
	if !cfg.NoInitialFix {
		p.last = domain.Position{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			Accuracy:  accuracyMeters(domain.AccuracyBalanced),
			Time:      cfg.Now(),
		}
		p.hasFix = true
	}
	return p
}

// LastKnown returns the most recent fix.
func (p *LocationProvider) LastKnown(ctx context.Context) (domain.Position, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Position{}, false, err
	}
	if p.cfg.Unavailable {
		return domain.Position{}, false, domain.ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasFix, nil
}

// RequestUpdates starts emitting fixes no faster than req.MinInterval.
// The unregister function waits for the emitting goroutine to exit, so
// no callback runs once it returns.
func (p *LocationProvider) RequestUpdates(
	req domain.LocationRequest,
	onFix func(domain.Position),
	_ func(error),
) (func(), error) {
	if p.cfg.Unavailable {
		return nil, domain.ErrProviderUnavailable
	}
	if !req.Accuracy.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	limiter := rate.NewLimiter(every(req.MinInterval), 1)

	p.mu.Lock()
	p.active++
	p.mu.Unlock()

	go func() {
		defer close(done)
		for {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			onFix(p.advance(req.Accuracy))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			p.mu.Lock()
			p.active--
			p.mu.Unlock()
			logger.Debug("simulated location: listener removed")
		})
	}, nil
}

// Listeners returns the number of registered update listeners.
func (p *LocationProvider) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// advance moves one step along the track and records the new fix.
func (p *LocationProvider) advance(tier domain.AccuracyTier) domain.Position {
	p.mu.Lock()
	defer p.mu.Unlock()

	origin := p.last
	if !p.hasFix {
		origin = domain.Position{Latitude: p.cfg.Latitude, Longitude: p.cfg.Longitude}
	}

	// Turn a little every step so the track bends back on itself.
	p.heading = math.Mod(p.heading+math.Pi/18, 2*math.Pi)
	dLat := p.cfg.StepMeters * math.Cos(p.heading) / metersPerDegree
	dLon := p.cfg.StepMeters * math.Sin(p.heading) /
		(metersPerDegree * math.Max(math.Cos(origin.Latitude*math.Pi/180), 0.01))

	p.last = domain.Position{
		Latitude:  origin.Latitude + dLat,
		Longitude: origin.Longitude + dLon,
		Accuracy:  accuracyMeters(tier),
		Time:      p.cfg.Now(),
	}
	p.hasFix = true
	return p.last
}

func accuracyMeters(tier domain.AccuracyTier) float64 {
	switch tier {
	case domain.AccuracyHigh:
		return 5
	case domain.AccuracyBalanced:
		return 40
	default:
		return 500
	}
}

// every converts an interval into a limiter rate. Zero means unthrottled.
func every(interval time.Duration) rate.Limit {
	if interval <= 0 {
		return rate.Inf
	}
	return rate.Every(interval)
}
