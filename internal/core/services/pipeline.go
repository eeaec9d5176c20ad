package services

import (
	"strconv"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// FormatPosition renders a fix as text.
func FormatPosition(p domain.Position) string {
	return p.String()
}

// SelectBest picks the most probable activity of a classification.
func SelectBest(c domain.MotionClassification) domain.DetectedActivity {
	return c.MostProbable()
}

// FormatActivity renders an activity as text.
func FormatActivity(a domain.DetectedActivity) string {
	return a.String()
}

// SelectBestAddress renders the first candidate, or domain.NoAddressText
// when there is none.
func SelectBestAddress(c domain.AddressCandidates) string {
	best, ok := c.Best()
	if !ok {
		return domain.NoAddressText
	}
	return best.String()
}

// AppendCounter suffixes text with its sequence number.
func AppendCounter(text string, n int) string {
	return text + " " + strconv.Itoa(n)
}

// Chain issues a fresh lookup for every position and forwards its result.
// A newer position supersedes a lookup still in flight. Transient lookup
// failures are logged and dropped so the position stream keeps going;
// any other failure terminates the chain.
func Chain(
	positions stream.Stream[domain.Position],
	lookup func(domain.Position) stream.Stream[domain.AddressCandidates],
) stream.Stream[domain.AddressCandidates] {
	return stream.SwitchMap(positions, func(p domain.Position) stream.Stream[domain.AddressCandidates] {
		return stream.Recover(lookup(p), domain.IsTransient, func(err error) {
			logger.Warn("geocoding: skipping %s: %v", p, err)
		})
	})
}
