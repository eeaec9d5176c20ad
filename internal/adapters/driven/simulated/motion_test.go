package simulated

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

func TestActivityRecognizer_ReplaysScript(t *testing.T) {
	script := []domain.MotionClassification{
		{Activities: []domain.DetectedActivity{{Kind: domain.ActivityStill, Confidence: 1}}},
		{Activities: []domain.DetectedActivity{{Kind: domain.ActivityWalking, Confidence: 0.7}}},
	}
	r := NewActivityRecognizer(MotionConfig{Script: script})

	var mu sync.Mutex
	var kinds []domain.ActivityKind
	unregister, err := r.RequestActivityUpdates(time.Millisecond, func(c domain.MotionClassification) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, c.MostProbable().Kind)
		assert.False(t, c.Time.IsZero())
	}, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(kinds) >= 3
	}, time.Second, time.Millisecond)
	unregister()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ActivityKind{domain.ActivityStill, domain.ActivityWalking, domain.ActivityStill}, kinds[:3])
}

func TestActivityRecognizer_Unavailable(t *testing.T) {
	r := NewActivityRecognizer(MotionConfig{Unavailable: true})

	_, err := r.RequestActivityUpdates(time.Millisecond, func(domain.MotionClassification) {}, nil)

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestActivityRecognizer_InvalidInterval(t *testing.T) {
	r := NewActivityRecognizer(MotionConfig{})

	_, err := r.RequestActivityUpdates(0, func(domain.MotionClassification) {}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultScript_WalkingEntry(t *testing.T) {
	best := DefaultScript[1].MostProbable()

	assert.Equal(t, domain.ActivityWalking, best.Kind)
	assert.Equal(t, 0.7, best.Confidence)
}
