package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// fakeLocation is a LocationProvider driven by the test.
type fakeLocation struct {
	mu            sync.Mutex
	last          domain.Position
	hasFix        bool
	lastErr       error
	refuse        error
	onFix         []func(domain.Position)
	onError       []func(error)
	registered    int
	unregistered  int
	lastRequested domain.LocationRequest
}

func (f *fakeLocation) LastKnown(_ context.Context) (domain.Position, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.hasFix, f.lastErr
}

func (f *fakeLocation) RequestUpdates(
	req domain.LocationRequest,
	onFix func(domain.Position),
	onError func(error),
) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refuse != nil {
		return nil, f.refuse
	}
	f.registered++
	f.lastRequested = req
	idx := len(f.onFix)
	f.onFix = append(f.onFix, onFix)
	f.onError = append(f.onError, onError)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.unregistered++
			f.onFix[idx] = nil
		})
	}, nil
}

// emit delivers p to every registered listener.
func (f *fakeLocation) emit(p domain.Position) {
	f.mu.Lock()
	listeners := append([]func(domain.Position){}, f.onFix...)
	f.mu.Unlock()
	for _, l := range listeners {
		if l != nil {
			l(p)
		}
	}
}

// fail reports err to every registered listener.
func (f *fakeLocation) fail(err error) {
	f.mu.Lock()
	listeners := append([]func(error){}, f.onError...)
	f.mu.Unlock()
	for _, l := range listeners {
		if l != nil {
			l(err)
		}
	}
}

func (f *fakeLocation) counts() (registered, unregistered int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered, f.unregistered
}

// fakeRecognizer is an ActivityRecognizer driven by the test.
type fakeRecognizer struct {
	mu           sync.Mutex
	refuse       error
	listeners    []func(domain.MotionClassification)
	interval     time.Duration
	unregistered int
}

func (f *fakeRecognizer) RequestActivityUpdates(
	interval time.Duration,
	onResult func(domain.MotionClassification),
	_ func(error),
) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refuse != nil {
		return nil, f.refuse
	}
	f.interval = interval
	idx := len(f.listeners)
	f.listeners = append(f.listeners, onResult)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.unregistered++
			f.listeners[idx] = nil
		})
	}, nil
}

func (f *fakeRecognizer) emit(c domain.MotionClassification) {
	f.mu.Lock()
	listeners := append([]func(domain.MotionClassification){}, f.listeners...)
	f.mu.Unlock()
	for _, l := range listeners {
		if l != nil {
			l(c)
		}
	}
}

func (f *fakeRecognizer) unregisterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unregistered
}

// fakeGeocoder answers every lookup from a function.
type fakeGeocoder struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
	answer   func(ctx context.Context, lat, lon float64) (domain.AddressCandidates, error)
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64, maxResults int) (domain.AddressCandidates, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	answer := f.answer
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if answer == nil {
		return domain.AddressCandidates{{Lines: []string{"somewhere"}}}, nil
	}
	return answer(ctx, lat, lon)
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// peak is the largest number of lookups that ran at the same time.
func (f *fakeGeocoder) peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

// recordingRenderer records every call it receives.
type recordingRenderer struct {
	mu            sync.Mutex
	displays      map[string][]string
	notifications []string
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{displays: make(map[string][]string)}
}

func (r *recordingRenderer) Display(slot, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays[slot] = append(r.displays[slot], text)
}

func (r *recordingRenderer) NotifyError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, message)
}

func (r *recordingRenderer) values(slot string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.displays[slot]...)
}

func (r *recordingRenderer) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.displays {
		n += len(v)
	}
	return n
}

func (r *recordingRenderer) notified() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notifications...)
}

// recordingStore is an in-package DiagnosticsStore.
type recordingStore struct {
	mu      sync.Mutex
	entries []domain.Diagnostic
	err     error
}

func (s *recordingStore) Record(_ context.Context, d domain.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, d)
	return nil
}

func (s *recordingStore) Recent(_ context.Context, limit int) ([]domain.Diagnostic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Diagnostic, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *recordingStore) all() []domain.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Diagnostic(nil), s.entries...)
}

func pos(lat, lon float64) domain.Position {
	return domain.Position{Latitude: lat, Longitude: lon}
}
