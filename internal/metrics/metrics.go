package metrics

import (
	"maps"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

type opKey struct{ op, outcome string }

// Recorder keeps in-memory counters for provider calls, catalog refreshes, and
// carousel edits. When built by Setup it also feeds OpenTelemetry instruments.
// A nil *Recorder discards everything.
type Recorder struct {
	mu            sync.Mutex
	providers     map[string]*Snapshot
	ops           map[opKey]int
	promotions    int
	refreshes     int
	refreshErrors int
	catalog       map[string]int

	inst *instruments
}

func NewRecorder() *Recorder {
	return &Recorder{
		providers: make(map[string]*Snapshot),
		ops:       make(map[opKey]int),
		catalog:   make(map[string]int),
	}
}

// RecordProviderAttempt counts one upstream call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	s := r.providerLocked(provider)
	s.Calls++
	s.LastCallLatency = d
	if err != nil {
		s.Errors++
	}
	r.mu.Unlock()

	attr := attribute.String(AttrProvider, provider)
	r.inst.add(mProviderAttempts, attr)
	r.inst.observe(mProviderDuration, d, attr)
	if err != nil {
		r.inst.add(mProviderErrors, attr)
	}
}

// RecordRateLimit counts a throttled upstream response. A zero retryAfter keeps the previous hint.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	s := r.providerLocked(provider)
	s.RateLimitHits++
	if retryAfter > 0 {
		s.LastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	attr := attribute.String(AttrProvider, provider)
	r.inst.add(mRateLimitHits, attr)
	if retryAfter > 0 {
		r.inst.observe(mRetryAfter, retryAfter, attr)
	}
}

// RecordRefreshCycle counts one catalog refresh.
func (r *Recorder) RecordRefreshCycle(d time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refreshes++
	if err != nil {
		r.refreshErrors++
	}
	r.mu.Unlock()

	r.inst.add(mRefreshCycles)
	r.inst.observe(mRefreshDuration, d)
	if err != nil {
		r.inst.add(mRefreshErrors)
	}
}

// RecordCatalogSize stores how many items a catalog resource holds after a successful load.
func (r *Recorder) RecordCatalogSize(resource string, size int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.catalog[resource] = size
	r.mu.Unlock()
}

// RecordCarouselOp counts one carousel editor operation by name and outcome.
func (r *Recorder) RecordCarouselOp(op, outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ops[opKey{op, outcome}]++
	r.mu.Unlock()

	r.inst.add(mCarouselOps, attribute.String(AttrOperation, op), attribute.String(AttrOutcome, outcome))
}

// RecordPromotion counts a backup entry promoted into the live section.
func (r *Recorder) RecordPromotion() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.promotions++
	r.mu.Unlock()

	r.inst.add(mCarouselPromotion)
}

// RecordHTTPRequest is exported only; nothing is kept in memory.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if r == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	r.inst.add(mHTTPRequests, attrs...)
	r.inst.observe(mHTTPDuration, d, attrs...)
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.providers[provider]; ok {
		return *s
	}
	return Snapshot{}
}

func (r *Recorder) ProviderCalls(provider string) int            { return r.Snapshot(provider).Calls }
func (r *Recorder) ProviderErrors(provider string) int           { return r.Snapshot(provider).Errors }
func (r *Recorder) RateLimitHits(provider string) int            { return r.Snapshot(provider).RateLimitHits }
func (r *Recorder) LastRetryAfter(provider string) time.Duration { return r.Snapshot(provider).LastRetryAfter }

// CarouselOps returns how many times op finished with outcome.
func (r *Recorder) CarouselOps(op, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ops[opKey{op, outcome}]
}

func (r *Recorder) Promotions() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.promotions
}

// RefreshCycles returns total and failed refresh counts.
func (r *Recorder) RefreshCycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes, r.refreshErrors
}

// CatalogSizes returns a copy of the last recorded size per catalog resource.
func (r *Recorder) CatalogSizes() map[string]int {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.catalog)
}

func (r *Recorder) providerLocked(provider string) *Snapshot {
	s, ok := r.providers[provider]
	if !ok {
		s = &Snapshot{}
		r.providers[provider] = s
	}
	return s
}
