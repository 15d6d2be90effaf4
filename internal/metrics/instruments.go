package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names as exported to Prometheus and OTLP.
const (
	mHTTPRequests      = "http_requests_total"
	mHTTPDuration      = "http_request_duration_ms"
	mProviderAttempts  = "provider_attempts_total"
	mProviderErrors    = "provider_errors_total"
	mProviderDuration  = "provider_duration_ms"
	mRateLimitHits     = "provider_rate_limit_hits_total"
	mRetryAfter        = "provider_retry_after_ms"
	mRefreshCycles     = "kyc_refresh_cycles_total"
	mRefreshErrors     = "kyc_refresh_errors_total"
	mRefreshDuration   = "kyc_refresh_duration_ms"
	mCatalogItems      = "kyc_catalog_items"
	mCarouselOps       = "carousel_operations_total"
	mCarouselPromotion = "carousel_promotions_total"
)

var (
	counterNames = []string{
		mHTTPRequests, mProviderAttempts, mProviderErrors, mRateLimitHits,
		mRefreshCycles, mRefreshErrors, mCarouselOps, mCarouselPromotion,
	}
	histogramNames = []string{
		mHTTPDuration, mProviderDuration, mRetryAfter, mRefreshDuration,
	}
)

// instruments mirrors Recorder events onto OpenTelemetry instruments.
type instruments struct {
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

func newInstruments(meter metric.Meter, rec *Recorder) (*instruments, error) {
	inst := &instruments{
		counters:   make(map[string]metric.Int64Counter, len(counterNames)),
		histograms: make(map[string]metric.Float64Histogram, len(histogramNames)),
	}
	for _, name := range counterNames {
		c, err := meter.Int64Counter(name)
		if err != nil {
			return nil, err
		}
		inst.counters[name] = c
	}
	for _, name := range histogramNames {
		h, err := meter.Float64Histogram(name)
		if err != nil {
			return nil, err
		}
		inst.histograms[name] = h
	}

	// Catalog sizes are observed from the recorder at collection time.
	_, err := meter.Int64ObservableGauge(mCatalogItems,
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			for resource, size := range rec.CatalogSizes() {
				o.Observe(int64(size), metric.WithAttributes(attribute.String(AttrResource, resource)))
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *instruments) add(name string, attrs ...attribute.KeyValue) {
	if i == nil {
		return
	}
	if c, ok := i.counters[name]; ok {
		c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	}
}

func (i *instruments) observe(name string, d time.Duration, attrs ...attribute.KeyValue) {
	if i == nil {
		return
	}
	if h, ok := i.histograms[name]; ok {
		h.Record(context.Background(), float64(d.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
