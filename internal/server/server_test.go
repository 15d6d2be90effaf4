package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/refresher"
	"github.com/preston-bernstein/ops-console-service/internal/seed"
	"github.com/preston-bernstein/ops-console-service/internal/testutil"
)

type stubRefresher struct {
	mu           sync.Mutex
	startCalls   int
	stopCalls    int
	refreshCalls int
	err          error
	status       refresher.Status
}

func (r *stubRefresher) Start(ctx context.Context) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
}

func (r *stubRefresher) Stop(ctx context.Context) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCalls++
	return r.err
}

func (r *stubRefresher) Refresh(ctx context.Context) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshCalls++
	return nil
}

func (r *stubRefresher) Status() refresher.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *stubRefresher) calls() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startCalls, r.stopCalls
}

type stubWatcher struct {
	startCalls int
	stopCalls  int
}

func (w *stubWatcher) Start(ctx context.Context) error {
	w.startCalls++
	return nil
}

func (w *stubWatcher) Stop() error {
	w.stopCalls++
	return nil
}

func sampleProvider() testutil.GoodProvider {
	return testutil.GoodProvider{
		Rules:    map[string]bool{"blockWithdrawals": true, "blockCasino": false},
		Channels: testutil.SampleChannels(),
		Purposes: testutil.SamplePurposes(),
	}
}

func TestServerServesHealthKYCAndCarousel(t *testing.T) {
	srv, err := newServerWithProvider(config.Config{}, nil, sampleProvider())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	router := srv.Handler()

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)

	if err := srv.refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/kyc/state", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var state kyc.State
	testutil.DecodeJSON(t, rr, &state)
	if !state.Ready() || !state.BlockingRules.Data["blockWithdrawals"].IsDisabled {
		t.Fatalf("unexpected kyc state %+v", state)
	}

	rr = testutil.Serve(router, http.MethodPost, "/carousel/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	if srv.sessions.Len() != 1 {
		t.Fatalf("expected one open session, got %d", srv.sessions.Len())
	}

	rr = testutil.Serve(router, http.MethodPost, "/admin/catalog/cancelReasons", strings.NewReader(`{"name":"x"}`))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestServerHandlesProviderErrorGracefully(t *testing.T) {
	srv, err := newServerWithProvider(config.Config{}, nil, testutil.ErrProvider{Err: errors.New("boom")})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.refresher.Refresh(ctx); err == nil {
		t.Fatalf("expected refresh error")
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/kyc/state", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var state kyc.State
	testutil.DecodeJSON(t, rr, &state)
	if state.Purposes.Status != kyc.StatusError || state.Purposes.Error == "" {
		t.Fatalf("expected purposes error state, got %+v", state.Purposes)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:     "0",
		Provider: "fixture",
		Metrics:  config.MetricsConfig{Enabled: false},
	}
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if srv.Handler() == nil || srv.closeProvider == nil {
		t.Fatalf("expected server with handler and provider cleanup")
	}
	srv.closeProvider()
}

func TestNewRejectsUnreadableSeed(t *testing.T) {
	cfg := config.Config{
		Carousel: config.CarouselConfig{SeedPath: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}

func TestNewWatchesSeedFile(t *testing.T) {
	raw, err := yaml.Marshal(seed.File{Entries: seed.Default()})
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	srv, err := New(config.Config{Carousel: config.CarouselConfig{SeedPath: path, WatchSeed: true}}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer srv.closeProvider()
	if srv.watcher == nil {
		t.Fatalf("expected seed watcher")
	}
	if len(srv.seeds.Entries()) != len(seed.Default()) {
		t.Fatalf("expected seed loaded from file")
	}
	if err := srv.watcher.Stop(); err != nil {
		t.Fatalf("stop watcher: %v", err)
	}

	unwatched, err := New(config.Config{Carousel: config.CarouselConfig{SeedPath: path}}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer unwatched.closeProvider()
	if unwatched.watcher != nil {
		t.Fatalf("expected no watcher when disabled")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	r := &stubRefresher{}
	w := &stubWatcher{}
	httpSrv := &testutil.FakeServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, r)
	srv.watcher = w
	closed := false
	srv.closeProvider = func() { closed = true }
	srv.gracefulShutdown()

	if _, stops := r.calls(); stops != 1 {
		t.Fatalf("expected refresher Stop to be called once, got %d", stops)
	}
	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.Shutdowns())
	}
	if w.stopCalls != 1 || !closed {
		t.Fatalf("expected watcher stopped and provider closed")
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	r := &stubRefresher{}
	blocking, hold := testutil.HeldServer()
	defer close(hold)

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, r)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.Shutdowns())
	}
	if _, stops := r.calls(); stops != 1 {
		t.Fatalf("expected refresher Stop to be called once, got %d", stops)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenRefresherStopErrors(t *testing.T) {
	r := &stubRefresher{err: errors.New("stop failure")}
	httpSrv := &testutil.FakeServer{ShutdownErr: errors.New("shutdown failure")}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, r)
	srv.gracefulShutdown()

	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.Shutdowns())
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.FakeServer{ListenErr: errors.New("listen failure")}, &stubRefresher{})

	stopCalled := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &stubRefresher{}
	w := &stubWatcher{}
	httpSrv := testutil.ClosedServer()

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, r)
	srv.watcher = w

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	starts, stops := r.calls()
	if starts != 1 || stops != 1 {
		t.Fatalf("expected refresher start/stop once, got %d/%d", starts, stops)
	}
	if w.startCalls != 1 || w.stopCalls != 1 {
		t.Fatalf("expected watcher start/stop once, got %d/%d", w.startCalls, w.stopCalls)
	}
	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.Shutdowns())
	}
}
