package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// FakeServer stands in for the server's HTTP listener. ListenErr is returned
// from ListenAndServe; when Hold is set, Shutdown waits for it to close or for
// ctx to expire.
type FakeServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Hold        chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

// ClosedServer returns a fake that reports a clean close from ListenAndServe.
func ClosedServer() *FakeServer {
	return &FakeServer{AddrVal: ":0", HandlerVal: http.NewServeMux(), ListenErr: http.ErrServerClosed}
}

// HeldServer returns a fake whose Shutdown blocks until the returned channel closes.
func HeldServer() (*FakeServer, chan struct{}) {
	hold := make(chan struct{})
	return &FakeServer{AddrVal: ":0", HandlerVal: http.NewServeMux(), Hold: hold}, hold
}

func (f *FakeServer) ListenAndServe() error {
	f.listens.Add(1)
	return f.ListenErr
}

func (f *FakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns.Add(1)
	if f.Hold == nil {
		return f.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.Hold:
		return f.ShutdownErr
	}
}

func (f *FakeServer) Addr() string          { return f.AddrVal }
func (f *FakeServer) Handler() http.Handler { return f.HandlerVal }

// Listens reports how many times ListenAndServe ran.
func (f *FakeServer) Listens() int { return int(f.listens.Load()) }

// Shutdowns reports how many times Shutdown ran.
func (f *FakeServer) Shutdowns() int { return int(f.shutdowns.Load()) }
