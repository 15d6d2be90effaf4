package http

import nethttp "net/http"

// RouteRegistrar mounts a group of routes on a mux.
type RouteRegistrar interface {
	Register(mux *nethttp.ServeMux)
}

// NewRouter registers every route group on a fresh ServeMux.
func NewRouter(groups ...RouteRegistrar) nethttp.Handler {
	mux := nethttp.NewServeMux()
	for _, g := range groups {
		if g == nil {
			continue
		}
		g.Register(mux)
	}
	return mux
}
