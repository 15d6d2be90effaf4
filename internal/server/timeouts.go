package server

import "time"

// HTTP server limits. Request bodies are small JSON documents, so reads are kept short.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 90 * time.Second
)

// shutdownTimeout bounds graceful shutdown of every component; tests shorten it.
var shutdownTimeout = 10 * time.Second
