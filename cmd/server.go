package main

import (
	"context"
	"net"
	"net/http"
)

// newServer builds the HTTP server. Every request context derives from a base
// context that is cancelled when Shutdown starts, so long-lived streams end
// instead of holding the shutdown until its deadline.
func newServer(addr string, h http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        addr,
		Handler:     h,
		BaseContext: func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
