// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relic

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// AsHandler converts a Router[Handler] into a Handler: looking up the
// incoming request's method and path, populating the NewContext's path
// parameters / matched / remaining path from the result, and delegating
// to whichever Handler matched. A MethodNotAllowed outcome produces a 405
// with an Allow header; a NotFound outcome (with no fallback installed)
// produces a 404.
func AsHandler(r *Router[Handler]) Handler {
	return func(nc *NewContext) TerminalContext {
		rawPath := ""
		if nc.request != nil && nc.request.URL != nil {
			rawPath = nc.request.URL.Path
		}
		method := Method(nc.request.Method)
		outcome := r.Lookup(method, rawPath)
		switch outcome.Kind {
		case OutcomeMatch:
			nc.pathParams = outcome.Parameters
			nc.matchedPath = outcome.Matched
			nc.remainingPath = outcome.Remaining
			return outcome.Value(nc)
		case OutcomeMethodNotAllowed:
			return nc.Respond(methodNotAllowedResponse(outcome.Allowed))
		default:
			return nc.Respond(notFoundResponse())
		}
	}
}

// HijackedConn is the raw connection handed to an UpgradeCallback once a
// ConnectContext reaches the net/http adapter. Relic implements no
// protocol framing on top of it (WebSocket framing, TLS, etc. are out of
// scope); callers take ownership of Conn once Upgrade is invoked.
type HijackedConn struct {
	Conn net.Conn
	Buf  *bufio.ReadWriter
}

// errProgrammerError wraps a panic recovered while running a Handler, so
// the adapter can report it distinctly from a normal error response. It
// is only produced if no recovery middleware intercepts the panic first.
type errProgrammerError struct {
	recovered any
}

func (e *errProgrammerError) Error() string {
	return fmt.Sprintf("relic: handler panicked: %v", e.recovered)
}

// NewServeHTTPHandler builds a net/http.Handler that bridges *http.Request
// to Relic's Request/NewContext and writes the resulting terminal
// context back onto w, hijacking the connection for a ConnectContext.
// A panic escaping the handler (when no recovery middleware is
// installed) is converted to a 500 rather than crashing the server,
// matching the adapter's role of converting a "programmer error" signal
// into an HTTP reply.
func NewServeHTTPHandler(r *Router[Handler]) http.Handler {
	handler := AsHandler(r)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		relicReq := NewRequest(req.Method, req.URL, map[string][]string(req.Header), NewBody(req.Body, req.Header.Get("Content-Type"), req.ContentLength))
		nc := NewRequestContext(relicReq)

		var result TerminalContext
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err := &errProgrammerError{recovered: rec}
					nc.Logger().Error(err.Error())
					result = nc.Respond(NewResponse(500, nil))
				}
			}()
			result = handler(nc)
		}()

		switch tc := result.(type) {
		case *ResponseContext:
			writeResponse(w, tc.Response)
		case *ConnectContext:
			hijackAndUpgrade(w, tc)
		}
	})
}

func writeResponse(w http.ResponseWriter, resp Response) {
	header := w.Header()
	for k, vals := range resp.Headers {
		for _, v := range vals {
			header.Add(k, v)
		}
	}
	if resp.body != nil {
		if n, ok := resp.body.Length(); ok {
			header.Set("Content-Length", contentLengthHeader(n))
		}
	}
	w.WriteHeader(resp.Status)
	if resp.body == nil {
		return
	}
	data, err := resp.body.ReadAll()
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}

func hijackAndUpgrade(w http.ResponseWriter, tc *ConnectContext) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		http.Error(w, "upgrade not supported", http.StatusInternalServerError)
		return
	}
	conn, buf, err := hj.Hijack()
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusInternalServerError)
		return
	}
	if tc.Upgrade != nil {
		tc.Upgrade(HijackedConn{Conn: conn, Buf: buf})
	}
}

// ServerTimeouts configures the timeouts applied to the underlying
// http.Server by Serve/ServeTLS, mirroring the teacher's own
// slowloris-mitigating defaults.
type ServerTimeouts struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerTimeouts returns conservative production defaults.
func DefaultServerTimeouts() ServerTimeouts {
	return ServerTimeouts{
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ServeOption configures Serve/ServeTLS.
type ServeOption func(*serveConfig)

type serveConfig struct {
	timeouts    ServerTimeouts
	h2c         bool
	diagnostics DiagnosticHandler
}

// WithServerTimeouts overrides the default server timeouts.
func WithServerTimeouts(t ServerTimeouts) ServeOption {
	return func(c *serveConfig) { c.timeouts = t }
}

// WithH2C enables cleartext HTTP/2 (h2c) for Serve. It has no effect on
// ServeTLS, which already negotiates HTTP/2 via ALPN.
func WithH2C(enabled bool) ServeOption {
	return func(c *serveConfig) { c.h2c = enabled }
}

// WithDiagnostics installs a hook for non-fatal configuration signals
// emitted by Serve, such as h2c being enabled.
func WithDiagnostics(h DiagnosticHandler) ServeOption {
	return func(c *serveConfig) { c.diagnostics = h }
}

// Serve starts an HTTP server for r on addr, blocking until it returns an
// error (as http.Server.ListenAndServe does).
func Serve(addr string, r *Router[Handler], opts ...ServeOption) error {
	cfg := serveConfig{timeouts: DefaultServerTimeouts()}
	for _, opt := range opts {
		opt(&cfg)
	}
	var handler http.Handler = NewServeHTTPHandler(r)
	if cfg.h2c {
		emitDiagnostic(cfg.diagnostics, "h2c_enabled", "serving cleartext HTTP/2 via h2c")
		handler = h2c.NewHandler(handler, &http2.Server{})
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.timeouts.ReadHeaderTimeout,
		ReadTimeout:       cfg.timeouts.ReadTimeout,
		WriteTimeout:      cfg.timeouts.WriteTimeout,
		IdleTimeout:       cfg.timeouts.IdleTimeout,
	}
	return srv.ListenAndServe()
}

// ServeTLS starts an HTTPS server for r on addr using certFile/keyFile.
func ServeTLS(addr, certFile, keyFile string, r *Router[Handler], opts ...ServeOption) error {
	cfg := serveConfig{timeouts: DefaultServerTimeouts()}
	for _, opt := range opts {
		opt(&cfg)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServeHTTPHandler(r),
		ReadHeaderTimeout: cfg.timeouts.ReadHeaderTimeout,
		ReadTimeout:       cfg.timeouts.ReadTimeout,
		WriteTimeout:      cfg.timeouts.WriteTimeout,
		IdleTimeout:       cfg.timeouts.IdleTimeout,
	}
	return srv.ListenAndServeTLS(certFile, keyFile)
}
