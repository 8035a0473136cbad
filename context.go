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
	"io"
	"log/slog"
	"sync"

	"github.com/serverpod/relic-sub001/path"
)

// noopLogger is the logger every request context starts with; it discards
// everything, and nothing in this package replaces it. Matches the teacher's noopLogger
// singleton pattern used to avoid nil-checking *slog.Logger everywhere.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// propertyStore holds per-request property values keyed by a
// ContextProperty's own identity. It is guarded by a mutex because
// middleware may run concurrently with itself across goroutines spawned
// by a handler (though the common case is sequential).
type propertyStore struct {
	mu     sync.Mutex
	values map[any]any
}

func newPropertyStore() *propertyStore {
	return &propertyStore{values: make(map[any]any)}
}

func (s *propertyStore) get(key any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *propertyStore) set(key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// contextBase holds the fields common to every stage of a request's
// lifecycle. It is shared (by pointer) across the NewContext that begins
// a request and whatever terminal context a handler produces from it, so
// reading a property set in one stage remains visible in the next.
type contextBase struct {
	request       *Request
	pathParams    map[string]string
	matchedPath   path.NormalizedPath
	remainingPath path.NormalizedPath
	logger        *slog.Logger
	store         *propertyStore
}

// Context is implemented by every stage of the request lifecycle
// (*NewContext, *ResponseContext, *ConnectContext). It exists so
// ContextProperty's Get/Set can operate uniformly across all three
// without exposing contextBase itself.
type Context interface {
	unwrap() *contextBase
}

// TerminalContext is implemented only by the context types a Handler may
// legally return: *ResponseContext and *ConnectContext. *NewContext does
// NOT implement it, so the Go compiler rejects a handler body that tries
// to return its input context unchanged instead of calling Respond or
// Connect.
type TerminalContext interface {
	Context
	terminal()
}

// Request returns the request this context (at any stage) was created
// for.
func (b *contextBase) Request() *Request { return b.request }

// PathParameters returns the named path parameters captured by the
// router's lookup, e.g. {"id": "42"} for a route registered as
// "/users/:id".
func (b *contextBase) PathParameters() map[string]string { return b.pathParams }

// MatchedPath returns the portion of the request path consumed by the
// matched route (everything up to, but not including, a "**" remainder).
func (b *contextBase) MatchedPath() path.NormalizedPath { return b.matchedPath }

// RemainingPath returns the unconsumed suffix when the match came from a
// "**" tail registration; it is empty for an exact match.
func (b *contextBase) RemainingPath() path.NormalizedPath { return b.remainingPath }

// Logger returns the request-scoped logger. NewRequestContext installs the
// no-op noopLogger and no option replaces it, so its output is discarded.
func (b *contextBase) Logger() *slog.Logger { return b.logger }

// NewContext is the entry point of a request's lifecycle: it carries the
// incoming Request and nothing else yet. A Handler must transition it to
// a terminal state by calling Respond or Connect; NewContext itself
// cannot be returned from a Handler, since it does not implement
// TerminalContext.
type NewContext struct {
	*contextBase
}

func (c *NewContext) unwrap() *contextBase { return c.contextBase }

// NewRequestContext creates the NewContext that begins one request's
// lifecycle.
func NewRequestContext(req *Request) *NewContext {
	return &NewContext{contextBase: &contextBase{
		request: req,
		logger:  noopLogger,
		store:   newPropertyStore(),
	}}
}

// Respond transitions to ResponseContext, the terminal state produced
// when a handler answers the request directly.
func (c *NewContext) Respond(resp Response) *ResponseContext {
	return &ResponseContext{contextBase: c.contextBase, Response: resp}
}

// Connect transitions to ConnectContext, the terminal state produced when
// a handler upgrades the connection to another protocol (e.g. WebSocket).
// Relic does not implement WebSocket framing itself (out of scope); cb
// receives the raw hijacked connection from the net/http adapter.
func (c *NewContext) Connect(cb UpgradeCallback) *ConnectContext {
	return &ConnectContext{contextBase: c.contextBase, Upgrade: cb}
}

// ResponseContext is a terminal state: the request has been answered with
// an HTTP response. Respond may be called again on it to replace the
// response (e.g. error-handling middleware overriding a downstream
// handler's reply), producing a new ResponseContext sharing the same
// base.
type ResponseContext struct {
	*contextBase
	Response Response
}

func (c *ResponseContext) unwrap() *contextBase { return c.contextBase }
func (c *ResponseContext) terminal()            {}

// Respond replaces this context's response, returning a new
// ResponseContext. This is how outer middleware (e.g. recovery, error
// translation) can override an inner handler's reply.
func (c *ResponseContext) Respond(resp Response) *ResponseContext {
	return &ResponseContext{contextBase: c.contextBase, Response: resp}
}

// UpgradeCallback is invoked by the net/http adapter with the hijacked
// connection once a ConnectContext reaches the adapter. Relic only
// carries the callback through the state machine; it does not implement
// any protocol framing on top of the raw connection.
type UpgradeCallback func(conn HijackedConn)

// ConnectContext is a terminal state: the request has been accepted for a
// protocol upgrade rather than answered with a normal HTTP response.
type ConnectContext struct {
	*contextBase
	Upgrade UpgradeCallback
}

func (c *ConnectContext) unwrap() *contextBase { return c.contextBase }
func (c *ConnectContext) terminal()            {}

// ContextProperty is a typed, per-request property slot. Each call to
// NewProperty creates a distinct slot (its own pointer identity is the
// map key), so two properties sharing the same T never collide, and no
// string-keyed registry is needed.
type ContextProperty[T any] struct {
	// The byte gives the struct a non-zero size: Go may hand out one
	// address for distinct zero-size allocations, which would make two
	// properties of the same T share a slot.
	_ byte
}

// NewProperty creates a fresh ContextProperty[T]. Callers typically store
// the result in a package-level variable and share it between the
// middleware that sets it and the handler that reads it.
func NewProperty[T any]() *ContextProperty[T] {
	return &ContextProperty[T]{}
}

// Get reads the property's value from c, reporting whether it was ever
// set.
func (p *ContextProperty[T]) Get(c Context) (T, bool) {
	v, ok := c.unwrap().store.get(p)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Set stores value under this property on c. It is visible from any later
// stage of the same request (the property store is shared by pointer
// across NewContext/ResponseContext/ConnectContext).
func (p *ContextProperty[T]) Set(c Context, value T) {
	c.unwrap().store.set(p, value)
}
