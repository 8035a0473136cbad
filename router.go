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
	"sync"

	"github.com/serverpod/relic-sub001/cache"
	"github.com/serverpod/relic-sub001/path"
)

// OutcomeKind discriminates the three shapes a Router.Lookup can produce.
type OutcomeKind int

const (
	// OutcomeNotFound means no route, for any method, matched the path.
	OutcomeNotFound OutcomeKind = iota
	// OutcomeMatch means a value was found for the requested method.
	OutcomeMatch
	// OutcomeMethodNotAllowed means the path matched but not for the
	// requested method; Allowed lists the methods that would match.
	OutcomeMethodNotAllowed
)

// Outcome is the result of Router.Lookup.
type Outcome[V any] struct {
	Kind       OutcomeKind
	Value      V
	Parameters map[string]string
	Matched    path.NormalizedPath
	Remaining  path.NormalizedPath
	Allowed    []Method
}

const defaultPathCacheCapacity = 512

// Router is a method-aware wrapper around a pathTrie[MethodMap[V]]:
// routes are registered per method against a path pattern, middleware is
// registered via Use exactly as in the underlying trie (lifted to apply
// to every method at that path), and Lookup resolves both the path and
// the method in one call, returning a three-way Outcome rather than a
// bare hit/miss.
//
// Thread safety: like the teacher router's radix tree, Router's
// registration methods (Add/Any/Use/Attach/Group) must only be called
// during a single-goroutine configuration phase; Lookup is safe for
// concurrent use once configuration is complete.
type Router[V any] struct {
	trie     *pathTrie[MethodMap[V]]
	fallback *V

	cacheMu sync.Mutex
	pathLRU *cache.LruCache[string, path.NormalizedPath]
}

// NewRouter creates an empty Router.
func NewRouter[V any](opts ...RouterOption[V]) *Router[V] {
	pathLRU, err := cache.New[string, path.NormalizedPath](defaultPathCacheCapacity)
	if err != nil {
		panic(err)
	}
	r := &Router[V]{
		trie:    newPathTrie[MethodMap[V]](),
		pathLRU: pathLRU,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouterOption configures a Router at construction time.
type RouterOption[V any] func(*Router[V])

// WithPathCacheCapacity overrides the default normalized-path LRU cache
// size. A capacity of 0 disables caching. A negative capacity is a
// programmer error (matching cache.New's own contract) and panics rather
// than being silently accepted.
func WithPathCacheCapacity[V any](capacity int) RouterOption[V] {
	return func(r *Router[V]) {
		pathLRU, err := cache.New[string, path.NormalizedPath](capacity)
		if err != nil {
			panic(err)
		}
		r.pathLRU = pathLRU
	}
}

func (r *Router[V]) normalize(raw string) path.NormalizedPath {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if p, ok := r.pathLRU.Get(raw); ok {
		return p
	}
	p := path.New(raw)
	r.pathLRU.Put(raw, p)
	return p
}

// ensureMethodMap returns a pointer to the MethodMap stored at rawPath,
// creating an empty one if this is the first registration at that path.
// Unlike the trie's public Add (which errors on a second call at the
// same position), Router needs to add further methods at an
// already-registered path, so it walks/creates nodes directly rather
// than going through pathTrie.Add. A final "**" segment selects the tail
// slot of the node before it instead of that node's value.
func (r *Router[V]) ensureMethodMap(rawPath string) (*MethodMap[V], error) {
	p := r.normalize(rawPath)
	segs := p.Segments()
	if len(segs) > 0 && segs[len(segs)-1] == "**" {
		n, err := r.trie.navigate(segs[:len(segs)-1], true)
		if err != nil {
			return nil, err
		}
		if n.paramChild != nil || n.wildcardChild != nil {
			return nil, ErrConflictingChildren
		}
		if n.tail == nil {
			empty := make(MethodMap[V])
			n.tail = &empty
		}
		return n.tail, nil
	}
	n, err := r.trie.navigate(segs, true)
	if err != nil {
		return nil, err
	}
	if n.value == nil {
		empty := make(MethodMap[V])
		n.value = &empty
	}
	return n.value, nil
}

// Add registers v for method m at rawPath. It fails if m (or ANY) is
// already registered at that exact path, or if rawPath is malformed or
// conflicts with an existing parameter/wildcard registration.
func (r *Router[V]) Add(m Method, rawPath string, v V) error {
	mm, err := r.ensureMethodMap(rawPath)
	if err != nil {
		return err
	}
	if _, exists := (*mm)[ANY]; exists {
		return ErrMethodAlreadyRegistered
	}
	if _, exists := (*mm)[m]; exists {
		return ErrMethodAlreadyRegistered
	}
	(*mm)[m] = v
	return nil
}

// Any registers v to answer every method at rawPath. It fails if any
// method (a concrete one or ANY) is already registered there.
func (r *Router[V]) Any(rawPath string, v V) error {
	mm, err := r.ensureMethodMap(rawPath)
	if err != nil {
		return err
	}
	if len(*mm) > 0 {
		return ErrMethodAlreadyRegistered
	}
	(*mm)[ANY] = v
	return nil
}

// Get, Post, Put, Patch, Delete, Head, Options, Trace, Connect are sugar
// over Add for the corresponding method.
func (r *Router[V]) Get(rawPath string, v V) error     { return r.Add(GET, rawPath, v) }
func (r *Router[V]) Post(rawPath string, v V) error     { return r.Add(POST, rawPath, v) }
func (r *Router[V]) Put(rawPath string, v V) error      { return r.Add(PUT, rawPath, v) }
func (r *Router[V]) Patch(rawPath string, v V) error    { return r.Add(PATCH, rawPath, v) }
func (r *Router[V]) Delete(rawPath string, v V) error   { return r.Add(DELETE, rawPath, v) }
func (r *Router[V]) Head(rawPath string, v V) error     { return r.Add(HEAD, rawPath, v) }
func (r *Router[V]) Options(rawPath string, v V) error  { return r.Add(OPTIONS, rawPath, v) }
func (r *Router[V]) Trace(rawPath string, v V) error    { return r.Add(TRACE, rawPath, v) }
func (r *Router[V]) Connect(rawPath string, v V) error  { return r.Add(CONNECT, rawPath, v) }

// Use registers a value-level Transform at rawPath, lifted to apply to
// every method's value stored there — middleware applies uniformly
// regardless of which method eventually matches.
func (r *Router[V]) Use(rawPath string, t Transform[V]) error {
	p := r.normalize(rawPath)
	lifted := func(mm MethodMap[V]) MethodMap[V] {
		out := make(MethodMap[V], len(mm))
		for method, v := range mm {
			out[method] = t(v)
		}
		return out
	}
	return r.trie.Use(p, lifted)
}

// Attach grafts other's trie at rawPath, sharing structure: routes added
// to other after Attach remain visible through r.
func (r *Router[V]) Attach(rawPath string, other *Router[V]) error {
	p := r.normalize(rawPath)
	return r.trie.Attach(p, other.trie)
}

// Group creates a fresh, empty Router[V] and attaches it at rawPath,
// returning the new router. Because the new router is empty, the merge
// itself cannot conflict; Group fails only when rawPath is malformed or
// clashes with r's existing parameter/wildcard registrations. The two
// routers share their subtree's backing storage, so registrations made on
// either one remain visible through the other.
func (r *Router[V]) Group(rawPath string) (*Router[V], error) {
	sub := NewRouter[V]()
	if err := r.Attach(rawPath, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// SetFallback installs a value returned by Lookup when no route matches
// at all (OutcomeNotFound would otherwise be returned).
func (r *Router[V]) SetFallback(v V) {
	r.fallback = &v
}

// Lookup resolves rawPath and m to an Outcome.
func (r *Router[V]) Lookup(m Method, rawPath string) Outcome[V] {
	p := r.normalize(rawPath)
	res, ok := r.trie.Lookup(p)
	if !ok {
		if r.fallback != nil {
			return Outcome[V]{Kind: OutcomeMatch, Value: *r.fallback, Matched: p}
		}
		return Outcome[V]{Kind: OutcomeNotFound}
	}
	if v, exists := res.Value[m]; exists {
		return Outcome[V]{
			Kind:       OutcomeMatch,
			Value:      v,
			Parameters: res.Parameters,
			Matched:    res.Matched,
			Remaining:  res.Remaining,
		}
	}
	if v, exists := res.Value[ANY]; exists {
		return Outcome[V]{
			Kind:       OutcomeMatch,
			Value:      v,
			Parameters: res.Parameters,
			Matched:    res.Matched,
			Remaining:  res.Remaining,
		}
	}
	return Outcome[V]{
		Kind:    OutcomeMethodNotAllowed,
		Allowed: res.Value.allowed(),
		Matched: res.Matched,
	}
}
