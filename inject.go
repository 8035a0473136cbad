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

// HandlerObject is an injectable unit that registers one or more routes
// on a Router[Handler] when assembled into it. It lets handlers be
// packaged as values (e.g. a struct holding a database handle) instead of
// bare functions.
type HandlerObject interface {
	InjectInto(r *Router[Handler]) error
}

// MiddlewareObject is an injectable unit that registers middleware on a
// Router[Handler] when assembled into it.
type MiddlewareObject interface {
	InjectInto(r *Router[Handler]) error
}

// Inject calls InjectInto on each object in order, stopping at the first
// error.
func Inject(r *Router[Handler], objs ...interface{ InjectInto(*Router[Handler]) error }) error {
	for _, obj := range objs {
		if err := obj.InjectInto(r); err != nil {
			return err
		}
	}
	return nil
}

// DefaultHandlerObject is an embeddable HandlerObject that registers
// Fn for Method at Path ("/" by default) when injected, letting callers
// override only what they need.
type DefaultHandlerObject struct {
	Method Method
	Path   string
	Fn     Handler
}

// InjectInto registers d.Fn for d.Method at d.Path (defaulting to GET "/"
// when unset).
func (d DefaultHandlerObject) InjectInto(r *Router[Handler]) error {
	method := d.Method
	if method == "" {
		method = GET
	}
	p := d.Path
	if p == "" {
		p = "/"
	}
	return r.Add(method, p, d.Fn)
}

// DefaultMiddlewareObject is an embeddable MiddlewareObject that registers
// Fn at Path ("/" by default) when injected.
type DefaultMiddlewareObject struct {
	Path string
	Fn   Middleware
}

// InjectInto registers d.Fn at d.Path (defaulting to "/" when unset).
func (d DefaultMiddlewareObject) InjectInto(r *Router[Handler]) error {
	p := d.Path
	if p == "" {
		p = "/"
	}
	return r.Use(p, d.Fn)
}
