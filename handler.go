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

// Handler transitions a NewContext to a terminal state by calling Respond
// or Connect on it (directly, or through further-nested handler calls).
// Because TerminalContext is only implemented by *ResponseContext and
// *ConnectContext, a Handler body that forgets to transition the context
// simply fails to compile.
type Handler func(*NewContext) TerminalContext

// Middleware wraps a Handler to produce another Handler. It is the
// Handler instantiation of the generic Transform[V] the trie composes;
// Router[Handler].Use registers middleware this way.
type Middleware = Transform[Handler]

// Chain composes middlewares around h in registration order, so that
// Chain(h, A, B)(ctx) invokes A(B(h))(ctx) — the same "last-registered
// wraps innermost" rule the trie itself applies via foldTransforms, kept
// here as a convenience for composing a handful of middlewares without a
// Router.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
