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

// Package relic implements the routing and request-handling core of an
// HTTP server framework: a generic path trie, a method-aware router built
// on top of it, and a linear Context state machine modeling a single
// request's lifecycle from arrival to response or protocol upgrade.
//
// The trie and router are parameterized over the value they store, so the
// same PathTrie/Router implementation can hold Handler pipelines, plain
// data, or anything else a caller needs to associate with a path.
//
// Relic does not parse HTTP itself; AsHandler and the Serve/ServeTLS
// helpers in adapter.go are the thin net/http-facing layer that bridges a
// Router[Handler] to a real listener.
package relic
