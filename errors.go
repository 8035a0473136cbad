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

import "errors"

// Registration-time errors, returned by PathTrie.Add/Use/Attach and the
// Router methods built on top of them.
var (
	// ErrDuplicateValue is returned when a path is registered twice
	// against the same trie position.
	ErrDuplicateValue = errors.New("relic: a value is already registered at this path")

	// ErrConflictingParameter is returned when two registrations disagree
	// on the parameter name bound at the same depth (e.g. ":id" vs
	// ":slug" under the same parent).
	ErrConflictingParameter = errors.New("relic: conflicting parameter name at this path segment")

	// ErrConflictingChildren is returned when a registration or Attach
	// would put a parameter child beside a wildcard child, or a "**" tail
	// beside either of them, at the same position, which the trie does not
	// allow.
	ErrConflictingChildren = errors.New("relic: conflicting child kinds at this path segment")

	// ErrConflictingValue is returned by Attach when both sides of a join
	// already hold a value, or both already hold a tail. Differing
	// parameter names at a join yield ErrConflictingParameter instead.
	ErrConflictingValue = errors.New("relic: conflicting values at the attach join")

	// ErrMalformedPattern is returned when a path pattern uses "*" or
	// "**" incorrectly (e.g. "**" not as the final segment, or a stray
	// "*" embedded inside a literal segment).
	ErrMalformedPattern = errors.New("relic: malformed path pattern")
)

// Context state-machine misuse errors.
var (
	// ErrBodyAlreadyRead is returned by Body.ReadAll once the body has
	// already been consumed by an earlier ReadAll call.
	ErrBodyAlreadyRead = errors.New("relic: request body has already been read")
)

// Method-dispatch errors surfaced through Router.
var (
	// ErrMethodAlreadyRegistered is returned by Router.Add when the
	// method (or ANY) is already registered at the given path.
	ErrMethodAlreadyRegistered = errors.New("relic: method already registered at this path")
)
