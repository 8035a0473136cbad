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

// Package path implements NormalizedPath, an immutable, comparable
// representation of a URL path split into its non-empty segments.
package path

import "strings"

// NormalizedPath is an immutable sequence of non-empty path segments
// derived from a raw URL path. Leading, trailing, and repeated slashes
// collapse away during normalization, so "/a//b/" and "a/b" both produce
// the same two-segment path.
type NormalizedPath struct {
	segments []string
}

// New splits raw on "/" and drops empty segments, producing a
// NormalizedPath. It never returns an error: any raw string, including
// the empty string or "/", produces a valid (possibly empty) path.
func New(raw string) NormalizedPath {
	parts := strings.Split(raw, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return NormalizedPath{segments: segments}
}

// FromSegments builds a NormalizedPath directly from an already-split,
// already-non-empty segment list. The caller owns segs; FromSegments
// copies it so the resulting NormalizedPath stays immutable.
func FromSegments(segs []string) NormalizedPath {
	if len(segs) == 0 {
		return NormalizedPath{}
	}
	cp := make([]string, len(segs))
	copy(cp, segs)
	return NormalizedPath{segments: cp}
}

// Segments returns the path's segments. The returned slice is the path's
// own storage, not a copy: it is safe to read but must not be mutated, as
// that would change this NormalizedPath and every copy of it.
func (p NormalizedPath) Segments() []string {
	return p.segments
}

// Len returns the number of segments.
func (p NormalizedPath) Len() int {
	return len(p.segments)
}

// Empty reports whether the path has zero segments (the root path "/").
func (p NormalizedPath) Empty() bool {
	return len(p.segments) == 0
}

// String renders the path back into its canonical slash-joined form,
// always beginning with a leading slash.
func (p NormalizedPath) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.segments, "/")
}

// Equal reports whether two NormalizedPath values have identical segments.
func (p NormalizedPath) Equal(other NormalizedPath) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}
