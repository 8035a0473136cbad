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
	"fmt"
	"strings"

	"github.com/serverpod/relic-sub001/path"
)

// Transform maps a stored value to a new value of the same type. Transforms
// are how middleware attaches to a trie position: Use registers a
// Transform at a path, and every successful Lookup through or past that
// position folds the transform over the value before returning it.
type Transform[V any] func(V) V

// node is one position in a pathTrie. Thread safety: node mutation
// (through Add/Use/Attach) must only happen during the configuration
// phase, before the trie is used concurrently for Lookup, matching the
// teacher router's documented radix-tree contract.
type node[V any] struct {
	value           *V
	tail            *V
	literalChildren map[string]*node[V]
	paramChild      *paramChild[V]
	wildcardChild   *node[V]
	transforms      []Transform[V]
}

type paramChild[V any] struct {
	name  string
	child *node[V]
}

// LookupResult carries everything a successful PathTrie.Lookup produces.
type LookupResult[V any] struct {
	Value      V
	Parameters map[string]string
	Matched    path.NormalizedPath
	Remaining  path.NormalizedPath
}

// pathTrie is a generic path trie over literal, ":param", "*" (single
// wildcard segment), and "**" (trailing catch-all) segments, with
// literal > parameter > wildcard priority and tail ("**") as a last-resort
// fallback at the nearest matching ancestor.
type pathTrie[V any] struct {
	root *node[V]
}

func newPathTrie[V any]() *pathTrie[V] {
	return &pathTrie[V]{root: &node[V]{}}
}

// transition records what happened when descending past one segment, so
// Lookup can reconstruct exactly which parameter captures belong to a
// prefix of the walked path (needed for tail-fallback truncation).
type transition struct {
	paramName  string
	paramValue string
}

// Add registers v at p. It fails if a value is already present at that
// exact position, if two registrations disagree on a parameter name at
// the same depth, if a parameter and a wildcard are both required at the
// same position, or if the pattern is malformed ("**" not final, or a
// stray "*" embedded in a segment).
func (t *pathTrie[V]) Add(p path.NormalizedPath, v V) error {
	segs := p.Segments()
	cur := t.root
	for i, seg := range segs {
		last := i == len(segs)-1
		kind, name, err := classify(seg)
		if err != nil {
			return err
		}
		if kind == segTail && !last {
			return fmt.Errorf("%w: \"**\" must be the final segment", ErrMalformedPattern)
		}
		switch kind {
		case segTail:
			if cur.paramChild != nil || cur.wildcardChild != nil {
				return ErrConflictingChildren
			}
			if cur.tail != nil {
				return ErrDuplicateValue
			}
			cur.tail = &v
			return nil
		case segWildcard:
			if cur.paramChild != nil {
				return ErrConflictingChildren
			}
			if cur.wildcardChild == nil {
				cur.wildcardChild = &node[V]{}
			}
			cur = cur.wildcardChild
		case segParam:
			if cur.wildcardChild != nil {
				return ErrConflictingChildren
			}
			if cur.paramChild == nil {
				cur.paramChild = &paramChild[V]{name: name, child: &node[V]{}}
			} else if cur.paramChild.name != name {
				return ErrConflictingParameter
			}
			cur = cur.paramChild.child
		default:
			if cur.literalChildren == nil {
				cur.literalChildren = make(map[string]*node[V])
			}
			child, ok := cur.literalChildren[seg]
			if !ok {
				child = &node[V]{}
				cur.literalChildren[seg] = child
			}
			cur = child
		}
	}
	if cur.value != nil {
		return ErrDuplicateValue
	}
	cur.value = &v
	return nil
}

// Use registers a Transform at p, composing with the trie's own priority
// and tail-fallback traversal: every Lookup that passes through or
// terminates at p's node folds this transform over its result. "**" is
// rejected in prefix since a tail has no node of its own to carry
// transforms.
func (t *pathTrie[V]) Use(p path.NormalizedPath, tr Transform[V]) error {
	n, err := t.navigate(p.Segments(), true)
	if err != nil {
		return err
	}
	n.transforms = append(n.transforms, tr)
	return nil
}

// Attach grafts other's trie at p. Wherever the destination position has
// no existing value/tail/children, other's nodes are aliased in directly
// (same maps, same pointers). Where both sides already hold content,
// Attach merges them and returns a conflict error if they cannot be
// reconciled. On success other's root is re-pointed at the join node, so
// registrations made later through either trie land in the same node and
// remain visible through the other.
func (t *pathTrie[V]) Attach(p path.NormalizedPath, other *pathTrie[V]) error {
	dst, err := t.navigate(p.Segments(), true)
	if err != nil {
		return err
	}
	if err := mergeNode(dst, other.root); err != nil {
		return err
	}
	other.root = dst
	return nil
}

// Lookup walks segs from the root, preferring literal > parameter >
// wildcard children at each step with no backtracking among siblings. If
// the walk reaches a node with a value, that is the match. Otherwise,
// Lookup searches back up the visited ancestors (nearest first) for one
// whose tail is set, treating the unconsumed suffix as the tail's
// "remaining" path. Transforms are folded over the result value by
// walking root-to-terminal and folding right-to-left, so deeper
// transforms apply first and, within one node, the most recently
// registered Use wraps innermost.
func (t *pathTrie[V]) Lookup(p path.NormalizedPath) (LookupResult[V], bool) {
	segs := p.Segments()
	nodes := make([]*node[V], 1, len(segs)+1)
	nodes[0] = t.root
	transitions := make([]transition, 0, len(segs))

	cur := t.root
	reached := 0
	for reached < len(segs) {
		seg := segs[reached]
		var next *node[V]
		tr := transition{}
		if cur.literalChildren != nil {
			if c, ok := cur.literalChildren[seg]; ok {
				next = c
			}
		}
		if next == nil && cur.paramChild != nil {
			next = cur.paramChild.child
			tr = transition{paramName: cur.paramChild.name, paramValue: seg}
		}
		if next == nil && cur.wildcardChild != nil {
			next = cur.wildcardChild
		}
		if next == nil {
			break
		}
		cur = next
		nodes = append(nodes, cur)
		transitions = append(transitions, tr)
		reached++
	}

	if reached == len(segs) && cur.value != nil {
		params := collectParams(transitions, reached)
		value := foldTransforms(nodes, *cur.value)
		return LookupResult[V]{
			Value:      value,
			Parameters: params,
			Matched:    p,
			Remaining:  path.NormalizedPath{},
		}, true
	}

	if len(segs) == 0 {
		return LookupResult[V]{}, false
	}
	maxDepth := reached
	if maxDepth > len(segs)-1 {
		maxDepth = len(segs) - 1
	}
	for d := maxDepth; d >= 0; d-- {
		n := nodes[d]
		if n.tail == nil {
			continue
		}
		params := collectParams(transitions, d)
		value := foldTransforms(nodes[:d+1], *n.tail)
		return LookupResult[V]{
			Value:      value,
			Parameters: params,
			Matched:    path.FromSegments(segs[:d]),
			Remaining:  path.FromSegments(segs[d:]),
		}, true
	}
	return LookupResult[V]{}, false
}

func collectParams(transitions []transition, upTo int) map[string]string {
	params := make(map[string]string)
	for i := 0; i < upTo && i < len(transitions); i++ {
		if transitions[i].paramName != "" {
			params[transitions[i].paramName] = transitions[i].paramValue
		}
	}
	return params
}

// foldTransforms builds one combined list of transforms by walking
// nodes[0:] (root-to-terminal) and appending each node's own transform
// list in registration order, then folds that list right-to-left over
// raw. This single rule produces deepest-node-first application across
// nodes and most-recently-registered-first application within one node.
func foldTransforms[V any](nodes []*node[V], raw V) V {
	var combined []Transform[V]
	for _, n := range nodes {
		combined = append(combined, n.transforms...)
	}
	v := raw
	for i := len(combined) - 1; i >= 0; i-- {
		v = combined[i](v)
	}
	return v
}

type segKind int

const (
	segLiteral segKind = iota
	segParam
	segWildcard
	segTail
)

func classify(seg string) (segKind, string, error) {
	switch {
	case seg == "**":
		return segTail, "", nil
	case seg == "*":
		return segWildcard, "", nil
	case strings.HasPrefix(seg, ":"):
		name := seg[1:]
		if name == "" {
			return 0, "", fmt.Errorf("%w: empty parameter name in %q", ErrMalformedPattern, seg)
		}
		return segParam, name, nil
	case strings.Contains(seg, "*"):
		return 0, "", fmt.Errorf("%w: stray \"*\" in segment %q", ErrMalformedPattern, seg)
	default:
		return segLiteral, "", nil
	}
}

// navigate walks segs from the root, creating literal/param/wildcard
// nodes as needed when create is true. "**" is rejected: a tail has no
// node of its own to navigate into.
func (t *pathTrie[V]) navigate(segs []string, create bool) (*node[V], error) {
	cur := t.root
	for _, seg := range segs {
		kind, name, err := classify(seg)
		if err != nil {
			return nil, err
		}
		switch kind {
		case segTail:
			return nil, fmt.Errorf("%w: \"**\" cannot appear in a Use/Attach prefix", ErrMalformedPattern)
		case segWildcard:
			if cur.paramChild != nil {
				return nil, ErrConflictingChildren
			}
			if cur.wildcardChild == nil {
				if !create {
					return nil, ErrDuplicateValue
				}
				cur.wildcardChild = &node[V]{}
			}
			cur = cur.wildcardChild
		case segParam:
			if cur.wildcardChild != nil {
				return nil, ErrConflictingChildren
			}
			if cur.paramChild == nil {
				if !create {
					return nil, ErrDuplicateValue
				}
				cur.paramChild = &paramChild[V]{name: name, child: &node[V]{}}
			} else if cur.paramChild.name != name {
				return nil, ErrConflictingParameter
			}
			cur = cur.paramChild.child
		default:
			if cur.literalChildren == nil {
				cur.literalChildren = make(map[string]*node[V])
			}
			child, ok := cur.literalChildren[seg]
			if !ok {
				child = &node[V]{}
				cur.literalChildren[seg] = child
			}
			cur = child
		}
	}
	return cur, nil
}

// mergeNode joins src into dst in place, aliasing whichever of dst's
// slots are empty and recursively merging (with conflict checks) where
// both sides already hold something.
func mergeNode[V any](dst, src *node[V]) error {
	if src.value != nil {
		if dst.value != nil {
			return ErrConflictingValue
		}
		dst.value = src.value
	}
	if src.tail != nil {
		if dst.tail != nil {
			return ErrConflictingValue
		}
		if dst.paramChild != nil || dst.wildcardChild != nil {
			return ErrConflictingChildren
		}
		dst.tail = src.tail
	}
	if src.paramChild != nil {
		if dst.wildcardChild != nil || dst.tail != nil {
			return ErrConflictingChildren
		}
		if dst.paramChild == nil {
			dst.paramChild = src.paramChild
		} else if dst.paramChild.name != src.paramChild.name {
			return ErrConflictingParameter
		} else if dst.paramChild.child != src.paramChild.child {
			if err := mergeNode(dst.paramChild.child, src.paramChild.child); err != nil {
				return err
			}
		}
	}
	if src.wildcardChild != nil {
		if dst.paramChild != nil || dst.tail != nil {
			return ErrConflictingChildren
		}
		if dst.wildcardChild == nil {
			dst.wildcardChild = src.wildcardChild
		} else if dst.wildcardChild != src.wildcardChild {
			if err := mergeNode(dst.wildcardChild, src.wildcardChild); err != nil {
				return err
			}
		}
	}
	if src.literalChildren != nil {
		if dst.literalChildren == nil {
			dst.literalChildren = src.literalChildren
		} else {
			for k, sc := range src.literalChildren {
				if dc, ok := dst.literalChildren[k]; ok {
					if dc != sc {
						if err := mergeNode(dc, sc); err != nil {
							return err
						}
					}
				} else {
					dst.literalChildren[k] = sc
				}
			}
		}
	}
	dst.transforms = append(dst.transforms, src.transforms...)
	return nil
}
