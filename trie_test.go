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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serverpod/relic-sub001/path"
)

func TestTrieLiteralLookup(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/users/list"), "list-users"))

	res, ok := tr.Lookup(path.New("/users/list"))
	require.True(t, ok)
	assert.Equal(t, "list-users", res.Value)
	assert.Empty(t, res.Parameters)
}

func TestTrieParamCapture(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/users/:id"), "get-user"))

	res, ok := tr.Lookup(path.New("/users/42"))
	require.True(t, ok)
	assert.Equal(t, "get-user", res.Value)
	assert.Equal(t, "42", res.Parameters["id"])
}

func TestTrieLiteralBeatsParam(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/users/:id"), "get-user"))
	require.NoError(t, tr.Add(path.New("/users/me"), "get-self"))

	res, ok := tr.Lookup(path.New("/users/me"))
	require.True(t, ok)
	assert.Equal(t, "get-self", res.Value)
}

func TestTrieWildcardThenParamIsRejected(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/files/*"), "any-file"))
	err := tr.Add(path.New("/files/:name"), "named-file")
	assert.ErrorIs(t, err, ErrConflictingChildren)

	res, ok := tr.Lookup(path.New("/files/report.pdf"))
	require.True(t, ok)
	assert.Equal(t, "any-file", res.Value)
	assert.Empty(t, res.Parameters)
}

func TestTrieTailFallback(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/static/**"), "static-files"))

	res, ok := tr.Lookup(path.New("/static/css/app.css"))
	require.True(t, ok)
	assert.Equal(t, "static-files", res.Value)
	assert.Equal(t, []string{"css", "app.css"}, res.Remaining.Segments())
	assert.Equal(t, []string{"static"}, res.Matched.Segments())
}

func TestTrieNoBacktrackAmongSiblings(t *testing.T) {
	// A literal child exists at depth 1 ("a") but the full path dead-ends
	// under it; the trie must NOT fall back to a sibling param/wildcard
	// at that same depth. Only a "**" ancestor may rescue the lookup.
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/a/deep/only"), "literal-deep"))
	require.NoError(t, tr.Add(path.New("/:x/shallow"), "param-shallow"))

	_, ok := tr.Lookup(path.New("/a/shallow"))
	assert.False(t, ok, "must not backtrack from literal 'a' to the sibling param branch")
}

func TestTrieDuplicateValueError(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/x"), "first"))
	err := tr.Add(path.New("/x"), "second")
	assert.True(t, errors.Is(err, ErrDuplicateValue))
}

func TestTrieConflictingParameterName(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/users/:id"), "a"))
	err := tr.Add(path.New("/users/:slug"), "b")
	assert.True(t, errors.Is(err, ErrConflictingParameter))
}

func TestTrieConflictingChildKinds(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/files/:name"), "a"))
	err := tr.Add(path.New("/files/*"), "b")
	assert.True(t, errors.Is(err, ErrConflictingChildren))
}

func TestTrieMalformedTailNotFinal(t *testing.T) {
	tr := newPathTrie[string]()
	err := tr.Add(path.New("/a/**/b"), "x")
	assert.True(t, errors.Is(err, ErrMalformedPattern))
}

func TestTrieMalformedStrayStar(t *testing.T) {
	tr := newPathTrie[string]()
	err := tr.Add(path.New("/prefix*suffix"), "x")
	assert.True(t, errors.Is(err, ErrMalformedPattern))
}

// TestTrieTransformOrdering covers scenario E: transforms apply
// leaf-to-root across nodes. Ordering within one node is covered by
// TestTrieSameNodeTransformOrderingIsLIFO.
func TestTrieTransformOrdering(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/api/users"), "handler"))

	var order []string
	record := func(tag string) Transform[string] {
		return func(v string) string {
			order = append(order, tag)
			return v + ":" + tag
		}
	}

	require.NoError(t, tr.Use(path.New("/"), record("root")))
	require.NoError(t, tr.Use(path.New("/api"), record("api")))

	res, ok := tr.Lookup(path.New("/api/users"))
	require.True(t, ok)
	assert.Equal(t, []string{"api", "root"}, order, "deepest node's transform applies first")
	assert.Equal(t, "handler:api:root", res.Value)
}

func TestTrieSameNodeTransformOrderingIsLIFO(t *testing.T) {
	tr := newPathTrie[string]()
	require.NoError(t, tr.Add(path.New("/x"), "handler"))

	var order []string
	require.NoError(t, tr.Use(path.New("/"), func(v string) string {
		order = append(order, "A")
		return v + ":A"
	}))
	require.NoError(t, tr.Use(path.New("/"), func(v string) string {
		order = append(order, "B")
		return v + ":B"
	}))

	res, ok := tr.Lookup(path.New("/x"))
	require.True(t, ok)
	assert.Equal(t, []string{"B", "A"}, order, "last-registered Use wraps innermost")
	assert.Equal(t, "handler:B:A", res.Value)
}

// TestTrieAttachSharesMutableSubtree covers Testable Property 4 / Scenario
// F: registrations added to the attached trie after Attach must be
// visible through the parent trie.
func TestTrieAttachSharesMutableSubtree(t *testing.T) {
	parent := newPathTrie[string]()
	child := newPathTrie[string]()
	require.NoError(t, child.Add(path.New("/ping"), "pong"))

	require.NoError(t, parent.Attach(path.New("/api"), child))

	res, ok := parent.Lookup(path.New("/api/ping"))
	require.True(t, ok)
	assert.Equal(t, "pong", res.Value)

	// Register a NEW route on the child after attach; it must be visible
	// through the parent without calling Attach again.
	require.NoError(t, child.Add(path.New("/health"), "ok"))
	res, ok = parent.Lookup(path.New("/api/health"))
	require.True(t, ok)
	assert.Equal(t, "ok", res.Value)
}

// TestTrieAttachRejectsTailCollidingWithParamChild covers the §3 invariant
// that a node cannot simultaneously own a tail together with a
// param_child/wildcard_child: attaching a trie whose node at the same
// position holds a param child onto a node that already holds a tail (or
// vice versa) must fail rather than silently producing a node that
// violates the invariant.
func TestTrieAttachRejectsTailCollidingWithParamChild(t *testing.T) {
	withTail := newPathTrie[string]()
	require.NoError(t, withTail.Add(path.New("/static/**"), "tailval"))

	withParam := newPathTrie[string]()
	require.NoError(t, withParam.Add(path.New("/static/:x"), "paramval"))

	err := withTail.Attach(path.New(""), withParam)
	assert.ErrorIs(t, err, ErrConflictingChildren)
}

func TestTrieAttachRejectsParamChildCollidingWithTail(t *testing.T) {
	withParam := newPathTrie[string]()
	require.NoError(t, withParam.Add(path.New("/static/:x"), "paramval"))

	withTail := newPathTrie[string]()
	require.NoError(t, withTail.Add(path.New("/static/**"), "tailval"))

	err := withParam.Attach(path.New(""), withTail)
	assert.ErrorIs(t, err, ErrConflictingChildren)
}

func TestTrieAttachRejectsTailCollidingWithWildcardChild(t *testing.T) {
	withTail := newPathTrie[string]()
	require.NoError(t, withTail.Add(path.New("/static/**"), "tailval"))

	withWildcard := newPathTrie[string]()
	require.NoError(t, withWildcard.Add(path.New("/static/*"), "wildval"))

	err := withTail.Attach(path.New(""), withWildcard)
	assert.ErrorIs(t, err, ErrConflictingChildren)
}

func TestTrieDeepestParamWinsOnAttachCollision(t *testing.T) {
	// A parameter bound at a shallow depth in the parent and again at a
	// deeper depth after attach: the deepest binding wins.
	parent := newPathTrie[string]()
	child := newPathTrie[string]()
	require.NoError(t, child.Add(path.New("/nested/:id"), "deep"))
	require.NoError(t, parent.Attach(path.New("/:id"), child))

	res, ok := parent.Lookup(path.New("/outer/nested/inner"))
	require.True(t, ok)
	assert.Equal(t, "inner", res.Parameters["id"])
}
