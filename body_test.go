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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyReadAllReturnsData(t *testing.T) {
	b := NewBody(io.NopCloser(strings.NewReader("hello")), "", -1)
	data, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestBodySecondReadFails(t *testing.T) {
	b := NewBody(io.NopCloser(strings.NewReader("hello")), "", -1)
	_, err := b.ReadAll()
	require.NoError(t, err)

	_, err = b.ReadAll()
	assert.True(t, errors.Is(err, ErrBodyAlreadyRead))
}

func TestBodyMIMESniffedLazily(t *testing.T) {
	b := NewBody(io.NopCloser(strings.NewReader("<html></html>")), "", -1)
	assert.Equal(t, "", b.MIME())
	_, err := b.ReadAll()
	require.NoError(t, err)
	assert.NotEmpty(t, b.MIME())
}

func TestBodyNilReaderIsEmpty(t *testing.T) {
	b := NewBody(nil, "", -1)
	data, err := b.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, data)
}
