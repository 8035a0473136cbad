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
	"net/http"
	"sync"
)

// Body is a single-read byte stream attached to a Request or Response. It
// deliberately does not implement io.Reader directly: ReadAll is the only
// way to consume it, so "already read" is a single obvious check rather
// than something every partial-Read caller has to reason about.
type Body struct {
	mu       sync.Mutex
	reader   io.ReadCloser
	mime     string
	length   int64
	consumed bool
}

// NewBody wraps r (which may be nil for an empty body) with an optional
// known MIME type and length. A length of -1 means unknown.
func NewBody(r io.ReadCloser, mime string, length int64) *Body {
	return &Body{reader: r, mime: mime, length: length}
}

// ReadAll consumes and returns the entire body. Calling it a second time
// returns ErrBodyAlreadyRead.
func (b *Body) ReadAll() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consumed {
		return nil, ErrBodyAlreadyRead
	}
	b.consumed = true
	if b.reader == nil {
		return nil, nil
	}
	defer b.reader.Close()
	data, err := io.ReadAll(b.reader)
	if err != nil {
		return nil, err
	}
	if b.mime == "" && len(data) > 0 {
		b.mime = http.DetectContentType(data)
	}
	return data, nil
}

// MIME returns the body's MIME type. It is only reliably known once
// ReadAll has sniffed it (when no explicit MIME type was supplied at
// construction); reading it before ReadAll returns whatever was supplied
// to NewBody, which may be "".
func (b *Body) MIME() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mime
}

// Length returns the body's known length and whether it is known.
func (b *Body) Length() (int64, bool) {
	return b.length, b.length >= 0
}
