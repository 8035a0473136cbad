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
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Response is the outbound half of one HTTP exchange: a status code, an
// optional body, and headers.
type Response struct {
	Status  int
	Headers map[string][]string
	body    *Body
}

// NewResponse builds a Response with the given status and body. body may
// be nil for an empty response.
func NewResponse(status int, body *Body) Response {
	if body == nil {
		body = NewBody(nil, "", 0)
	}
	return Response{Status: status, Headers: make(map[string][]string), body: body}
}

// TextResponse builds a 200 (or the given status, if non-zero) response
// carrying s as the body, with a text/plain content type.
func TextResponse(status int, s string) Response {
	if status == 0 {
		status = 200
	}
	resp := NewResponse(status, NewBody(io.NopCloser(bytes.NewReader([]byte(s))), "text/plain; charset=utf-8", int64(len(s))))
	resp.SetHeader("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// Body returns the response's body.
func (r *Response) Body() *Body { return r.body }

// SetHeader replaces all values for key.
func (r *Response) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string][]string)
	}
	r.Headers[key] = []string{value}
}

// AddHeader appends a value for key.
func (r *Response) AddHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string][]string)
	}
	r.Headers[key] = append(r.Headers[key], value)
}

// methodNotAllowedResponse builds the 405 reply for a MethodNotAllowed
// outcome, with a correctly formatted Allow header — the one typed header
// accessor spec.md keeps in scope.
func methodNotAllowedResponse(allowed []Method) Response {
	resp := NewResponse(405, nil)
	strs := make([]string, len(allowed))
	for i, m := range allowed {
		strs[i] = string(m)
	}
	resp.SetHeader("Allow", strings.Join(strs, ", "))
	return resp
}

func notFoundResponse() Response {
	return NewResponse(404, nil)
}

// contentLengthHeader is a small helper the adapter uses when writing a
// response whose body length is known in advance.
func contentLengthHeader(n int64) string {
	return strconv.FormatInt(n, 10)
}
