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

import "net/url"

// Request is the inbound half of one HTTP exchange, as seen by Relic's
// routing core. It intentionally exposes only plain map access to
// headers; typed per-header accessors (beyond the Allow header the
// adapter synthesizes for 405 replies) are out of scope.
type Request struct {
	Method  string
	URL     *url.URL
	Headers map[string][]string
	body    *Body
}

// NewRequest builds a Request. body may be nil for requests with no body.
func NewRequest(method string, u *url.URL, headers map[string][]string, body *Body) *Request {
	if body == nil {
		body = NewBody(nil, "", -1)
	}
	return &Request{Method: method, URL: u, Headers: headers, body: body}
}

// Body returns the request's body stream. It can be read at most once in
// full; see Body.ReadAll.
func (r *Request) Body() *Body { return r.body }

// Header returns the first value for key, or "" if absent.
func (r *Request) Header(key string) string {
	if vals, ok := r.Headers[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
