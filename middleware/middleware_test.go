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

package middleware

import (
	"bytes"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relic "github.com/serverpod/relic-sub001"
)

func newTestContext(method, rawPath string) *relic.NewContext {
	u, _ := url.Parse(rawPath)
	return relic.NewRequestContext(relic.NewRequest(method, u, nil, nil))
}

func TestRecoveryConvertsPanicToResponse(t *testing.T) {
	h := Recovery()(func(nc *relic.NewContext) relic.TerminalContext {
		panic("boom")
	})

	result := h(newTestContext("GET", "/x"))
	rc, ok := result.(*relic.ResponseContext)
	require.True(t, ok)
	assert.Equal(t, 500, rc.Response.Status)
}

func TestRecoveryPassesThroughNormalResponses(t *testing.T) {
	h := Recovery()(func(nc *relic.NewContext) relic.TerminalContext {
		return nc.Respond(relic.TextResponse(200, "ok"))
	})

	result := h(newTestContext("GET", "/x"))
	rc, ok := result.(*relic.ResponseContext)
	require.True(t, ok)
	assert.Equal(t, 200, rc.Response.Status)
}

func TestLoggerSkipsConfiguredPaths(t *testing.T) {
	var buf bytes.Buffer
	h := Logger(WithLoggerOutput(&buf), WithSkipPaths([]string{"/health"}))(func(nc *relic.NewContext) relic.TerminalContext {
		return nc.Respond(relic.TextResponse(200, "ok"))
	})

	h(newTestContext("GET", "/health"))
	assert.Empty(t, buf.String())

	h(newTestContext("GET", "/other"))
	assert.NotEmpty(t, buf.String())
}

func TestCORSAnswersPreflightDirectly(t *testing.T) {
	h := CORS(WithAllowOrigins("https://example.com"))(func(nc *relic.NewContext) relic.TerminalContext {
		t.Fatal("downstream handler should not run for an OPTIONS preflight")
		return nil
	})

	nc := newTestContext("OPTIONS", "/x")
	nc.Request().Headers = map[string][]string{"Origin": {"https://example.com"}}

	result := h(nc)
	rc, ok := result.(*relic.ResponseContext)
	require.True(t, ok)
	assert.Equal(t, 204, rc.Response.Status)
	assert.Equal(t, "https://example.com", rc.Response.Headers["Access-Control-Allow-Origin"][0])
}

func TestMetricsRecordsOutcomeAndLatency(t *testing.T) {
	rec, err := relic.NewObservabilityRecorder()
	require.NoError(t, err)

	h := Metrics(rec)(func(nc *relic.NewContext) relic.TerminalContext {
		return nc.Respond(relic.TextResponse(200, "ok"))
	})
	h(newTestContext("GET", "/x"))

	respRec := httptest.NewRecorder()
	rec.Handler().ServeHTTP(respRec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, respRec.Body.String(), "relic_requests_total")
}

func TestCORSAnnotatesNormalResponses(t *testing.T) {
	h := CORS(WithAllowOrigins("*"))(func(nc *relic.NewContext) relic.TerminalContext {
		return nc.Respond(relic.TextResponse(200, "ok"))
	})

	nc := newTestContext("GET", "/x")
	nc.Request().Headers = map[string][]string{"Origin": {"https://example.com"}}
	result := h(nc)
	rc, ok := result.(*relic.ResponseContext)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", rc.Response.Headers["Access-Control-Allow-Origin"][0])
}
