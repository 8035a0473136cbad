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
	"context"
	"time"

	relic "github.com/serverpod/relic-sub001"
)

// Metrics wraps a Handler so every invocation is timed and recorded against
// rec: request count and latency, labeled by method and outcome. Outcome is
// derived from the resulting TerminalContext: a *relic.ResponseContext
// reports its status class, a *relic.ConnectContext reports "upgrade".
func Metrics(rec *relic.ObservabilityRecorder) relic.Middleware {
	return func(next relic.Handler) relic.Handler {
		return func(nc *relic.NewContext) relic.TerminalContext {
			start := time.Now()
			result := next(nc)
			rec.Record(context.Background(), nc.Request().Method, outcomeLabel(result), time.Since(start))
			return result
		}
	}
}

func outcomeLabel(tc relic.TerminalContext) string {
	switch rc := tc.(type) {
	case *relic.ResponseContext:
		switch {
		case rc.Response.Status >= 500:
			return "server_error"
		case rc.Response.Status >= 400:
			return "client_error"
		default:
			return "ok"
		}
	case *relic.ConnectContext:
		return "upgrade"
	default:
		return "unknown"
	}
}
