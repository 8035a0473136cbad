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

// DiagnosticEvent is a non-fatal signal emitted during configuration or
// serving, for callers that want visibility without wiring a full
// observability stack (metrics/tracing are explicitly out of spec scope;
// this hook is the ambient substitute).
type DiagnosticEvent struct {
	// Kind names the event, e.g. "h2c_enabled".
	Kind string
	// Detail is a short human-readable description.
	Detail string
}

// DiagnosticHandler receives DiagnosticEvents. A nil handler (the
// default) discards them.
type DiagnosticHandler func(DiagnosticEvent)

func emitDiagnostic(h DiagnosticHandler, kind, detail string) {
	if h == nil {
		return
	}
	h(DiagnosticEvent{Kind: kind, Detail: detail})
}
