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
	"fmt"

	relic "github.com/serverpod/relic-sub001"
)

// RecoveryOption configures the Recovery middleware.
type RecoveryOption func(*recoveryConfig)

type recoveryConfig struct {
	onRecover func(nc *relic.NewContext, recovered any) relic.Response
}

func defaultRecoveryConfig() *recoveryConfig {
	return &recoveryConfig{
		onRecover: func(nc *relic.NewContext, recovered any) relic.Response {
			return relic.TextResponse(500, fmt.Sprintf("internal error: %v", recovered))
		},
	}
}

// WithRecoveryHandler overrides the response built when a handler panics.
func WithRecoveryHandler(fn func(nc *relic.NewContext, recovered any) relic.Response) RecoveryOption {
	return func(cfg *recoveryConfig) { cfg.onRecover = fn }
}

// Recovery returns middleware that recovers a panic from downstream
// handlers and converts it into a 500 response (or whatever
// WithRecoveryHandler produces) instead of letting it escape to the
// net/http adapter, whose own recovery replies with an empty-bodied 500.
func Recovery(opts ...RecoveryOption) relic.Middleware {
	cfg := defaultRecoveryConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(next relic.Handler) relic.Handler {
		return func(nc *relic.NewContext) (result relic.TerminalContext) {
			defer func() {
				if rec := recover(); rec != nil {
					result = nc.Respond(cfg.onRecover(nc, rec))
				}
			}()
			return next(nc)
		}
	}
}
