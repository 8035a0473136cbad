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
	"strconv"
	"strings"

	relic "github.com/serverpod/relic-sub001"
)

// CORSOption configures the CORS middleware.
type CORSOption func(*corsConfig)

type corsConfig struct {
	allowOrigins []string
	allowMethods []string
	allowHeaders []string
	maxAge       int
}

func defaultCORSConfig() *corsConfig {
	return &corsConfig{
		allowOrigins: []string{"*"},
		allowMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		allowHeaders: []string{"Content-Type"},
		maxAge:       600,
	}
}

// WithAllowOrigins sets the allowed origins. Default: ["*"].
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.allowOrigins = origins }
}

// WithAllowMethods sets the allowed methods advertised in preflight
// responses.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.allowMethods = methods }
}

// WithAllowHeaders sets the allowed request headers advertised in
// preflight responses.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.allowHeaders = headers }
}

// WithMaxAge sets how long (in seconds) a preflight response may be
// cached by the client.
func WithMaxAge(seconds int) CORSOption {
	return func(cfg *corsConfig) { cfg.maxAge = seconds }
}

func (cfg *corsConfig) originAllowed(origin string) bool {
	for _, o := range cfg.allowOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// CORS returns middleware that answers every OPTIONS request directly with
// a 204, carrying the configured Access-Control-Allow-* headers when the
// Origin is allowed. Other responses get only Access-Control-Allow-Origin,
// and only when the Origin is allowed.
func CORS(opts ...CORSOption) relic.Middleware {
	cfg := defaultCORSConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next relic.Handler) relic.Handler {
		return func(nc *relic.NewContext) relic.TerminalContext {
			origin := nc.Request().Header("Origin")
			allowed := origin != "" && cfg.originAllowed(origin)

			if nc.Request().Method == "OPTIONS" {
				resp := relic.NewResponse(204, nil)
				if allowed {
					resp.SetHeader("Access-Control-Allow-Origin", origin)
					resp.SetHeader("Access-Control-Allow-Methods", strings.Join(cfg.allowMethods, ", "))
					resp.SetHeader("Access-Control-Allow-Headers", strings.Join(cfg.allowHeaders, ", "))
					resp.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.maxAge))
				}
				return nc.Respond(resp)
			}

			result := next(nc)
			rc, ok := result.(*relic.ResponseContext)
			if ok && allowed {
				rc.Response.SetHeader("Access-Control-Allow-Origin", origin)
			}
			return result
		}
	}
}
