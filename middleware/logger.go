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
	"io"
	"log"
	"os"
	"time"

	relic "github.com/serverpod/relic-sub001"
)

// LoggerOption configures the Logger middleware.
type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	output     io.Writer
	timeFormat string
	skipPaths  map[string]bool
	formatter  func(params LogFormatterParams) string
}

// LogFormatterParams holds the parameters for a custom log formatter.
type LogFormatterParams struct {
	TimeStamp  time.Time
	StatusCode int
	Latency    time.Duration
	Method     string
	Path       string
}

func defaultLoggerConfig() *loggerConfig {
	return &loggerConfig{
		output:     os.Stdout,
		timeFormat: "2006/01/02 15:04:05",
		skipPaths:  make(map[string]bool),
		formatter:  defaultLogFormatter,
	}
}

func defaultLogFormatter(p LogFormatterParams) string {
	return fmt.Sprintf("[%s] %s %s %d %v",
		p.TimeStamp.Format("2006/01/02 15:04:05"), p.Method, p.Path, p.StatusCode, p.Latency)
}

// WithLoggerOutput sets the output writer for logs. Default: os.Stdout.
func WithLoggerOutput(output io.Writer) LoggerOption {
	return func(cfg *loggerConfig) { cfg.output = output }
}

// WithSkipPaths sets paths that should not be logged, useful for noisy
// health-check endpoints.
func WithSkipPaths(paths []string) LoggerOption {
	return func(cfg *loggerConfig) {
		for _, p := range paths {
			cfg.skipPaths[p] = true
		}
	}
}

// WithLogFormatter sets a custom log line formatter.
func WithLogFormatter(formatter func(LogFormatterParams) string) LoggerOption {
	return func(cfg *loggerConfig) { cfg.formatter = formatter }
}

// Logger returns middleware that logs method, path, status code, and
// latency for every request that passes through it.
func Logger(opts ...LoggerOption) relic.Middleware {
	cfg := defaultLoggerConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := log.New(cfg.output, "", 0)

	return func(next relic.Handler) relic.Handler {
		return func(nc *relic.NewContext) relic.TerminalContext {
			reqPath := ""
			if nc.Request().URL != nil {
				reqPath = nc.Request().URL.Path
			}
			if cfg.skipPaths[reqPath] {
				return next(nc)
			}

			start := time.Now()
			result := next(nc)
			latency := time.Since(start)

			status := 0
			if rc, ok := result.(*relic.ResponseContext); ok {
				status = rc.Response.Status
			}

			logger.Println(cfg.formatter(LogFormatterParams{
				TimeStamp:  time.Now(),
				StatusCode: status,
				Latency:    latency,
				Method:     nc.Request().Method,
				Path:       reqPath,
			}))
			return result
		}
	}
}
