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
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ObservabilityRecorder records per-request counts and latency through an
// otel Meter backed by its own Prometheus registry, scoped to the two
// instruments the metrics middleware needs rather than the teacher's full
// pluggable-provider surface (OTLP/stdout exporters, auto-started metrics
// server): Relic leaves exporting and serving those metrics to the
// embedding program, exposing only Handler for it to mount.
type ObservabilityRecorder struct {
	registry *promclient.Registry
	provider *sdkmetric.MeterProvider
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewObservabilityRecorder builds a recorder with a fresh Prometheus
// registry, avoiding collisions with any global registry the embedding
// program maintains.
func NewObservabilityRecorder() (*ObservabilityRecorder, error) {
	registry := promclient.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("relic: creating prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter("github.com/serverpod/relic-sub001")

	requests, err := meter.Int64Counter(
		"relic_requests_total",
		metric.WithDescription("Requests handled by a Relic router, labeled by method and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("relic: registering request counter: %w", err)
	}
	latency, err := meter.Float64Histogram(
		"relic_request_duration_seconds",
		metric.WithDescription("Handler latency in seconds, timed around the wrapped handler call."),
	)
	if err != nil {
		return nil, fmt.Errorf("relic: registering latency histogram: %w", err)
	}
	return &ObservabilityRecorder{registry: registry, provider: provider, requests: requests, latency: latency}, nil
}

// Record increments the request counter and observes the latency histogram
// for one completed request. middleware.Metrics passes as outcome the label
// it derives from the terminal context: "ok", "client_error",
// "server_error", "upgrade" or "unknown".
func (o *ObservabilityRecorder) Record(ctx context.Context, method, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("relic.outcome", outcome),
	)
	o.requests.Add(ctx, 1, attrs)
	o.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// Handler returns an http.Handler serving the recorder's metrics in the
// Prometheus exposition format, for mounting at e.g. /metrics. It is
// independent from the Relic router itself: callers wire it into their own
// net/http.ServeMux or into a second Router[Handler].
func (o *ObservabilityRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
