/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/constants"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
)

// Metrics exposes verdict outcomes in Prometheus format.
type Metrics struct {
	registry   *prometheus.Registry
	verdicts   *prometheus.CounterVec
	violations *prometheus.CounterVec
	latency    prometheus.Histogram
}

// NewMetrics creates metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "placeholder_conformance",
			Name:      "verdicts_total",
			Help:      "Recorded verdicts by result.",
			ConstLabels: prometheus.Labels{
				"version": constants.Version,
			},
		}, []string{"result"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "placeholder_conformance",
			Name:      "violations_total",
			Help:      "Contract violations by check.",
		}, []string{"check", "fatal"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "placeholder_conformance",
			Name:      "response_seconds",
			Help:      "Observed response latency.",
			Buckets:   prometheus.ExponentialBuckets(0.025, 2, 8),
		}),
	}

	m.registry.MustRegister(m.verdicts, m.violations, m.latency)

	return m
}

// Observe records one verdict.
func (m *Metrics) Observe(verdict contract.Verdict) {
	result := "pass"
	if !verdict.Passed {
		result = "fail"
	}

	m.verdicts.WithLabelValues(result).Inc()

	for _, violation := range verdict.Violations {
		fatal := "false"
		if violation.Fatal {
			fatal = "true"
		}

		m.violations.WithLabelValues(violation.Check, fatal).Inc()
	}

	if verdict.Elapsed > 0 {
		m.latency.Observe(verdict.Elapsed.Seconds())
	}
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics for a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
