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
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
)

// Failure details one failing case.
type Failure struct {
	CaseID     string
	Contract   string
	StatusCode int
	Violations []contract.Violation
}

// Summary aggregates every recorded verdict.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Warnings int
	// Halted is set when fail-fast stopped the run early.
	Halted   bool
	Failures []Failure
}

// OK reports whether every recorded verdict passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Reporter accumulates verdicts in insertion order.  Record is safe for
// concurrent use.
type Reporter struct {
	lock     sync.Mutex
	verdicts []contract.Verdict
	failFast bool
	halted   bool
	metrics  *Metrics
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithFailFast halts the run on the first failing verdict.
func WithFailFast(failFast bool) Option {
	return func(r *Reporter) {
		r.failFast = failFast
	}
}

// WithMetrics mirrors recorded verdicts into Prometheus metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(r *Reporter) {
		r.metrics = metrics
	}
}

// New creates a collect-all reporter unless configured otherwise.
func New(opts ...Option) *Reporter {
	r := &Reporter{}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Record appends a verdict and returns whether execution should continue.
// Once halted, further verdicts are still recorded, in-flight cases finish.
func (r *Reporter) Record(verdict contract.Verdict) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.verdicts = append(r.verdicts, verdict)

	if r.metrics != nil {
		r.metrics.Observe(verdict)
	}

	if !verdict.Passed && r.failFast {
		r.halted = true
	}

	return !r.halted
}

// Halted reports whether fail-fast tripped.
func (r *Reporter) Halted() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.halted
}

// Verdicts returns a copy of the recorded verdicts.
func (r *Reporter) Verdicts() []contract.Verdict {
	r.lock.Lock()
	defer r.lock.Unlock()

	return slices.Clone(r.verdicts)
}

// Summary computes totals over the recorded verdicts.
func (r *Reporter) Summary() Summary {
	r.lock.Lock()
	defer r.lock.Unlock()

	s := Summary{
		Total:  len(r.verdicts),
		Halted: r.halted,
	}

	for _, verdict := range r.verdicts {
		s.Warnings += len(verdict.Warnings())

		if verdict.Passed {
			s.Passed++
			continue
		}

		s.Failed++
		s.Failures = append(s.Failures, Failure{
			CaseID:     verdict.CaseID,
			Contract:   verdict.Contract,
			StatusCode: verdict.StatusCode,
			Violations: slices.Clone(verdict.Violations),
		})
	}

	return s
}

// WriteText prints the summary and every failure with expected and actual values.
func (s Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "total: %d, passed: %d, failed: %d, warnings: %d\n", s.Total, s.Passed, s.Failed, s.Warnings); err != nil {
		return err
	}

	if s.Halted {
		if _, err := fmt.Fprintln(w, "halted after first failure (fail-fast)"); err != nil {
			return err
		}
	}

	for _, failure := range s.Failures {
		if _, err := fmt.Fprintf(w, "FAIL %s (contract %q, status %d)\n", failure.CaseID, failure.Contract, failure.StatusCode); err != nil {
			return err
		}

		for _, violation := range failure.Violations {
			marker := "  -"
			if !violation.Fatal {
				marker = "  ~"
			}

			if _, err := fmt.Fprintf(w, "%s %s\n", marker, violation.Error()); err != nil {
				return err
			}
		}
	}

	return nil
}
