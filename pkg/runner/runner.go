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

package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/cases"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/client"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/reporter"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrNoContract is raised for a case without an expected contract.
var ErrNoContract = errors.New("case has no contract")

// Sender is the transport used to execute cases.
type Sender interface {
	Send(ctx context.Context, method, path string, query url.Values, body any) (*client.Snapshot, error)
}

// Runner executes cases and records one verdict per case.
type Runner struct {
	sender      Sender
	matcher     *contract.Matcher
	reporter    *reporter.Reporter
	parallelism int
}

// Option customizes a Runner.
type Option func(*Runner)

// WithParallelism runs up to n cases concurrently.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithMatcher replaces the default matcher.
func WithMatcher(matcher *contract.Matcher) Option {
	return func(r *Runner) {
		r.matcher = matcher
	}
}

// New creates a runner.
func New(sender Sender, rep *reporter.Reporter, opts ...Option) *Runner {
	r := &Runner{
		sender:      sender,
		matcher:     contract.NewMatcher(),
		reporter:    rep,
		parallelism: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Execute runs a single case.  Transport errors and unbuildable requests
// become failing verdicts, they never escape.
func (r *Runner) Execute(ctx context.Context, c cases.Case) contract.Verdict {
	id := c.ID()

	if c.Contract == nil {
		return contract.Failed(id, "", ErrNoContract)
	}

	path, err := c.Path()
	if err != nil {
		return contract.Failed(id, c.Contract.Name, fmt.Errorf("building request: %w", err))
	}

	snapshot, err := r.sender.Send(ctx, c.Descriptor.Method, path, c.Query, c.Payload)
	if err != nil {
		return contract.Failed(id, c.Contract.Name, err)
	}

	return r.matcher.Verify(id, snapshot, c.Contract)
}

// Run executes every case in the sequence and returns the summary.  With
// fail-fast enabled no new case is dispatched after the first failure; cases
// already in flight complete and are recorded.  Cancelling ctx stops
// dispatch in the same way.
func (r *Runner) Run(ctx context.Context, seq iter.Seq[cases.Case]) reporter.Summary {
	logger := log.FromContext(ctx)

	// Halting only stops dispatch, requests in flight run on ctx.
	dispatch, halt := context.WithCancel(ctx)
	defer halt()

	group := &errgroup.Group{}
	group.SetLimit(r.parallelism)

	for c := range seq {
		if dispatch.Err() != nil {
			break
		}

		group.Go(func() error {
			if dispatch.Err() != nil {
				return nil
			}

			verdict := r.Execute(ctx, c)

			// An interrupted request says nothing about the service.
			if ctx.Err() != nil {
				logger.Info("case interrupted", "case", verdict.CaseID)
				return nil
			}

			logger.V(1).Info("case complete", "case", verdict.CaseID, "passed", verdict.Passed, "status", verdict.StatusCode)

			if !r.reporter.Record(verdict) {
				halt()
			}

			return nil
		})
	}

	_ = group.Wait()

	return r.reporter.Summary()
}
