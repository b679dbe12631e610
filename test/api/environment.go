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

package api

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/cases"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/client"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/reporter"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/runner"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/server"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/suite"
)

// Environment is everything a suite needs to talk to the service.
type Environment struct {
	Config    *TestConfig
	Client    *client.Client
	Matcher   *contract.Matcher
	Catalogue *suite.Catalogue

	fake *httptest.Server
}

// NewEnvironment connects to the configured service, starting the fake
// provider when no live service is configured.
func NewEnvironment(ctx context.Context, config *TestConfig) (*Environment, error) {
	env := &Environment{
		Config: config,
	}

	baseURL := config.BaseURL

	if config.Fake {
		env.fake = httptest.NewServer(server.New().Handler())
		baseURL = env.fake.URL
	}

	schemas, err := contract.LoadSchemas(ctx)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("loading schemas: %w", err)
	}

	env.Client = client.New(baseURL, config.RequestTimeout, client.WithLogging(config.LogRequests, config.LogResponses))
	env.Matcher = contract.NewMatcher(contract.WithSchemas(schemas))
	env.Catalogue = suite.New(config.Expectations, suite.WithLatency(config.LatencyCeiling, config.LatencyFatal))

	return env, nil
}

// Close stops the fake provider if one was started.
func (e *Environment) Close() {
	if e.fake != nil {
		e.fake.Close()
	}
}

// Runner returns a fresh collect-all runner and its reporter.
func (e *Environment) Runner() (*runner.Runner, *reporter.Reporter) {
	rep := reporter.New()

	return runner.New(e.Client, rep, runner.WithMatcher(e.Matcher), runner.WithParallelism(e.Config.Parallelism)), rep
}

// Execute runs a single case.
func (e *Environment) Execute(ctx context.Context, c cases.Case) contract.Verdict {
	r, _ := e.Runner()

	return r.Execute(ctx, c)
}

// Case finds a catalogued case by identifier.
func (e *Environment) Case(id string) (cases.Case, bool) {
	for c := range e.Catalogue.Cases() {
		if c.ID() == id {
			return c, true
		}
	}

	return cases.Case{}, false
}
