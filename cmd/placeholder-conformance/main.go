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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/client"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/constants"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/options"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/reporter"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/runner"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/suite"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	exitPassed        = 0
	exitFailed        = 1
	exitConfiguration = 2
)

// configurationError reports err on stderr, nothing reaches stdout.
func configurationError(stderr io.Writer, err error) int {
	var cerr *options.ConfigurationError
	if !errors.As(err, &cerr) {
		err = &options.ConfigurationError{Setting: "startup", Err: err}
	}

	fmt.Fprintln(stderr, err)

	return exitConfiguration
}

// run executes the catalogue with the given command line and returns the
// process exit code.
//
//nolint:cyclop
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := options.FromEnvironment()
	if err != nil {
		return configurationError(stderr, err)
	}

	var logging options.Logging

	flags := pflag.NewFlagSet(constants.Application, pflag.ContinueOnError)
	flags.SetOutput(stderr)

	o.AddFlags(flags)
	logging.AddFlags(flags)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitPassed
		}

		return configurationError(stderr, &options.ConfigurationError{Setting: "flags", Err: err})
	}

	logging.Setup()

	logger := log.Log.WithName("init")
	logger.Info("conformance starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	if err := o.Validate(); err != nil {
		return configurationError(stderr, err)
	}

	expectations := suite.DefaultExpectations()

	if o.ExpectationsFile != "" {
		if expectations, err = suite.LoadExpectations(o.ExpectationsFile); err != nil {
			return configurationError(stderr, &options.ConfigurationError{Setting: "expectations", Err: err})
		}
	}

	schemas, err := contract.LoadSchemas(ctx)
	if err != nil {
		return configurationError(stderr, err)
	}

	fx := fixtures.New(o.BaseURL)

	ctx = log.IntoContext(ctx, log.Log.WithName("conformance").WithValues("run", fx.RunID))

	metrics := reporter.NewMetrics()

	rep := reporter.New(reporter.WithFailFast(o.FailFast), reporter.WithMetrics(metrics))

	r := runner.New(client.NewFromOptions(o), rep,
		runner.WithParallelism(o.Parallelism),
		runner.WithMatcher(contract.NewMatcher(contract.WithSchemas(schemas))),
	)

	catalogue := suite.New(expectations, suite.WithLatency(o.LatencyCeiling, o.LatencyFatal))

	logger.Info("running catalogue", "baseURL", o.BaseURL, "run", fx.RunID, "parallelism", o.Parallelism, "failFast", o.FailFast)

	summary := r.Run(ctx, catalogue.Cases())

	if err := summary.WriteText(stdout); err != nil {
		logger.Error(err, "failed to write summary")
	}

	if o.XLSXReport != "" {
		if err := reporter.WriteXLSX(o.XLSXReport, rep.Verdicts(), summary); err != nil {
			logger.Error(err, "failed to write xlsx report", "path", o.XLSXReport)
		}
	}

	if o.MetricsFile != "" {
		if err := metrics.WriteTextfile(o.MetricsFile); err != nil {
			logger.Error(err, "failed to write metrics", "path", o.MetricsFile)
		}
	}

	if ctx.Err() != nil {
		logger.Info("run interrupted, summary covers completed cases only")

		return exitFailed
	}

	if !summary.OK() {
		return exitFailed
	}

	return exitPassed
}

func main() {
	os.Exit(run(cr.SetupSignalHandler(), os.Args[1:], os.Stdout, os.Stderr))
}
