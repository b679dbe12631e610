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

package options_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/options"
)

func TestFromEnvironmentDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("LATENCY_CEILING", "")
	t.Setenv("PARALLELISM", "")
	t.Setenv("FAIL_FAST", "")

	o, err := options.FromEnvironment()
	require.NoError(t, err)
	require.Equal(t, options.DefaultBaseURL, o.BaseURL)
	require.Equal(t, 2*time.Second, o.LatencyCeiling)
	require.Equal(t, 30*time.Second, o.RequestTimeout)
	require.Equal(t, 1, o.Parallelism)
	require.False(t, o.FailFast)
	require.NoError(t, o.Validate())
}

func TestFromEnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8080")
	t.Setenv("LATENCY_CEILING", "500ms")
	t.Setenv("PARALLELISM", "4")
	t.Setenv("FAIL_FAST", "true")

	o, err := options.FromEnvironment()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", o.BaseURL)
	require.Equal(t, 500*time.Millisecond, o.LatencyCeiling)
	require.Equal(t, 4, o.Parallelism)
	require.True(t, o.FailFast)
}

func TestFromEnvironmentMalformed(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := options.FromEnvironment()

	var cerr *options.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "REQUEST_TIMEOUT", cerr.Setting)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://from-env")

	o, err := options.FromEnvironment()
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(flags)

	require.NoError(t, flags.Parse([]string{"--base-url=http://from-flag", "--fail-fast", "--parallelism=3"}))
	require.Equal(t, "http://from-flag", o.BaseURL)
	require.True(t, o.FailFast)
	require.Equal(t, 3, o.Parallelism)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *options.Options {
		return &options.Options{
			BaseURL:        "https://example.com",
			RequestTimeout: time.Second,
			LatencyCeiling: time.Second,
			Parallelism:    1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*options.Options)
		setting string
		target  error
	}{
		{"relative url", func(o *options.Options) { o.BaseURL = "/posts" }, "base-url", options.ErrInvalidBaseURL},
		{"bad scheme", func(o *options.Options) { o.BaseURL = "ftp://example.com" }, "base-url", options.ErrInvalidBaseURL},
		{"unparsable url", func(o *options.Options) { o.BaseURL = "http://[::1" }, "base-url", options.ErrInvalidBaseURL},
		{"zero timeout", func(o *options.Options) { o.RequestTimeout = 0 }, "request-timeout", options.ErrInvalidValue},
		{"zero ceiling", func(o *options.Options) { o.LatencyCeiling = 0 }, "latency-ceiling", options.ErrInvalidValue},
		{"zero parallelism", func(o *options.Options) { o.Parallelism = 0 }, "parallelism", options.ErrInvalidValue},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			o := valid()
			test.mutate(o)

			err := o.Validate()

			var cerr *options.ConfigurationError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, test.setting, cerr.Setting)
			require.True(t, errors.Is(err, test.target))
		})
	}
}
