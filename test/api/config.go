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
	"fmt"
	"os"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/options"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/suite"
)

// TestConfig extends run options with end-to-end specific settings.
type TestConfig struct {
	*options.Options

	// Fake is set when no live service is configured.
	Fake bool

	// Expectations are the service specific behaviours in effect.
	Expectations suite.Expectations
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a value is malformed.
func LoadTestConfig() (*TestConfig, error) {
	// Relative to test/api/suites, CI/CD sets the environment directly.
	options.LoadEnvFile("../../.env", "../../../.env")

	o, err := options.FromEnvironment()
	if err != nil {
		return nil, err
	}

	config := &TestConfig{
		Options:      o,
		Fake:         os.Getenv("API_BASE_URL") == "",
		Expectations: suite.DefaultExpectations(),
	}

	if o.ExpectationsFile != "" {
		if config.Expectations, err = suite.LoadExpectations(o.ExpectationsFile); err != nil {
			return nil, fmt.Errorf("loading expectations: %w", err)
		}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
