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

package options

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	// DefaultBaseURL is the public service the catalogue is written against.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	defaultRequestTimeout = 30 * time.Second
	defaultLatencyCeiling = 2 * time.Second
)

var (
	// ErrInvalidBaseURL is raised when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL")

	// ErrInvalidValue is raised when a numeric or duration setting is out of range.
	ErrInvalidValue = errors.New("invalid value")
)

// ConfigurationError is fatal, the run aborts before any case executes.
type ConfigurationError struct {
	// Setting is the environment variable, flag or file at fault.
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Options control a conformance run.
type Options struct {
	BaseURL          string
	RequestTimeout   time.Duration
	LatencyCeiling   time.Duration
	LatencyFatal     bool
	FailFast         bool
	Parallelism      int
	ExpectationsFile string
	XLSXReport       string
	MetricsFile      string
	LogRequests      bool
	LogResponses     bool
}

// FromEnvironment returns options with defaults taken from environment variables,
// which may in turn be seeded by a .env file.  Malformed values are configuration
// errors rather than silently ignored.
func FromEnvironment() (*Options, error) {
	LoadEnvFile(".env")

	o := &Options{
		BaseURL:          getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		ExpectationsFile: os.Getenv("EXPECTATIONS_FILE"),
		XLSXReport:       os.Getenv("XLSX_REPORT"),
		MetricsFile:      os.Getenv("METRICS_FILE"),
	}

	var err error

	if o.RequestTimeout, err = getDurationWithDefault("REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		return nil, err
	}

	if o.LatencyCeiling, err = getDurationWithDefault("LATENCY_CEILING", defaultLatencyCeiling); err != nil {
		return nil, err
	}

	if o.Parallelism, err = getIntWithDefault("PARALLELISM", 1); err != nil {
		return nil, err
	}

	bools := map[string]*bool{
		"LATENCY_FATAL": &o.LatencyFatal,
		"FAIL_FAST":     &o.FailFast,
		"LOG_REQUESTS":  &o.LogRequests,
		"LOG_RESPONSES": &o.LogResponses,
	}

	for key, target := range bools {
		if *target, err = getBoolWithDefault(key, false); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// AddFlags registers command line flags, the current values act as defaults.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", o.BaseURL, "Base URL of the service under test.")
	f.DurationVar(&o.RequestTimeout, "request-timeout", o.RequestTimeout, "Timeout applied to every HTTP request.")
	f.DurationVar(&o.LatencyCeiling, "latency-ceiling", o.LatencyCeiling, "Responses slower than this are flagged.")
	f.BoolVar(&o.LatencyFatal, "latency-fatal", o.LatencyFatal, "Treat latency ceiling violations as failures.")
	f.BoolVar(&o.FailFast, "fail-fast", o.FailFast, "Stop executing cases after the first failure.")
	f.IntVar(&o.Parallelism, "parallelism", o.Parallelism, "Number of cases executed concurrently.")
	f.StringVar(&o.ExpectationsFile, "expectations", o.ExpectationsFile, "YAML file overriding service specific expectations.")
	f.StringVar(&o.XLSXReport, "xlsx-report", o.XLSXReport, "Write an xlsx report to this path.")
	f.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write Prometheus textfile metrics to this path.")
	f.BoolVar(&o.LogRequests, "log-requests", o.LogRequests, "Log every request line.")
	f.BoolVar(&o.LogResponses, "log-responses", o.LogResponses, "Log every response body.")
}

// Validate checks the options are usable.
func (o *Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return &ConfigurationError{Setting: "base-url", Err: fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)}
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigurationError{Setting: "base-url", Err: fmt.Errorf("%w: %q", ErrInvalidBaseURL, o.BaseURL)}
	}

	if o.RequestTimeout <= 0 {
		return &ConfigurationError{Setting: "request-timeout", Err: fmt.Errorf("%w: must be positive", ErrInvalidValue)}
	}

	if o.LatencyCeiling <= 0 {
		return &ConfigurationError{Setting: "latency-ceiling", Err: fmt.Errorf("%w: must be positive", ErrInvalidValue)}
	}

	if o.Parallelism < 1 {
		return &ConfigurationError{Setting: "parallelism", Err: fmt.Errorf("%w: must be at least 1", ErrInvalidValue)}
	}

	return nil
}

// LoadEnvFile loads the first .env file found, a missing file is fine as
// CI/CD sets the environment directly.
func LoadEnvFile(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", path, err)
		}

		return
	}
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ConfigurationError{Setting: key, Err: err}
	}

	return duration, nil
}

func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, &ConfigurationError{Setting: key, Err: err}
	}

	return boolValue, nil
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigurationError{Setting: key, Err: err}
	}

	return intValue, nil
}
