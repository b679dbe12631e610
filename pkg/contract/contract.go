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

package contract

import (
	"fmt"
	"net/http"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Shape is the top level JSON type a response body must have.
type Shape int

const (
	// ShapeNone skips body shape checks.
	ShapeNone Shape = iota
	ShapeObject
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeList:
		return "list"
	case ShapeNone:
	}

	return "none"
}

// FieldCheck applies a predicate to the value at a gjson path.
type FieldCheck struct {
	Path      string
	Predicate Predicate
}

// NestedContract requires an object at Path with a key set and field checks
// relative to that object.
type NestedContract struct {
	Path         string
	RequiredKeys sets.Set[string]
	Fields       []FieldCheck
}

// SortCheck requires list elements ordered by Key.
type SortCheck struct {
	Key        string
	Descending bool
}

// Contract is the full expectation for one response.  Contracts are shared
// by reference between cases and must not be modified once built.
type Contract struct {
	Name string
	// Status is the exact expected status code.
	Status int
	// NotFound contracts only check the status, body checks are skipped.
	NotFound bool

	// LatencyCeiling of zero disables the latency check.
	LatencyCeiling time.Duration
	LatencyFatal   bool

	ExpectJSON       bool
	RequiredHeaders  []string
	ForbiddenHeaders []string

	Shape        Shape
	RequiredKeys sets.Set[string]
	ExactCount   *int
	MinCount     *int

	Fields []FieldCheck
	Nested []NestedContract
	// Echo maps submitted keys to submitted values that must be reflected.
	Echo map[string]any
	// Every is applied to each element of a list response.
	Every  []FieldCheck
	Sorted []SortCheck

	// Schema names an OpenAPI component the body must validate against.
	Schema string
}

// Check names used in violations.
const (
	CheckTransport   = "transport"
	CheckStatus      = "status"
	CheckLatency     = "latency"
	CheckContentType = "content-type"
	CheckHeader      = "header"
	CheckDecode      = "decode"
	CheckShape       = "shape"
	CheckKeys        = "keys"
	CheckCount       = "count"
	CheckField       = "field"
	CheckNested      = "nested"
	CheckEcho        = "echo"
	CheckFilter      = "filter"
	CheckSort        = "sort"
	CheckSchema      = "schema"
)

// Violation is one failed check.
type Violation struct {
	Check    string
	Path     string
	Expected string
	Actual   string
	// Fatal violations fail the verdict, others are informational.
	Fatal bool
}

func (v Violation) Error() string {
	if v.Path != "" {
		return fmt.Sprintf("%s %s: expected %s, got %s", v.Check, v.Path, v.Expected, v.Actual)
	}

	return fmt.Sprintf("%s: expected %s, got %s", v.Check, v.Expected, v.Actual)
}

// Verdict is the write once outcome of one case.
type Verdict struct {
	CaseID     string
	Contract   string
	Passed     bool
	StatusCode int
	Elapsed    time.Duration
	Violations []Violation
}

// Err aggregates fatal violations, nil when the verdict passed.
func (v Verdict) Err() error {
	var errs []error

	for _, violation := range v.Violations {
		if violation.Fatal {
			errs = append(errs, violation)
		}
	}

	return utilerrors.NewAggregate(errs)
}

// Warnings returns informational violations.
func (v Verdict) Warnings() []Violation {
	var out []Violation

	for _, violation := range v.Violations {
		if !violation.Fatal {
			out = append(out, violation)
		}
	}

	return out
}

// Failed creates a failing verdict for a case that produced no response.
func Failed(caseID, contractName string, err error) Verdict {
	return Verdict{
		CaseID:   caseID,
		Contract: contractName,
		Violations: []Violation{
			{
				Check:    CheckTransport,
				Expected: "a response",
				Actual:   err.Error(),
				Fatal:    true,
			},
		},
	}
}

// NotFound builds the contract for an id that must not resolve.
func NotFound(name string) *Contract {
	return &Contract{
		Name:     name,
		Status:   http.StatusNotFound,
		NotFound: true,
	}
}
