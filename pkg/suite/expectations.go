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

package suite

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/fixtures"
	"gopkg.in/yaml.v3"
)

// ErrInvalidExpectations is raised when an expectations file is unusable.
var ErrInvalidExpectations = errors.New("invalid expectations")

// Expectations are behaviours specific to the service under test rather
// than general API contract rules, they may be overridden per deployment.
type Expectations struct {
	// Cardinalities are the documented collection sizes.
	Cardinalities map[endpoints.Resource]int `yaml:"cardinalities"`
	// ForbidCORS requires Access-Control-Allow-Origin to be absent.
	ForbidCORS bool `yaml:"forbidCORS"`
	// MissingUpdateStatus is returned when replacing a post that does not exist.
	MissingUpdateStatus int `yaml:"missingUpdateStatus"`
	// DeleteStatus is returned for every delete, existing or not.
	DeleteStatus int `yaml:"deleteStatus"`
	// CreateStatus is returned for every create.
	CreateStatus int `yaml:"createStatus"`
	// PageSize is the _limit used by the pagination case.
	PageSize int `yaml:"pageSize"`
}

// DefaultExpectations match the public service's current behaviour.
func DefaultExpectations() Expectations {
	return Expectations{
		Cardinalities:       fixtures.Cardinalities(),
		ForbidCORS:          true,
		MissingUpdateStatus: http.StatusInternalServerError,
		DeleteStatus:        http.StatusOK,
		CreateStatus:        http.StatusCreated,
		PageSize:            10,
	}
}

// LoadExpectations overlays a YAML file onto the defaults.  Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadExpectations(path string) (Expectations, error) {
	e := DefaultExpectations()

	data, err := os.ReadFile(path)
	if err != nil {
		return e, fmt.Errorf("reading expectations: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&e); err != nil {
		return e, fmt.Errorf("%w: %w", ErrInvalidExpectations, err)
	}

	if err := e.Validate(); err != nil {
		return e, err
	}

	return e, nil
}

func validStatus(status int) bool {
	return status >= 100 && status < 600
}

// Validate checks the expectations are self consistent.
func (e Expectations) Validate() error {
	for _, resource := range endpoints.Resources() {
		if e.Cardinalities[resource] < 1 {
			return fmt.Errorf("%w: cardinality of %s must be positive", ErrInvalidExpectations, resource)
		}
	}

	statuses := map[string]int{
		"missingUpdateStatus": e.MissingUpdateStatus,
		"deleteStatus":        e.DeleteStatus,
		"createStatus":        e.CreateStatus,
	}

	for name, status := range statuses {
		if !validStatus(status) {
			return fmt.Errorf("%w: %s %d is not an HTTP status", ErrInvalidExpectations, name, status)
		}
	}

	if e.PageSize < 1 {
		return fmt.Errorf("%w: pageSize must be positive", ErrInvalidExpectations)
	}

	return nil
}
