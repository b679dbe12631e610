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
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/client"

	"k8s.io/apimachinery/pkg/util/sets"
)

// maxElementViolations bounds per element reports for one list check.
const maxElementViolations = 5

// Matcher verifies snapshots against contracts.  It holds no per case state
// and may be shared by concurrent workers.
type Matcher struct {
	schemas    *Schemas
	schemasErr error
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithSchemas replaces the embedded service description used by the schema
// check group.
func WithSchemas(schemas *Schemas) MatcherOption {
	return func(m *Matcher) {
		m.schemas = schemas
	}
}

// NewMatcher creates a matcher that validates against the embedded service
// description unless WithSchemas says otherwise.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{}

	for _, opt := range opts {
		opt(m)
	}

	if m.schemas == nil {
		m.schemas, m.schemasErr = embeddedSchemas()
	}

	return m
}

// Verify checks a snapshot with a default matcher.
func Verify(caseID string, snapshot *client.Snapshot, c *Contract) Verdict {
	return NewMatcher().Verify(caseID, snapshot, c)
}

// verification accumulates violations for a single snapshot.
type verification struct {
	violations []Violation
}

func (v *verification) fail(check, path, expected, actual string) {
	v.violations = append(v.violations, Violation{Check: check, Path: path, Expected: expected, Actual: actual, Fatal: true})
}

func (v *verification) warn(check, path, expected, actual string) {
	v.violations = append(v.violations, Violation{Check: check, Path: path, Expected: expected, Actual: actual})
}

// Verify runs every check group in order, all groups execute so every
// violation is reported.  Not found contracts skip everything after latency.
func (m *Matcher) Verify(caseID string, snapshot *client.Snapshot, c *Contract) Verdict {
	v := &verification{}

	checkStatus(v, snapshot, c)
	checkLatency(v, snapshot, c)

	if !c.NotFound {
		checkContentType(v, snapshot, c)
		checkHeaders(v, snapshot, c)

		if body, ok := checkDecode(v, snapshot, c); ok {
			checkShape(v, snapshot, c)
			checkFields(v, body, c)
			checkNested(v, body, c)
			checkEcho(v, snapshot, c)
			checkEvery(v, body, c)
			checkSorted(v, body, c)
			m.checkSchema(v, snapshot, c)
		}
	}

	verdict := Verdict{
		CaseID:     caseID,
		Contract:   c.Name,
		Passed:     true,
		StatusCode: snapshot.StatusCode,
		Elapsed:    snapshot.Elapsed,
		Violations: v.violations,
	}

	for _, violation := range v.violations {
		if violation.Fatal {
			verdict.Passed = false
			break
		}
	}

	return verdict
}

func checkStatus(v *verification, s *client.Snapshot, c *Contract) {
	if s.StatusCode != c.Status {
		v.fail(CheckStatus, "", fmt.Sprint(c.Status), fmt.Sprint(s.StatusCode))
	}
}

func checkLatency(v *verification, s *client.Snapshot, c *Contract) {
	if c.LatencyCeiling <= 0 || s.Elapsed < c.LatencyCeiling {
		return
	}

	expected, actual := "below "+c.LatencyCeiling.String(), s.Elapsed.String()

	if c.LatencyFatal {
		v.fail(CheckLatency, "", expected, actual)
	} else {
		v.warn(CheckLatency, "", expected, actual)
	}
}

func checkContentType(v *verification, s *client.Snapshot, c *Contract) {
	if !c.ExpectJSON {
		return
	}

	if contentType := s.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		v.fail(CheckContentType, "", "application/json", fmt.Sprintf("%q", contentType))
	}
}

func checkHeaders(v *verification, s *client.Snapshot, c *Contract) {
	for _, name := range c.RequiredHeaders {
		if len(s.Header.Values(name)) == 0 {
			v.fail(CheckHeader, name, "present", "absent")
		}
	}

	for _, name := range c.ForbiddenHeaders {
		if values := s.Header.Values(name); len(values) > 0 {
			v.fail(CheckHeader, name, "absent", fmt.Sprintf("%q", strings.Join(values, ", ")))
		}
	}
}

// checkDecode reports undecodable bodies when the contract inspects the body,
// returning the parsed document for gjson based checks.
func checkDecode(v *verification, s *client.Snapshot, c *Contract) (gjson.Result, bool) {
	if !c.ExpectJSON && c.Shape == ShapeNone {
		return gjson.Result{}, false
	}

	if s.DecodeErr != nil {
		v.fail(CheckDecode, "", "a JSON body", s.DecodeErr.Error())
		return gjson.Result{}, false
	}

	if len(s.Body) == 0 {
		if c.Shape != ShapeNone {
			v.fail(CheckDecode, "", "a JSON body", "empty body")
		}

		return gjson.Result{}, false
	}

	return gjson.ParseBytes(s.Body), true
}

func jsonType(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}

	return fmt.Sprintf("%T", value)
}

func checkShape(v *verification, s *client.Snapshot, c *Contract) {
	switch c.Shape {
	case ShapeObject:
		object, ok := s.JSON.(map[string]any)
		if !ok {
			v.fail(CheckShape, "", "object", jsonType(s.JSON))
			return
		}

		if c.RequiredKeys == nil {
			return
		}

		actual := sets.KeySet(object)
		if missing := c.RequiredKeys.Difference(actual); missing.Len() > 0 {
			v.fail(CheckKeys, "", fmt.Sprintf("keys %v", sets.List(c.RequiredKeys)), fmt.Sprintf("missing %v", sets.List(missing)))
		}
	case ShapeList:
		list, ok := s.JSON.([]any)
		if !ok {
			v.fail(CheckShape, "", "list", jsonType(s.JSON))
			return
		}

		if c.ExactCount != nil && len(list) != *c.ExactCount {
			v.fail(CheckCount, "", fmt.Sprintf("%d elements", *c.ExactCount), fmt.Sprintf("%d elements", len(list)))
		}

		if c.MinCount != nil && len(list) < *c.MinCount {
			v.fail(CheckCount, "", fmt.Sprintf("at least %d elements", *c.MinCount), fmt.Sprintf("%d elements", len(list)))
		}

		if c.RequiredKeys != nil {
			checkElementKeys(v, list, c.RequiredKeys)
		}
	case ShapeNone:
	}
}

func checkElementKeys(v *verification, list []any, required sets.Set[string]) {
	reported := 0

	for i, element := range list {
		object, ok := element.(map[string]any)
		if !ok {
			v.fail(CheckShape, fmt.Sprintf("[%d]", i), "object", jsonType(element))
		} else if missing := required.Difference(sets.KeySet(object)); missing.Len() > 0 {
			v.fail(CheckKeys, fmt.Sprintf("[%d]", i), fmt.Sprintf("keys %v", sets.List(required)), fmt.Sprintf("missing %v", sets.List(missing)))
		} else {
			continue
		}

		if reported++; reported == maxElementViolations {
			return
		}
	}
}

func checkField(v *verification, check, prefix string, document gjson.Result, field FieldCheck) bool {
	path := prefix + field.Path

	result := document.Get(field.Path)
	if !result.Exists() {
		v.fail(check, path, field.Predicate.Description, "missing")
		return false
	}

	if ok, detail := field.Predicate.Check(result.Value()); !ok {
		v.fail(check, path, field.Predicate.Description, compact(detail))
		return false
	}

	return true
}

func checkFields(v *verification, body gjson.Result, c *Contract) {
	for _, field := range c.Fields {
		checkField(v, CheckField, "", body, field)
	}
}

func checkNested(v *verification, body gjson.Result, c *Contract) {
	for _, nested := range c.Nested {
		result := body.Get(nested.Path)

		object, ok := result.Value().(map[string]any)
		if !result.Exists() || !ok {
			v.fail(CheckNested, nested.Path, "object", jsonType(result.Value()))
			continue
		}

		if nested.RequiredKeys != nil {
			if missing := nested.RequiredKeys.Difference(sets.KeySet(object)); missing.Len() > 0 {
				v.fail(CheckNested, nested.Path, fmt.Sprintf("keys %v", sets.List(nested.RequiredKeys)), fmt.Sprintf("missing %v", sets.List(missing)))
			}
		}

		for _, field := range nested.Fields {
			checkField(v, CheckNested, nested.Path+".", result, field)
		}
	}
}

// normalize converts a Go value to the form encoding/json decodes it to.
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func checkEcho(v *verification, s *client.Snapshot, c *Contract) {
	if len(c.Echo) == 0 {
		return
	}

	object, ok := s.JSON.(map[string]any)
	if !ok {
		v.fail(CheckEcho, "", "object", jsonType(s.JSON))
		return
	}

	for _, key := range sets.List(sets.KeySet(c.Echo)) {
		expected, err := normalize(c.Echo[key])
		if err != nil {
			v.fail(CheckEcho, key, "a serializable value", err.Error())
			continue
		}

		actual, ok := object[key]
		if !ok {
			v.fail(CheckEcho, key, fmt.Sprintf("%v", expected), "missing")
			continue
		}

		if !reflect.DeepEqual(expected, actual) {
			v.fail(CheckEcho, key, fmt.Sprintf("%v", expected), fmt.Sprintf("%v", actual))
		}
	}
}

func checkEvery(v *verification, body gjson.Result, c *Contract) {
	if len(c.Every) == 0 {
		return
	}

	if !body.IsArray() {
		v.fail(CheckFilter, "", "list", body.Type.String())
		return
	}

	elements := body.Array()

	for _, field := range c.Every {
		reported := 0

		for i, element := range elements {
			if checkField(v, CheckFilter, fmt.Sprintf("[%d].", i), element, field) {
				continue
			}

			if reported++; reported == maxElementViolations {
				break
			}
		}
	}
}

// compareResults orders two gjson values numerically when both are numbers
// and lexically otherwise.
func compareResults(a, b gjson.Result) int {
	if a.Type == gjson.Number && b.Type == gjson.Number {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}

		return 0
	}

	return strings.Compare(a.String(), b.String())
}

func missingSortKey(v *verification, elements []gjson.Result, key string) bool {
	reported := 0

	for i, element := range elements {
		if element.Get(key).Exists() {
			continue
		}

		v.fail(CheckSort, fmt.Sprintf("[%d].%s", i, key), "present", "missing")

		if reported++; reported == maxElementViolations {
			break
		}
	}

	return reported > 0
}

// checkSorted evaluates the whole list from the one snapshot, it never refetches.
func checkSorted(v *verification, body gjson.Result, c *Contract) {
	if len(c.Sorted) == 0 {
		return
	}

	if !body.IsArray() {
		v.fail(CheckSort, "", "list", body.Type.String())
		return
	}

	elements := body.Array()

	for _, sort := range c.Sorted {
		expected := "non-decreasing"
		if sort.Descending {
			expected = "non-increasing"
		}

		// Ordering is meaningless unless every element carries the key.
		if missingSortKey(v, elements, sort.Key) {
			continue
		}

		for i := 1; i < len(elements); i++ {
			previous, current := elements[i-1].Get(sort.Key), elements[i].Get(sort.Key)

			order := compareResults(previous, current)
			if (sort.Descending && order < 0) || (!sort.Descending && order > 0) {
				v.fail(CheckSort, fmt.Sprintf("[%d].%s", i, sort.Key), expected, fmt.Sprintf("%s after %s", current.String(), previous.String()))
				break
			}
		}
	}
}

func (m *Matcher) checkSchema(v *verification, s *client.Snapshot, c *Contract) {
	if c.Schema == "" {
		return
	}

	if m.schemasErr != nil {
		v.fail(CheckSchema, c.Schema, "a loadable service description", compact(m.schemasErr.Error()))
		return
	}

	if err := m.schemas.Validate(c.Schema, s.JSON); err != nil {
		v.fail(CheckSchema, c.Schema, "a schema valid body", compact(err.Error()))
	}
}

// compact folds multi line matcher output onto one line.
func compact(message string) string {
	return strings.Join(strings.Fields(message), " ")
}
