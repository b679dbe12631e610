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
	"slices"

	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/reporter"
)

// Pass succeeds for a passing verdict, the failure message carries the
// formatted violations.
func Pass() types.GomegaMatcher {
	return gcustom.MakeMatcher(func(v contract.Verdict) (bool, error) {
		return v.Passed, nil
	}).WithMessage("pass its contract")
}

// HaveViolation succeeds when the verdict carries a violation of check.
func HaveViolation(check string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(v contract.Verdict) (bool, error) {
		return slices.ContainsFunc(v.Violations, func(violation contract.Violation) bool {
			return violation.Check == check
		}), nil
	}).WithMessage("have a " + check + " violation")
}

// AllPass succeeds for a non-empty summary without failures.
func AllPass() types.GomegaMatcher {
	return gcustom.MakeMatcher(func(s reporter.Summary) (bool, error) {
		return s.Total > 0 && s.OK(), nil
	}).WithMessage("record only passing verdicts")
}
