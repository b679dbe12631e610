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
	"math"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

// Predicate is a named value check.  Matchers are evaluated directly, no
// gomega fail handler is involved.
type Predicate struct {
	Description string
	Matcher     types.GomegaMatcher
}

// Check evaluates the predicate, returning the matcher's explanation on failure.
func (p Predicate) Check(actual any) (bool, string) {
	success, err := p.Matcher.Match(actual)
	if err != nil {
		return false, err.Error()
	}

	if !success {
		return false, p.Matcher.FailureMessage(actual)
	}

	return true, ""
}

// Matching wraps an arbitrary matcher.
func Matching(description string, matcher types.GomegaMatcher) Predicate {
	return Predicate{Description: description, Matcher: matcher}
}

func integerMatcher() types.GomegaMatcher {
	return gcustom.MakeMatcher(func(actual any) (bool, error) {
		f, ok := actual.(float64)

		return ok && !math.IsInf(f, 0) && f == math.Trunc(f), nil
	}).WithMessage("be an integer")
}

// Integer requires a JSON number with no fractional part.
func Integer() Predicate {
	return Matching("integer", integerMatcher())
}

// String requires a JSON string.
func String() Predicate {
	return Matching("string", gomega.BeAssignableToTypeOf(""))
}

// NonEmptyString requires a JSON string with at least one character.
func NonEmptyString() Predicate {
	return Matching("non-empty string", gomega.And(gomega.BeAssignableToTypeOf(""), gomega.Not(gomega.BeEmpty())))
}

// Object requires a JSON object.
func Object() Predicate {
	return Matching("object", gomega.BeAssignableToTypeOf(map[string]any{}))
}

// Positive requires an integer greater than zero.
func Positive() Predicate {
	return Matching("positive integer", gomega.And(integerMatcher(), gomega.BeNumerically(">", 0)))
}

// InRange requires an integer within [lower, upper].
func InRange(lower, upper int) Predicate {
	return Matching("integer in range", gomega.And(integerMatcher(), gomega.BeNumerically(">=", lower), gomega.BeNumerically("<=", upper)))
}

// Equals requires a value equal to expected.  Numbers compare numerically so
// Go integers match decoded JSON numbers.
func Equals(expected any) Predicate {
	switch expected.(type) {
	case int, int32, int64, float32, float64:
		return Matching("equal", gomega.BeNumerically("==", expected))
	}

	return Matching("equal", gomega.Equal(expected))
}

// Email requires a string containing "@" and ".".
func Email() Predicate {
	return Matching("email", gomega.And(gomega.BeAssignableToTypeOf(""), gomega.ContainSubstring("@"), gomega.ContainSubstring(".")))
}
