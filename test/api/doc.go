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

// Package api provides end-to-end test utilities for the placeholder API.
//
// # Target Selection
//
// Suites run against an in-process fake provider unless API_BASE_URL is
// set, in which case the live service is exercised.  Both paths use the
// same transport client and contract matcher as the conformance binary, so
// a suite failure and a binary failure always mean the same thing.
//
// # Assertions
//
// Catalogue driven suites assert whole verdicts with the matchers in this
// package.  Hand written specs assert on snapshots directly with Gomega,
// which keeps the catalogue itself under test.
package api
