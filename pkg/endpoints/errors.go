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

package endpoints

import "errors"

var (
	// ErrUnknownParameter is raised when a parameter has no placeholder in the template.
	ErrUnknownParameter = errors.New("unknown path parameter")

	// ErrMissingParameter is raised when placeholders remain after expansion.
	ErrMissingParameter = errors.New("missing path parameter")
)
