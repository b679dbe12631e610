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

package cases

import (
	"encoding/json"
	"iter"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
)

// ParameterSet is one explicit input/outcome pairing for an endpoint.
type ParameterSet struct {
	PathParams map[string]string
	Query      url.Values
	// Payload is sent as JSON when non-nil, an empty map sends {}.
	Payload  any
	Contract *contract.Contract
}

// Case is one concrete request and its expected outcome.
type Case struct {
	Descriptor endpoints.Descriptor
	PathParams map[string]string
	Query      url.Values
	Payload    any
	Contract   *contract.Contract
}

// ID identifies the case by its descriptor and parameter tuple.  It is stable
// across runs.
func (c Case) ID() string {
	var parts []string

	for _, key := range slices.Sorted(maps.Keys(c.PathParams)) {
		parts = append(parts, key+"="+c.PathParams[key])
	}

	if len(c.Query) > 0 {
		parts = append(parts, "query="+c.Query.Encode())
	}

	if c.Payload != nil {
		body, err := json.Marshal(c.Payload)
		if err != nil {
			body = []byte("?")
		}

		parts = append(parts, "body="+string(body))
	}

	if len(parts) == 0 {
		return c.Descriptor.Name
	}

	return c.Descriptor.Name + "[" + strings.Join(parts, ",") + "]"
}

// Path expands the descriptor template with the case's path parameters.
func (c Case) Path() (string, error) {
	return c.Descriptor.Expand(c.PathParams)
}

func cloneValues(values url.Values) url.Values {
	if values == nil {
		return nil
	}

	out := make(url.Values, len(values))

	for key, value := range values {
		out[key] = slices.Clone(value)
	}

	return out
}

// Generate yields one case per parameter set.  The sequence is lazy, finite
// and may be ranged over any number of times with identical results; every
// iteration hands out fresh copies of the parameter maps.
func Generate(descriptor endpoints.Descriptor, params []ParameterSet) iter.Seq[Case] {
	return func(yield func(Case) bool) {
		for _, p := range params {
			c := Case{
				Descriptor: descriptor,
				PathParams: maps.Clone(p.PathParams),
				Query:      cloneValues(p.Query),
				Payload:    p.Payload,
				Contract:   p.Contract,
			}

			if !yield(c) {
				return
			}
		}
	}
}

// Concat joins sequences in order.
func Concat(seqs ...iter.Seq[Case]) iter.Seq[Case] {
	return func(yield func(Case) bool) {
		for _, seq := range seqs {
			for c := range seq {
				if !yield(c) {
					return
				}
			}
		}
	}
}
