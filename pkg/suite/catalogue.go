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
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/cases"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/fixtures"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
)

// schemaNames maps resources to their OpenAPI component names.
var schemaNames = map[endpoints.Resource]string{
	endpoints.Posts:    "Post",
	endpoints.Users:    "User",
	endpoints.Comments: "Comment",
	endpoints.Albums:   "Album",
	endpoints.Photos:   "Photo",
}

// Catalogue holds every case run against the service.
type Catalogue struct {
	expectations   Expectations
	endpoints      *endpoints.Endpoints
	latencyCeiling time.Duration
	latencyFatal   bool
}

// Option customizes a Catalogue.
type Option func(*Catalogue)

// WithLatency sets the ceiling applied to every contract.
func WithLatency(ceiling time.Duration, fatal bool) Option {
	return func(c *Catalogue) {
		c.latencyCeiling = ceiling
		c.latencyFatal = fatal
	}
}

// New creates a catalogue for the given expectations.
func New(expectations Expectations, opts ...Option) *Catalogue {
	c := &Catalogue{
		expectations:   expectations,
		endpoints:      endpoints.NewEndpoints(),
		latencyCeiling: 2 * time.Second,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Expectations returns the service expectations in effect.
func (c *Catalogue) Expectations() Expectations {
	return c.expectations
}

func (c *Catalogue) base(name string, status int) *contract.Contract {
	return &contract.Contract{
		Name:           name,
		Status:         status,
		LatencyCeiling: c.latencyCeiling,
		LatencyFatal:   c.latencyFatal,
	}
}

func (c *Catalogue) json(name string, status int, shape contract.Shape) *contract.Contract {
	out := c.base(name, status)
	out.ExpectJSON = true
	out.Shape = shape

	return out
}

func (c *Catalogue) notFound(name string) *contract.Contract {
	out := contract.NotFound(name)
	out.LatencyCeiling = c.latencyCeiling
	out.LatencyFatal = c.latencyFatal

	return out
}

func idParams(id int) map[string]string {
	return map[string]string{"id": strconv.Itoa(id)}
}

// sampleIDs returns ids expected to resolve followed by ids that must not.
func sampleIDs(cardinality int) ([]int, []int) {
	present := []int{1}

	if middle := cardinality / 2; middle > 1 && middle < cardinality {
		present = append(present, middle)
	}

	if cardinality > 1 {
		present = append(present, cardinality)
	}

	return present, []int{cardinality + 1, 0, -1}
}

// rename gives a descriptor a distinct name so case ids stay unique when
// the same endpoint is exercised by different groups.
func rename(descriptor endpoints.Descriptor, prefix string) endpoints.Descriptor {
	descriptor.Name = prefix + "-" + strings.TrimPrefix(descriptor.Name, "list-")

	return descriptor
}

// Cases yields the whole catalogue in a fixed order.
func (c *Catalogue) Cases() iter.Seq[cases.Case] {
	return cases.Concat(
		c.Collections(),
		c.Posts(),
		c.Users(),
		c.CreatePosts(),
		c.UpdatePosts(),
		c.DeletePosts(),
		c.Headers(),
		c.Queries(),
		c.PostComments(),
	)
}

// Collections checks each collection returns its documented cardinality.
func (c *Catalogue) Collections() iter.Seq[cases.Case] {
	seqs := make([]iter.Seq[cases.Case], 0, len(endpoints.Resources()))

	for _, resource := range endpoints.Resources() {
		cardinality := c.expectations.Cardinalities[resource]

		expected := c.json("collection-"+string(resource), http.StatusOK, contract.ShapeList)
		expected.ExactCount = ptr.To(cardinality)
		expected.RequiredKeys = fixtures.Keys(resource)
		expected.Schema = schemaNames[resource] + "List"

		descriptor := c.endpoints.ListDescriptor(resource, ptr.To(cardinality))

		seqs = append(seqs, cases.Generate(descriptor, []cases.ParameterSet{{Contract: expected}}))
	}

	return cases.Concat(seqs...)
}

func (c *Catalogue) post(id int) *contract.Contract {
	out := c.json("post", http.StatusOK, contract.ShapeObject)
	out.RequiredKeys = fixtures.PostKeys()
	out.Fields = []contract.FieldCheck{
		{Path: "userId", Predicate: contract.Integer()},
		{Path: "userId", Predicate: contract.Positive()},
		{Path: "id", Predicate: contract.Integer()},
		{Path: "id", Predicate: contract.Equals(id)},
		{Path: "title", Predicate: contract.NonEmptyString()},
		{Path: "body", Predicate: contract.NonEmptyString()},
	}
	out.Schema = schemaNames[endpoints.Posts]

	return out
}

func (c *Catalogue) user(id int) *contract.Contract {
	out := c.json("user", http.StatusOK, contract.ShapeObject)
	out.RequiredKeys = fixtures.UserKeys()
	out.Fields = []contract.FieldCheck{
		{Path: "id", Predicate: contract.Integer()},
		{Path: "id", Predicate: contract.Equals(id)},
		{Path: "name", Predicate: contract.String()},
		{Path: "username", Predicate: contract.String()},
		{Path: "email", Predicate: contract.Email()},
		{Path: "address", Predicate: contract.Object()},
		{Path: "company", Predicate: contract.Object()},
	}
	out.Nested = []contract.NestedContract{
		{Path: "address", RequiredKeys: fixtures.AddressKeys()},
		{Path: "address.geo", RequiredKeys: fixtures.GeoKeys()},
		{Path: "company", RequiredKeys: fixtures.CompanyKeys()},
	}
	out.Schema = schemaNames[endpoints.Users]

	return out
}

// lookups builds get cases for ids either side of the valid range.
func (c *Catalogue) lookups(resource endpoints.Resource, found func(int) *contract.Contract) iter.Seq[cases.Case] {
	present, absent := sampleIDs(c.expectations.Cardinalities[resource])

	missing := c.notFound(strings.TrimSuffix(string(resource), "s") + "-not-found")

	params := make([]cases.ParameterSet, 0, len(present)+len(absent))

	for _, id := range present {
		params = append(params, cases.ParameterSet{PathParams: idParams(id), Contract: found(id)})
	}

	for _, id := range absent {
		params = append(params, cases.ParameterSet{PathParams: idParams(id), Contract: missing})
	}

	return cases.Generate(c.endpoints.GetDescriptor(resource), params)
}

// Posts fetches individual posts inside and outside the valid id range.
func (c *Catalogue) Posts() iter.Seq[cases.Case] {
	return c.lookups(endpoints.Posts, c.post)
}

// Users fetches individual users and checks their nested structure.
func (c *Catalogue) Users() iter.Seq[cases.Case] {
	return c.lookups(endpoints.Users, c.user)
}

// written expects the submitted payload reflected with an integer id.
func (c *Catalogue) written(name string, status int, payload map[string]any) *contract.Contract {
	out := c.json(name, status, contract.ShapeObject)
	out.RequiredKeys = sets.New("id")
	out.Fields = []contract.FieldCheck{
		{Path: "id", Predicate: contract.Integer()},
	}
	out.Echo = payload
	out.Schema = "CreatedPost"

	return out
}

// CreatePosts submits complete, partial and empty posts.
func (c *Catalogue) CreatePosts() iter.Seq[cases.Case] {
	status := c.expectations.CreateStatus

	payloads := []map[string]any{
		fixtures.NewPostPayload().WithBody("Test Body").Build(),
		fixtures.NewPostPayload().WithTitle("").WithBody("Test Body").Build(),
		fixtures.NewPostPayload().WithBody("").Build(),
		fixtures.Empty().Build(),
	}

	params := make([]cases.ParameterSet, 0, len(payloads))

	for _, payload := range payloads {
		params = append(params, cases.ParameterSet{
			Payload:  payload,
			Contract: c.written("post-created", status, payload),
		})
	}

	return cases.Generate(c.endpoints.CreateDescriptor(endpoints.Posts), params)
}

// UpdatePosts replaces existing posts in full and in part, then one that
// does not exist.
func (c *Catalogue) UpdatePosts() iter.Seq[cases.Case] {
	cardinality := c.expectations.Cardinalities[endpoints.Posts]
	present, _ := sampleIDs(cardinality)

	payloads := []map[string]any{
		fixtures.NewPostPayload().WithTitle("Updated Title").WithBody("Updated Body").Build(),
		fixtures.Empty().WithTitle("Another Update").Build(),
		fixtures.Empty().WithBody("Only body update").Build(),
	}

	params := make([]cases.ParameterSet, 0, len(present)+1)

	for i, id := range present {
		payload := payloads[i%len(payloads)]

		params = append(params, cases.ParameterSet{
			PathParams: idParams(id),
			Payload:    payload,
			Contract:   c.written("post-updated", http.StatusOK, payload),
		})
	}

	params = append(params, cases.ParameterSet{
		PathParams: idParams(cardinality + 1),
		Payload:    fixtures.Empty().WithTitle("Update non-existent").Build(),
		Contract:   c.base("post-update-missing", c.expectations.MissingUpdateStatus),
	})

	return cases.Generate(c.endpoints.UpdateDescriptor(endpoints.Posts), params)
}

// DeletePosts removes existing and missing posts, both are acknowledged.
func (c *Catalogue) DeletePosts() iter.Seq[cases.Case] {
	cardinality := c.expectations.Cardinalities[endpoints.Posts]
	present, _ := sampleIDs(cardinality)

	expected := c.base("post-deleted", c.expectations.DeleteStatus)

	params := make([]cases.ParameterSet, 0, len(present)+1)

	for _, id := range append(present, cardinality+1) {
		params = append(params, cases.ParameterSet{PathParams: idParams(id), Contract: expected})
	}

	return cases.Generate(c.endpoints.DeleteDescriptor(endpoints.Posts), params)
}

// Headers checks the response headers of the post collection.
func (c *Catalogue) Headers() iter.Seq[cases.Case] {
	expected := c.json("headers", http.StatusOK, contract.ShapeNone)
	expected.RequiredHeaders = []string{"Content-Type", "Cache-Control"}

	if c.expectations.ForbidCORS {
		expected.ForbiddenHeaders = []string{"Access-Control-Allow-Origin"}
	}

	descriptor := rename(c.endpoints.ListDescriptor(endpoints.Posts, nil), "headers")

	return cases.Generate(descriptor, []cases.ParameterSet{{Contract: expected}})
}

// Queries exercises pagination, filtering and sorting of posts.
func (c *Catalogue) Queries() iter.Seq[cases.Case] {
	paged := c.json("paginated", http.StatusOK, contract.ShapeList)
	paged.ExactCount = ptr.To(c.expectations.PageSize)

	filtered := c.json("filtered", http.StatusOK, contract.ShapeList)
	filtered.MinCount = ptr.To(1)
	filtered.Every = []contract.FieldCheck{
		{Path: "userId", Predicate: contract.Equals(1)},
	}

	sorted := c.json("sorted", http.StatusOK, contract.ShapeList)
	sorted.MinCount = ptr.To(1)
	sorted.Sorted = []contract.SortCheck{
		{Key: "id", Descending: true},
	}

	params := []cases.ParameterSet{
		{
			Query:    url.Values{"_limit": []string{strconv.Itoa(c.expectations.PageSize)}},
			Contract: paged,
		},
		{
			Query:    url.Values{"userId": []string{"1"}},
			Contract: filtered,
		},
		{
			Query:    url.Values{"_sort": []string{"id"}, "_order": []string{"desc"}},
			Contract: sorted,
		},
	}

	descriptor := rename(c.endpoints.ListDescriptor(endpoints.Posts, nil), "query")

	return cases.Generate(descriptor, params)
}

// PostComments fetches the comments of the first post both by filter and
// by the nested route, each element must reference the post.
func (c *Catalogue) PostComments() iter.Seq[cases.Case] {
	expected := c.json("post-comments", http.StatusOK, contract.ShapeList)
	expected.MinCount = ptr.To(1)
	expected.RequiredKeys = fixtures.CommentKeys()
	expected.Every = []contract.FieldCheck{
		{Path: "postId", Predicate: contract.Equals(1)},
	}
	expected.Schema = schemaNames[endpoints.Comments] + "List"

	filter := cases.Generate(rename(c.endpoints.ListDescriptor(endpoints.Comments, nil), "query"), []cases.ParameterSet{
		{Query: url.Values{"postId": []string{"1"}}, Contract: expected},
	})

	nested := cases.Generate(c.endpoints.PostCommentsDescriptor(), []cases.ParameterSet{
		{PathParams: idParams(1), Contract: expected},
	})

	return cases.Concat(filter, nested)
}
