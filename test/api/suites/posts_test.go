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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/placeholder-conformance/test/api"
)

var _ = Describe("Post Retrieval", func() {
	e := endpoints.NewEndpoints()

	Context("When listing every resource", func() {
		DescribeTable("should return the documented number of elements",
			func(resource endpoints.Resource) {
				elements := api.FetchList(env.Client, ctx, e.List(resource), nil)
				Expect(elements).To(HaveLen(config.Expectations.Cardinalities[resource]))

				for _, element := range elements {
					Expect(fixtures.Keys(resource).Difference(keys(element)).UnsortedList()).To(BeEmpty())
				}
			},
			Entry("posts", endpoints.Posts),
			Entry("users", endpoints.Users),
			Entry("comments", endpoints.Comments),
			Entry("albums", endpoints.Albums),
			Entry("photos", endpoints.Photos),
		)
	})

	Context("When retrieving a specific post", func() {
		DescribeTable("Given the post exists",
			func(id int) {
				post := api.FetchObject(env.Client, ctx, e.Get(endpoints.Posts, id))

				Expect(post).To(HaveKeyWithValue("id", BeNumerically("==", id)))
				Expect(post).To(HaveKeyWithValue("userId", BeNumerically(">", 0)))
				Expect(post).To(HaveKeyWithValue("title", Not(BeEmpty())))
				Expect(post).To(HaveKeyWithValue("body", Not(BeEmpty())))
			},
			Entry("first", 1),
			Entry("middle", 50),
			Entry("last", 100),
		)

		DescribeTable("Given the post does not exist",
			func(id int) {
				snapshot, err := env.Client.Get(ctx, e.Get(endpoints.Posts, id), nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.StatusCode).To(Equal(http.StatusNotFound))
			},
			Entry("past the end", 101),
			Entry("zero", 0),
			Entry("negative", -1),
		)
	})
})
