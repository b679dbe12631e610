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
)

var _ = Describe("Post Writes", func() {
	e := endpoints.NewEndpoints()

	Context("When creating a post", func() {
		DescribeTable("should accept the payload and echo it with an id",
			func(builder *fixtures.PostPayloadBuilder) {
				payload := builder.Build()

				snapshot, err := env.Client.Post(ctx, e.List(endpoints.Posts), payload)
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.StatusCode).To(Equal(config.Expectations.CreateStatus))

				Expect(snapshot.JSON).To(HaveKeyWithValue("id", BeNumerically(">", 0)))

				for key, value := range payload {
					Expect(snapshot.JSON).To(HaveKeyWithValue(key, BeEquivalentTo(value)))
				}
			},
			Entry("complete", fixtures.NewPostPayload()),
			Entry("empty title", fixtures.NewPostPayload().WithTitle("")),
			Entry("empty body", fixtures.NewPostPayload().WithBody("")),
			Entry("without user", fixtures.NewPostPayload().Without("userId")),
			Entry("empty object", fixtures.Empty()),
		)
	})

	Context("When replacing a post", func() {
		DescribeTable("Given the post exists",
			func(id int, builder *fixtures.PostPayloadBuilder) {
				payload := builder.Build()

				snapshot, err := env.Client.Put(ctx, e.Get(endpoints.Posts, id), payload)
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.StatusCode).To(Equal(http.StatusOK))
				Expect(snapshot.JSON).To(HaveKeyWithValue("id", BeNumerically("==", id)))

				for key, value := range payload {
					Expect(snapshot.JSON).To(HaveKeyWithValue(key, BeEquivalentTo(value)))
				}
			},
			Entry("in full", 1, fixtures.NewPostPayload().WithTitle("Updated Title").WithBody("Updated Body")),
			Entry("title only", 50, fixtures.Empty().WithTitle("Another Update")),
			Entry("body only", 100, fixtures.Empty().WithBody("Only body update")),
		)

		It("should answer the expected status when the post does not exist", func() {
			snapshot, err := env.Client.Put(ctx, e.Get(endpoints.Posts, 101), fixtures.Empty().WithTitle("Update non-existent").Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot.StatusCode).To(Equal(config.Expectations.MissingUpdateStatus))
		})
	})

	Context("When deleting a post", func() {
		DescribeTable("should acknowledge the delete whether or not the post exists",
			func(id int) {
				snapshot, err := env.Client.Delete(ctx, e.Get(endpoints.Posts, id))
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.StatusCode).To(Equal(config.Expectations.DeleteStatus))
			},
			Entry("first", 1),
			Entry("middle", 50),
			Entry("last", 100),
			Entry("missing", 101),
		)
	})
})
