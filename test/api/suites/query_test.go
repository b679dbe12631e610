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
	"net/url"
	"slices"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
	"github.com/unikorn-cloud/placeholder-conformance/test/api"
)

var _ = Describe("Headers and Queries", func() {
	e := endpoints.NewEndpoints()

	Context("When listing posts", func() {
		It("should describe the response in its headers", func() {
			snapshot, err := env.Client.Get(ctx, e.List(endpoints.Posts), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot.Header.Get("Content-Type")).To(ContainSubstring("application/json"))
			Expect(snapshot.Header.Get("Cache-Control")).NotTo(BeEmpty())

			if config.Expectations.ForbidCORS {
				Expect(snapshot.Header.Values("Access-Control-Allow-Origin")).To(BeEmpty())
			}
		})

		It("should limit the page size", func() {
			limit := config.Expectations.PageSize

			posts := api.FetchList(env.Client, ctx, e.List(endpoints.Posts), url.Values{"_limit": []string{strconv.Itoa(limit)}})
			Expect(posts).To(HaveLen(limit))
		})

		It("should filter by user", func() {
			posts := api.FetchList(env.Client, ctx, e.List(endpoints.Posts), url.Values{"userId": []string{"1"}})
			Expect(posts).NotTo(BeEmpty())
			Expect(posts).To(HaveEach(HaveKeyWithValue("userId", BeNumerically("==", 1))))
		})

		It("should sort by descending id", func() {
			posts := api.FetchList(env.Client, ctx, e.List(endpoints.Posts), url.Values{"_sort": []string{"id"}, "_order": []string{"desc"}})

			ids := api.IDs(posts)
			Expect(ids).NotTo(BeEmpty())
			Expect(slices.IsSortedFunc(ids, func(a, b float64) int {
				switch {
				case a > b:
					return -1
				case a < b:
					return 1
				}

				return 0
			})).To(BeTrue())
		})
	})

	Context("When listing comments of a post", func() {
		It("should agree between the filter and the nested route", func() {
			filtered := api.FetchList(env.Client, ctx, e.List(endpoints.Comments), url.Values{"postId": []string{"1"}})
			routed := api.FetchList(env.Client, ctx, e.PostComments(1), nil)

			Expect(filtered).NotTo(BeEmpty())
			Expect(filtered).To(HaveEach(HaveKeyWithValue("postId", BeNumerically("==", 1))))
			Expect(api.IDs(routed)).To(Equal(api.IDs(filtered)))
		})
	})
})
