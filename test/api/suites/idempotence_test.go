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

	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
	"github.com/unikorn-cloud/placeholder-conformance/test/api"
)

// withoutLatency drops timing dependent violations so verdicts compare.
func withoutLatency(violations []contract.Violation) []contract.Violation {
	out := []contract.Violation{}

	for _, violation := range violations {
		if violation.Check != contract.CheckLatency {
			out = append(out, violation)
		}
	}

	return out
}

var _ = Describe("Idempotence", func() {
	e := endpoints.NewEndpoints()

	DescribeTable("executing a case twice yields the same verdict",
		func(id string) {
			c, ok := env.Case(id)
			Expect(ok).To(BeTrue(), "no catalogued case %s", id)

			first := env.Execute(ctx, c)
			second := env.Execute(ctx, c)

			Expect(second.Passed).To(Equal(first.Passed))
			Expect(second.StatusCode).To(Equal(first.StatusCode))
			Expect(withoutLatency(second.Violations)).To(Equal(withoutLatency(first.Violations)))
		},
		Entry("existing post", "get-posts[id=1]"),
		Entry("missing post", "get-posts[id=101]"),
		Entry("delete", "delete-posts[id=1]"),
	)

	It("should return the same post body on repeated reads", func() {
		first := api.FetchObject(env.Client, ctx, e.Get(endpoints.Posts, 1))
		second := api.FetchObject(env.Client, ctx, e.Get(endpoints.Posts, 1))

		Expect(second).To(Equal(first))
	})

	It("should not persist a delete", func() {
		snapshot, err := env.Client.Delete(ctx, e.Get(endpoints.Posts, 1))
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.StatusCode).To(Equal(config.Expectations.DeleteStatus))

		snapshot, err = env.Client.Get(ctx, e.Get(endpoints.Posts, 1), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.StatusCode).To(Equal(http.StatusOK))
	})
})
