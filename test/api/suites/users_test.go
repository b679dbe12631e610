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
	"github.com/unikorn-cloud/placeholder-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/placeholder-conformance/test/api"

	"k8s.io/apimachinery/pkg/util/sets"
)

func keys(object map[string]any) sets.Set[string] {
	return sets.KeySet(object)
}

func nested(object map[string]any, key string) map[string]any {
	Expect(object).To(HaveKeyWithValue(key, BeAssignableToTypeOf(map[string]any{})))

	return object[key].(map[string]any) //nolint:forcetypeassert // asserted above
}

var _ = Describe("User Retrieval", func() {
	e := endpoints.NewEndpoints()

	Context("When retrieving a specific user", func() {
		DescribeTable("Given the user exists",
			func(id int) {
				user := api.FetchObject(env.Client, ctx, e.Get(endpoints.Users, id))

				Expect(keys(user).IsSuperset(fixtures.UserKeys())).To(BeTrue())
				Expect(user).To(HaveKeyWithValue("id", BeNumerically("==", id)))
				Expect(user).To(HaveKeyWithValue("name", BeAssignableToTypeOf("")))
				Expect(user).To(HaveKeyWithValue("username", BeAssignableToTypeOf("")))
				Expect(user).To(HaveKeyWithValue("email", And(ContainSubstring("@"), ContainSubstring("."))))

				address := nested(user, "address")
				Expect(keys(address).IsSuperset(fixtures.AddressKeys())).To(BeTrue())
				Expect(keys(nested(address, "geo")).IsSuperset(fixtures.GeoKeys())).To(BeTrue())
				Expect(keys(nested(user, "company")).IsSuperset(fixtures.CompanyKeys())).To(BeTrue())
			},
			Entry("first", 1),
			Entry("middle", 5),
			Entry("last", 10),
		)

		DescribeTable("Given the user does not exist",
			func(id int) {
				snapshot, err := env.Client.Get(ctx, e.Get(endpoints.Users, id), nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.StatusCode).To(Equal(http.StatusNotFound))
			},
			Entry("past the end", 11),
			Entry("zero", 0),
			Entry("negative", -1),
		)

		It("should satisfy the catalogued user contract", func() {
			c, ok := env.Case("get-users[id=1]")
			Expect(ok).To(BeTrue())

			verdict := env.Execute(ctx, c)
			Expect(verdict).To(api.Pass())
			Expect(verdict).NotTo(api.HaveViolation(contract.CheckField))
		})
	})
})
