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
	"iter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/cases"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/suite"
	"github.com/unikorn-cloud/placeholder-conformance/test/api"
)

var _ = Describe("Conformance Catalogue", func() {
	DescribeTable("every case in the group passes its contract",
		func(group func(*suite.Catalogue) iter.Seq[cases.Case]) {
			r, rep := env.Runner()

			summary := r.Run(ctx, group(env.Catalogue))
			Expect(summary).To(api.AllPass())

			for _, verdict := range rep.Verdicts() {
				Expect(verdict).To(api.Pass())
			}
		},
		Entry("collections", (*suite.Catalogue).Collections),
		Entry("posts", (*suite.Catalogue).Posts),
		Entry("users", (*suite.Catalogue).Users),
		Entry("creates", (*suite.Catalogue).CreatePosts),
		Entry("updates", (*suite.Catalogue).UpdatePosts),
		Entry("deletes", (*suite.Catalogue).DeletePosts),
		Entry("headers", (*suite.Catalogue).Headers),
		Entry("queries", (*suite.Catalogue).Queries),
		Entry("post comments", (*suite.Catalogue).PostComments),
	)

	It("should record one verdict per case", func() {
		r, rep := env.Runner()

		summary := r.Run(ctx, env.Catalogue.Cases())

		ids := map[string]int{}
		for c := range env.Catalogue.Cases() {
			ids[c.ID()]++
		}

		Expect(summary.Total).To(Equal(len(ids)))

		for _, verdict := range rep.Verdicts() {
			Expect(ids).To(HaveKeyWithValue(verdict.CaseID, 1))
		}
	})
})
