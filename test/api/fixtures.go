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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"net/url"

	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/client"
)

// FetchObject gets path and expects a JSON object.
func FetchObject(cli *client.Client, ctx context.Context, path string) map[string]any {
	snapshot, err := cli.Get(ctx, path, nil)
	Expect(err).NotTo(HaveOccurred())
	Expect(snapshot.StatusCode).To(Equal(http.StatusOK), "GET %s trace %s", path, snapshot.TraceID)
	Expect(snapshot.DecodeErr).NotTo(HaveOccurred())
	Expect(snapshot.JSON).To(BeAssignableToTypeOf(map[string]any{}))

	return snapshot.JSON.(map[string]any) //nolint:forcetypeassert // asserted above
}

// FetchList gets path with an optional query and expects a JSON list of objects.
func FetchList(cli *client.Client, ctx context.Context, path string, query url.Values) []map[string]any {
	snapshot, err := cli.Get(ctx, path, query)
	Expect(err).NotTo(HaveOccurred())
	Expect(snapshot.StatusCode).To(Equal(http.StatusOK), "GET %s trace %s", path, snapshot.TraceID)
	Expect(snapshot.DecodeErr).NotTo(HaveOccurred())
	Expect(snapshot.JSON).To(BeAssignableToTypeOf([]any{}))

	list := snapshot.JSON.([]any) //nolint:forcetypeassert // asserted above

	out := make([]map[string]any, 0, len(list))

	for _, element := range list {
		Expect(element).To(BeAssignableToTypeOf(map[string]any{}))
		out = append(out, element.(map[string]any)) //nolint:forcetypeassert // asserted above
	}

	return out
}

// IDs extracts the id of each element.
func IDs(elements []map[string]any) []float64 {
	ids := make([]float64, 0, len(elements))

	for _, element := range elements {
		Expect(element).To(HaveKeyWithValue("id", BeAssignableToTypeOf(float64(0))))
		ids = append(ids, element["id"].(float64)) //nolint:forcetypeassert // asserted above
	}

	return ids
}
