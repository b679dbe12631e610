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

package endpoints_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	e := endpoints.NewEndpoints()

	d := e.GetDescriptor(endpoints.Posts)
	require.Equal(t, http.MethodGet, d.Method)

	path, err := d.Expand(map[string]string{"id": "1"})
	require.NoError(t, err)
	require.Equal(t, "/posts/1", path)
	require.Equal(t, e.Get(endpoints.Posts, 1), path)

	path, err = d.Expand(map[string]string{"id": "-1"})
	require.NoError(t, err)
	require.Equal(t, "/posts/-1", path)
}

func TestExpandNoParameters(t *testing.T) {
	t.Parallel()

	d := endpoints.NewEndpoints().ListDescriptor(endpoints.Photos, nil)

	path, err := d.Expand(nil)
	require.NoError(t, err)
	require.Equal(t, "/photos", path)
}

func TestExpandErrors(t *testing.T) {
	t.Parallel()

	d := endpoints.NewEndpoints().UpdateDescriptor(endpoints.Posts)

	_, err := d.Expand(nil)
	require.ErrorIs(t, err, endpoints.ErrMissingParameter)

	_, err = d.Expand(map[string]string{"id": "1", "slug": "x"})
	require.ErrorIs(t, err, endpoints.ErrUnknownParameter)
}

func TestResources(t *testing.T) {
	t.Parallel()

	require.Equal(t, []endpoints.Resource{"posts", "users", "comments", "albums", "photos"}, endpoints.Resources())
	require.Equal(t, "/posts/7/comments", endpoints.NewEndpoints().PostComments(7))
}
