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

package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Resource is a collection exposed by the service.
type Resource string

const (
	Posts    Resource = "posts"
	Users    Resource = "users"
	Comments Resource = "comments"
	Albums   Resource = "albums"
	Photos   Resource = "photos"
)

// Resources lists every collection in catalogue order.
func Resources() []Resource {
	return []Resource{Posts, Users, Comments, Albums, Photos}
}

// Descriptor identifies an endpoint independently of its parameters.
type Descriptor struct {
	// Name is unique within a catalogue and prefixes case identifiers.
	Name string
	// Method is the HTTP verb.
	Method string
	// PathTemplate uses {name} placeholders, e.g. /posts/{id}.
	PathTemplate string
	// Cardinality is the documented element count for collection endpoints.
	Cardinality *int
}

// Expand substitutes path parameters into the template.  Each value is styled
// as a simple path parameter.
func (d Descriptor) Expand(params map[string]string) (string, error) {
	path := d.PathTemplate

	for name, value := range params {
		placeholder := "{" + name + "}"
		if !strings.Contains(path, placeholder) {
			return "", fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParameter, d.PathTemplate, name)
		}

		styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
		if err != nil {
			return "", fmt.Errorf("styling path parameter %q: %w", name, err)
		}

		path = strings.ReplaceAll(path, placeholder, styled)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, path)
	}

	return path, nil
}

// Endpoints builds paths and descriptors for the service.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Collection endpoints.
func (e *Endpoints) List(resource Resource) string {
	return "/" + string(resource)
}

func (e *Endpoints) Get(resource Resource, id int) string {
	return fmt.Sprintf("/%s/%d", resource, id)
}

func (e *Endpoints) PostComments(postID int) string {
	return fmt.Sprintf("/posts/%d/comments", postID)
}

// Descriptors for each verb.
func (e *Endpoints) ListDescriptor(resource Resource, cardinality *int) Descriptor {
	return Descriptor{
		Name:         "list-" + string(resource),
		Method:       http.MethodGet,
		PathTemplate: e.List(resource),
		Cardinality:  cardinality,
	}
}

func (e *Endpoints) GetDescriptor(resource Resource) Descriptor {
	return Descriptor{
		Name:         "get-" + string(resource),
		Method:       http.MethodGet,
		PathTemplate: "/" + string(resource) + "/{id}",
	}
}

func (e *Endpoints) CreateDescriptor(resource Resource) Descriptor {
	return Descriptor{
		Name:         "create-" + string(resource),
		Method:       http.MethodPost,
		PathTemplate: e.List(resource),
	}
}

func (e *Endpoints) UpdateDescriptor(resource Resource) Descriptor {
	return Descriptor{
		Name:         "update-" + string(resource),
		Method:       http.MethodPut,
		PathTemplate: "/" + string(resource) + "/{id}",
	}
}

func (e *Endpoints) DeleteDescriptor(resource Resource) Descriptor {
	return Descriptor{
		Name:         "delete-" + string(resource),
		Method:       http.MethodDelete,
		PathTemplate: "/" + string(resource) + "/{id}",
	}
}

func (e *Endpoints) PostCommentsDescriptor() Descriptor {
	return Descriptor{
		Name:         "list-post-comments",
		Method:       http.MethodGet,
		PathTemplate: "/posts/{id}/comments",
	}
}
