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

package fixtures

import (
	"maps"

	"github.com/google/uuid"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/endpoints"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Fixtures are the immutable inputs shared by every case of a run.
type Fixtures struct {
	// RunID identifies one execution of the catalogue, cases themselves are
	// identical across runs.
	RunID   string
	BaseURL string
}

// New creates fixtures for a single run.
func New(baseURL string) *Fixtures {
	return &Fixtures{
		RunID:   uuid.NewString(),
		BaseURL: baseURL,
	}
}

// Required key sets, each call returns a fresh set.
func PostKeys() sets.Set[string] {
	return sets.New("userId", "id", "title", "body")
}

func UserKeys() sets.Set[string] {
	return sets.New("id", "name", "username", "email", "address", "phone", "website", "company")
}

func AddressKeys() sets.Set[string] {
	return sets.New("street", "suite", "city", "zipcode", "geo")
}

func GeoKeys() sets.Set[string] {
	return sets.New("lat", "lng")
}

func CompanyKeys() sets.Set[string] {
	return sets.New("name", "catchPhrase", "bs")
}

func CommentKeys() sets.Set[string] {
	return sets.New("postId", "id", "name", "email", "body")
}

func AlbumKeys() sets.Set[string] {
	return sets.New("userId", "id", "title")
}

func PhotoKeys() sets.Set[string] {
	return sets.New("albumId", "id", "title", "url", "thumbnailUrl")
}

// Keys returns the required key set of a resource.
func Keys(resource endpoints.Resource) sets.Set[string] {
	switch resource {
	case endpoints.Posts:
		return PostKeys()
	case endpoints.Users:
		return UserKeys()
	case endpoints.Comments:
		return CommentKeys()
	case endpoints.Albums:
		return AlbumKeys()
	case endpoints.Photos:
		return PhotoKeys()
	}

	return sets.New[string]()
}

// Cardinalities are the documented collection sizes.
func Cardinalities() map[endpoints.Resource]int {
	return map[endpoints.Resource]int{
		endpoints.Posts:    100,
		endpoints.Users:    10,
		endpoints.Comments: 500,
		endpoints.Albums:   100,
		endpoints.Photos:   5000,
	}
}

// ValidPost is a complete post creation payload.
func ValidPost() map[string]any {
	return NewPostPayload().Build()
}

// PostPayloadBuilder builds post payloads for testing.
type PostPayloadBuilder struct {
	payload map[string]any
}

// NewPostPayload creates a builder seeded with a valid post.
func NewPostPayload() *PostPayloadBuilder {
	return &PostPayloadBuilder{
		payload: map[string]any{
			"title":  "Test Post",
			"body":   "This is a test post body",
			"userId": 1,
		},
	}
}

// Empty creates a builder with no fields at all.
func Empty() *PostPayloadBuilder {
	return &PostPayloadBuilder{
		payload: map[string]any{},
	}
}

// WithTitle sets the title.
func (b *PostPayloadBuilder) WithTitle(title string) *PostPayloadBuilder {
	b.payload["title"] = title
	return b
}

// WithBody sets the body.
func (b *PostPayloadBuilder) WithBody(body string) *PostPayloadBuilder {
	b.payload["body"] = body
	return b
}

// WithUserID sets the owning user.
func (b *PostPayloadBuilder) WithUserID(userID int) *PostPayloadBuilder {
	b.payload["userId"] = userID
	return b
}

// Without removes a field.
func (b *PostPayloadBuilder) Without(key string) *PostPayloadBuilder {
	delete(b.payload, key)
	return b
}

// Build returns a copy of the payload, the builder may be reused.
func (b *PostPayloadBuilder) Build() map[string]any {
	return maps.Clone(b.payload)
}
