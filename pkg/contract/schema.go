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

package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrUnknownSchema is raised when a contract names a schema the document lacks.
var ErrUnknownSchema = errors.New("unknown schema")

//go:embed openapi.yaml
var openAPIDocument []byte

// Schemas validates decoded bodies against OpenAPI component schemas.
type Schemas struct {
	doc *openapi3.T
}

// embeddedSchemas parses the embedded document once per process.
var embeddedSchemas = sync.OnceValues(func() (*Schemas, error) {
	return LoadSchemas(context.Background())
})

// LoadSchemas loads and validates the embedded service description.
func LoadSchemas(ctx context.Context) (*Schemas, error) {
	return LoadSchemasFromData(ctx, openAPIDocument)
}

// LoadSchemasFromData loads an OpenAPI document.
func LoadSchemasFromData(ctx context.Context, data []byte) (*Schemas, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	return &Schemas{doc: doc}, nil
}

// Validate checks value, as decoded by encoding/json, against a component schema.
func (s *Schemas) Validate(name string, value any) error {
	ref, ok := s.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	return ref.Value.VisitJSON(value)
}
