package swagger

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateSpec loads and validates the OpenAPI document the server is about
// to publish, so a malformed spec is caught at startup rather than by the
// first Swagger UI visitor.
func ValidateSpec(ctx context.Context, path string) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("validate openapi spec: %w", err)
	}

	return nil
}
