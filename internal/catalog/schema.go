package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/catalog.schema.json
var catalogSchema []byte

const schemaResource = "catalog.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaResource, bytes.NewReader(catalogSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded JSON document against the catalogue
// schema and reports every leaf violation as a field error.
func validateDocument(doc any) error {
	schema, err := documentSchema()
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "catalog: compile schema").
			WithTextCode(TextCodeCatalogSchema)
	}
	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if !errors.As(err, &validationErr) {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "catalog: schema validation failed").
				WithTextCode(TextCodeCatalogSchema)
		}
		return goerrors.NewValidation("catalog: schema validation failed", collectIssues(validationErr)...).
			WithTextCode(TextCodeCatalogSchema)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []goerrors.FieldError {
	issues := []goerrors.FieldError{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			issues = append(issues, goerrors.FieldError{
				Field:   location,
				Message: strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
