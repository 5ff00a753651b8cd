package emit

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/kaptinlin/jsonschema"
)

//go:embed schemas/nbformat.v4.schema.json
var notebookSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidateNotebook checks data against the nbformat 4.5 structure the
// notebook emitter produces.
func ValidateNotebook(data []byte) error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		compiledSchema, schemaErr = compiler.Compile(notebookSchema)
	})
	if schemaErr != nil {
		return errors.Wrap(schemaErr, errors.ErrInternal, "failed to compile notebook schema")
	}

	result := compiledSchema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}

	return errors.New(errors.ErrArtifactInvalid, "notebook does not match the nbformat schema").
		WithDetail("errors", fmt.Sprintf("%v", result.Errors))
}
