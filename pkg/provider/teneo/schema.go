package teneo

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schema/reply.json
var replySchemaJSON []byte

var (
	replySchemaOnce sync.Once
	replySchema     *jsonschema.Schema
	replySchemaErr  error
)

func compiledReplySchema() (*jsonschema.Schema, error) {
	replySchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		replySchema, replySchemaErr = compiler.Compile(replySchemaJSON)
		if replySchemaErr != nil {
			replySchemaErr = fmt.Errorf("compile reply schema: %w", replySchemaErr)
		}
	})
	return replySchema, replySchemaErr
}

// validateReply checks a raw engine reply against the embedded schema.
func validateReply(data []byte) error {
	schema, err := compiledReplySchema()
	if err != nil {
		return err
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
