// Package configbinder binds loosely typed configuration maps onto concrete
// structs. Database sections are kept as maps in the YAML root so each
// adapter can carry its own option shape.
package configbinder

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// BindProperties decodes a property map into target using the "yaml" tags,
// with weakly typed input so numeric strings coming from environment
// expansion still bind to int fields.
func BindProperties(properties map[string]interface{}, target interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(properties); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	return nil
}
