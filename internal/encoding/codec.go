// Package encoding provides serialization and file helpers shared by the
// listing, export and sheet server code.
package encoding

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON encodes value to w as indented JSON followed by a newline.
func WriteJSON[T any](w io.Writer, value T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	return nil
}

// WriteYAML encodes value to w as a YAML document with two-space indentation.
func WriteYAML[T any](w io.Writer, value T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return enc.Close()
}
