// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/registry-payload.schema.json data/registry-meta.schema.json
var embeddedSchemaFS embed.FS

// ValidatePayloadBytes validates raw registry payload JSON against the
// payload schema. Readers treat a document failing validation exactly like a
// missing document.
func ValidatePayloadBytes(data []byte) error {
	return validateAgainstSchema(data, "data/registry-payload.schema.json", "registry payload schema validation failed")
}

// ValidateMetaBytes validates raw registry metadata JSON against the meta schema.
func ValidateMetaBytes(data []byte) error {
	return validateAgainstSchema(data, "data/registry-meta.schema.json", "registry meta schema validation failed")
}

// validateAgainstSchema validates data against a named embedded schema file.
func validateAgainstSchema(data []byte, schemaFile, errPrefix string) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errPrefix, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return formatNumberedErrors(errPrefix, msgs)
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
