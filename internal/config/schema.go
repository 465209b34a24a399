package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/kaptinlin/jsonschema"
)

// Schema returns a JSON Schema describing every declared option.
func Schema(decls map[string]Declaration) ([]byte, error) {
	props := make(map[string]any, len(decls))
	for name, d := range decls {
		p := map[string]any{"type": d.Type.String()}
		if d.Type == Array {
			p["items"] = map[string]any{"type": "string"}
		}
		if d.Help != "" {
			p["description"] = d.Help
		}
		props[name] = p
	}
	return json.Marshal(map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	})
}

func validateAgainstSchema(decls map[string]Declaration, raw map[string]any) error {
	schemaData, err := Schema(decls)
	if err != nil {
		return derrors.InternalError("marshal option schema", err)
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaData)
	if err != nil {
		return derrors.InternalError("compile option schema", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "configuration values are not representable as JSON")
	}

	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return derrors.ConfigInvalid(describeMismatch(decls, raw)).
		WithContext("schema_errors", fmt.Sprintf("%v", result.Errors))
}

// describeMismatch names the first offending option in a stable order.
func describeMismatch(decls map[string]Declaration, raw map[string]any) string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		d := decls[name]
		if matchesType(d.Type, raw[name]) {
			continue
		}
		encoded, _ := json.Marshal(raw[name])
		parts = append(parts, fmt.Sprintf("option %s must be of type %s, got %s", name, d.Type, encoded))
	}
	if len(parts) == 0 {
		return "configuration does not match the declared options"
	}
	return strings.Join(parts, "; ")
}
