package config

import "fmt"

// ParameterType is the value type of a declared option.
type ParameterType int

const (
	String ParameterType = iota
	Boolean
	Array
)

// String returns the JSON Schema type name for the parameter type.
func (t ParameterType) String() string {
	switch t {
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
}

// Declaration describes one named option. The host and every plugin declare
// their options before the store is resolved.
type Declaration struct {
	Name         string
	Help         string
	Type         ParameterType
	DefaultValue any
	// Verbatim options keep ${VAR} references as written.
	Verbatim bool
}

// Validate checks the declaration is well formed and its default matches its type.
func (d Declaration) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("option name is required")
	}
	if d.Type < String || d.Type > Array {
		return fmt.Errorf("option %s has unknown type %s", d.Name, d.Type)
	}
	if d.DefaultValue != nil && !matchesType(d.Type, d.DefaultValue) {
		return fmt.Errorf("default value for option %s is not a %s", d.Name, d.Type)
	}
	return nil
}

// defaultValue returns the declared default, or the type's zero value.
func (d Declaration) defaultValue() any {
	if d.DefaultValue != nil {
		return normalize(d.DefaultValue)
	}
	switch d.Type {
	case Boolean:
		return false
	case Array:
		return []string{}
	default:
		return ""
	}
}

func matchesType(t ParameterType, v any) bool {
	switch t {
	case String:
		_, ok := v.(string)
		return ok
	case Boolean:
		_, ok := v.(bool)
		return ok
	case Array:
		switch arr := v.(type) {
		case []string:
			return true
		case []any:
			for _, item := range arr {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		}
	}
	return false
}

// normalize turns decoded arrays into []string so readers get one shape.
func normalize(v any) any {
	if arr, ok := v.([]any); ok {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return v
			}
			out = append(out, s)
		}
		return out
	}
	return v
}
