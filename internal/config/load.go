package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ReadFile loads option values from a JSON or YAML settings file. A .env file
// next to it is loaded first without overriding the process environment.
// ${VAR} references in string values are expanded at Resolve. Keys starting
// with "$" (such as "$schema") are ignored.
func (o *Options) ReadFile(path string) error {
	if err := loadEnvFile(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return derrors.ConfigNotFound(path)
		}
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to read configuration file")
	}

	values, err := parse(path, data)
	if err != nil {
		return derrors.ConfigInvalid(fmt.Sprintf("failed to parse %s: %v", path, err)).
			WithContext("path", path)
	}

	for k, v := range values {
		if strings.HasPrefix(k, "$") {
			continue
		}
		if err := o.SetValue(k, v); err != nil {
			return err
		}
	}
	return nil
}

// parse decodes a settings document. JSON is decoded strictly so tab
// indentation (invalid in YAML) is accepted; anything else is YAML.
func parse(path string, data []byte) (map[string]any, error) {
	var values map[string]any
	trimmed := bytes.TrimSpace(data)
	if strings.EqualFold(filepath.Ext(path), ".json") || bytes.HasPrefix(trimmed, []byte("{")) {
		if len(trimmed) > 0 {
			if err := json.Unmarshal(trimmed, &values); err != nil {
				return nil, err
			}
		}
	} else if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

// ExpandEnv replaces ${VAR} references in s with the environment value. The
// bare $VAR form is left alone.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envRef.FindStringSubmatch(m)[1])
	})
}

// expandValue applies ExpandEnv to a decoded string or string array.
func expandValue(v any) any {
	switch t := v.(type) {
	case string:
		return ExpandEnv(t)
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = ExpandEnv(s)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			if s, ok := item.(string); ok {
				out[i] = ExpandEnv(s)
			} else {
				out[i] = item
			}
		}
		return out
	default:
		return v
	}
}

func loadEnvFile(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to load "+envPath)
	}
	return nil
}
