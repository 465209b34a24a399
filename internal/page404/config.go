package page404

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const (
	// OptionContent is the option holding the body of the 404 page.
	OptionContent = "page404Content"
	// DefaultContent is used when OptionContent is not set.
	DefaultContent = "404 Page Not Found"
)

// OptionReader reads resolved option values.
type OptionReader interface {
	GetValue(name string) (any, error)
}

// Config is the plugin configuration for one render pass.
type Config struct {
	Content          string
	UseHostedBaseURL bool
}

func contentDeclaration() config.Declaration {
	return config.Declaration{
		Name:         OptionContent,
		Help:         "Content of the 404 page. Inserted as raw HTML.",
		Type:         config.String,
		DefaultValue: DefaultContent,
		Verbatim:     true,
	}
}

// ResolveConfig reads the plugin configuration from resolved options.
func ResolveConfig(options OptionReader) (Config, error) {
	raw, err := options.GetValue(OptionContent)
	if err != nil {
		return Config{}, err
	}
	content, ok := raw.(string)
	if !ok {
		return Config{}, contentTypeError(raw)
	}

	cfg := Config{Content: content}
	if v, err := options.GetValue(site.OptionUseHostedBaseURL); err == nil {
		cfg.UseHostedBaseURL, _ = v.(bool)
	}
	return cfg, nil
}

func contentTypeError(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", v))
	}
	return derrors.Wrap(ErrContentType, derrors.CategoryConfig, derrors.SeverityFatal,
		fmt.Sprintf("Unexpected %s type: %s", OptionContent, encoded)).
		WithContext("option", OptionContent)
}
