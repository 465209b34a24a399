package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// starter is the settings file written by Init. Field order is the order
// keys appear in the file.
type starter struct {
	Name                             string   `json:"name"`
	EntryPoint                       string   `json:"entryPoint"`
	Out                              string   `json:"out"`
	HostedBaseURL                    string   `json:"hostedBaseUrl"`
	UseHostedBaseURLForAbsoluteLinks bool     `json:"useHostedBaseUrlForAbsoluteLinks"`
	Plugin                           []string `json:"plugin"`
	Page404Content                   string   `json:"page404Content"`
}

// Init writes an example settings file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigInvalid(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path))
	}

	data, err := json.MarshalIndent(starter{
		Name:                             "Documentation",
		EntryPoint:                       ".",
		Out:                              "docs",
		HostedBaseURL:                    "https://example.com/docs/",
		UseHostedBaseURLForAbsoluteLinks: true,
		Plugin:                           []string{"plugin-404"},
		Page404Content:                   "404 Page Not Found",
	}, "", "\t")
	if err != nil {
		return derrors.InternalError("failed to encode starter configuration", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return derrors.OutputError("create "+dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return derrors.OutputError("write "+path, err)
	}
	return nil
}
