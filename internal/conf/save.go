package conf

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tlarcher/geolife-go/internal/errors"
)

// SaveYAML writes the settings to path as YAML, creating parent
// directories as needed. Used to persist flag overrides back into the
// config file.
func SaveYAML(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("conf").
				Category(errors.CategoryFileIO).
				FileContext(dir).
				Build()
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	return nil
}
