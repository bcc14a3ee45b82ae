package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveYAMLRoundTrip(t *testing.T) {
	settings := validSettings()
	settings.Dataset.Path = "/data/geolifeclef2022"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, SaveYAML(settings, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Settings
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, settings.Dataset.Path, loaded.Dataset.Path)
	assert.InDelta(t, settings.Split.Spatial.Spacing, loaded.Split.Spatial.Spacing, 1e-12)
}
