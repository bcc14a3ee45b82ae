// Package conf defines the application settings and loads them from the
// config file, environment and command line flags.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"

	"github.com/tlarcher/geolife-go/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// LogSettings controls the optional JSON log file.
type LogSettings struct {
	Enabled bool   // true to write a log file in addition to stdout/stderr
	Path    string // log file path
}

// SpatialSplitSettings configures the spatial splitter.
type SpatialSplitSettings struct {
	Spacing     float64 // bin side length in coordinate units
	ValFraction float64 // target validation share of records
	Seed        int64   // PRNG seed for bin selection
}

// FrequencySplitSettings configures the frequency-stratified splitter.
type FrequencySplitSettings struct {
	ValRatio float64 // per-species validation share
	Seed     int64   // PRNG seed for per-species sampling
	Output   string  // base name of the validation output file
}

// SplitSettings groups the splitter configurations.
type SplitSettings struct {
	Spatial   SpatialSplitSettings
	Frequency FrequencySplitSettings
}

// DiscoverSettings configures recursive patch file discovery.
type DiscoverSettings struct {
	Extensions []string // file extensions to match, without leading dot
	Suffix     string   // filename suffix pattern, a regular expression
}

// DatasetSettings configures the data module.
type DatasetSettings struct {
	Path               string // dataset root directory
	Variant            string // "full" or "mini"
	TrainBatchSize     int
	InferenceBatchSize int
	NumWorkers         int    // 0 derives the count from the host CPU
	Labels             string // label vocabulary file, one label per line
}

// OptimizerSettings holds the SGD parameters.
type OptimizerSettings struct {
	LearningRate float64
	Momentum     float64
	Nesterov     bool
}

// TrainingSettings configures the training system.
type TrainingSettings struct {
	Task       string // classification_binary, classification_multiclass, classification_multilabel, regression
	NumOutputs int
	Checkpoint string // checkpoint path to restore, empty for fresh runs
	TopK       int    // top-k predictions exported per record
	Optimizer  OptimizerSettings
}

// Settings is the root configuration of the application.
type Settings struct {
	Debug bool // enable debug logging

	Main struct {
		Name string      // node name, tags log lines
		Log  LogSettings // log file settings
	}

	Split    SplitSettings
	Discover DiscoverSettings
	Dataset  DatasetSettings
	Training TrainingSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.Mutex
)

// Load reads the configuration into a validated Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// GetSettings returns the settings loaded by the last Load call.
func GetSettings() *Settings {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	return settingsInstance
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return createDefaultConfig(configPaths[0])
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

func createDefaultConfig(configDir string) error {
	configPath := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(getDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading embedded config file: %v", err)
	}
	return string(data)
}

// GetDefaultConfigPaths returns the OS specific search paths for
// config.yaml. A path already holding a config file wins.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	var configPaths []string
	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			".",
			filepath.Join(homeDir, "AppData", "Roaming", "geolife-go"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "geolife-go"),
			"/etc/geolife-go",
		}
	}

	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}
	return configPaths, nil
}
