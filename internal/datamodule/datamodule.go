package datamodule

import (
	"os"

	"github.com/tlarcher/geolife-go/internal/cpuspec"
	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/logging"
)

// DatasetVariant selects between the full benchmark dataset and its
// reduced counterpart.
type DatasetVariant int

const (
	VariantFull DatasetVariant = iota
	VariantMini
)

// String implements fmt.Stringer.
func (v DatasetVariant) String() string {
	switch v {
	case VariantMini:
		return "mini"
	default:
		return "full"
	}
}

// ParseVariant converts a config string to a DatasetVariant.
func ParseVariant(s string) (DatasetVariant, error) {
	switch s {
	case "full", "":
		return VariantFull, nil
	case "mini":
		return VariantMini, nil
	default:
		return VariantFull, errors.Newf("unknown dataset variant %q", s).
			Component("datamodule").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

// Config enumerates the data module construction parameters.
type Config struct {
	DatasetPath        string
	Variant            DatasetVariant
	TrainBatchSize     int
	InferenceBatchSize int
	// NumWorkers is the dataloader worker count; 0 means derive it from
	// the host CPU.
	NumWorkers int
}

// LoaderConfig is the resolved dataloader configuration for one split.
type LoaderConfig struct {
	BatchSize  int
	NumWorkers int
	Shuffle    bool
}

// DataModule wraps dataset construction, transform pipelines and
// dataloader configuration for one benchmark dataset.
type DataModule struct {
	cfg            Config
	trainTransform Transform
	testTransform  Transform
}

// New validates cfg and builds a data module. The train pipeline carries
// the nodata fill and normalization used by the RGB+temperature baseline;
// inference reuses it without augmentation.
func New(cfg Config) (*DataModule, error) {
	if cfg.DatasetPath == "" {
		return nil, errors.NewStd("dataset path is required")
	}
	if _, err := os.Stat(cfg.DatasetPath); os.IsNotExist(err) {
		return nil, errors.Newf("dataset path not found: %s", cfg.DatasetPath).
			Component("datamodule").
			Category(errors.CategoryNotFound).
			FileContext(cfg.DatasetPath).
			Build()
	}
	if cfg.TrainBatchSize <= 0 {
		cfg.TrainBatchSize = 32
	}
	if cfg.InferenceBatchSize <= 0 {
		cfg.InferenceBatchSize = 256
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = cpuspec.GetCPUSpec().GetOptimalWorkerCount()
	}

	pipeline := Compose{
		SelectModalities{ModalityRGB, ModalityTemperature},
		FillNaN{Modality: ModalityTemperature, Value: -12.0},
		Normalize{
			Mean: []float32{0.485, 0.456, 0.406, 0.485, 0.456, 0.406},
			Std:  []float32{0.229, 0.224, 0.225, 0.229, 0.224, 0.225},
		},
	}

	logging.ForService("datamodule").Info("data module ready",
		"dataset", cfg.DatasetPath,
		"variant", cfg.Variant.String(),
		"train_batch_size", cfg.TrainBatchSize,
		"inference_batch_size", cfg.InferenceBatchSize,
		"num_workers", cfg.NumWorkers)

	return &DataModule{
		cfg:            cfg,
		trainTransform: pipeline,
		testTransform:  pipeline,
	}, nil
}

// Config returns the resolved configuration.
func (dm *DataModule) Config() Config {
	return dm.cfg
}

// TrainTransform returns the training transform pipeline.
func (dm *DataModule) TrainTransform() Transform {
	return dm.trainTransform
}

// TestTransform returns the inference transform pipeline.
func (dm *DataModule) TestTransform() Transform {
	return dm.testTransform
}

// TrainLoader returns the dataloader configuration for training.
func (dm *DataModule) TrainLoader() LoaderConfig {
	return LoaderConfig{
		BatchSize:  dm.cfg.TrainBatchSize,
		NumWorkers: dm.cfg.NumWorkers,
		Shuffle:    true,
	}
}

// InferenceLoader returns the dataloader configuration for validation,
// testing and prediction.
func (dm *DataModule) InferenceLoader() LoaderConfig {
	return LoaderConfig{
		BatchSize:  dm.cfg.InferenceBatchSize,
		NumWorkers: dm.cfg.NumWorkers,
		Shuffle:    false,
	}
}
