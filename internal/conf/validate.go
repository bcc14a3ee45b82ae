package conf

import (
	"github.com/tlarcher/geolife-go/internal/errors"
)

// ValidateSettings checks the loaded settings for values the pipeline
// cannot run with. Validation fails on the first offending field.
func ValidateSettings(settings *Settings) error {
	if settings.Split.Spatial.Spacing <= 0 {
		return validationError("split.spatial.spacing must be positive, got %g", settings.Split.Spatial.Spacing)
	}
	if f := settings.Split.Spatial.ValFraction; f <= 0 || f >= 1 {
		return validationError("split.spatial.valfraction must be in (0, 1), got %g", f)
	}
	if r := settings.Split.Frequency.ValRatio; r <= 0 || r >= 1 {
		return validationError("split.frequency.valratio must be in (0, 1), got %g", r)
	}
	if settings.Split.Frequency.Output == "" {
		return validationError("split.frequency.output must not be empty")
	}
	if len(settings.Discover.Extensions) == 0 {
		return validationError("discover.extensions must list at least one extension")
	}
	switch settings.Dataset.Variant {
	case "full", "mini":
	default:
		return validationError("dataset.variant must be full or mini, got %q", settings.Dataset.Variant)
	}
	if settings.Dataset.TrainBatchSize < 0 || settings.Dataset.InferenceBatchSize < 0 {
		return validationError("batch sizes must not be negative")
	}
	if settings.Training.NumOutputs <= 0 {
		return validationError("training.numoutputs must be positive, got %d", settings.Training.NumOutputs)
	}
	if settings.Training.TopK <= 0 {
		return validationError("training.topk must be positive, got %d", settings.Training.TopK)
	}
	if settings.Training.Optimizer.LearningRate <= 0 {
		return validationError("training.optimizer.learningrate must be positive, got %g", settings.Training.Optimizer.LearningRate)
	}
	return nil
}

func validationError(format string, args ...any) error {
	return errors.Newf(format, args...).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Build()
}
