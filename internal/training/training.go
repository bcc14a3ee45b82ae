// Package training wires a multi-modal model configuration to an external
// trainer and handles prediction export.
package training

import (
	"context"

	"github.com/tlarcher/geolife-go/internal/datamodule"
	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/logging"
)

// Task is the prediction task the system is configured for.
type Task int

const (
	TaskClassificationBinary Task = iota
	TaskClassificationMulticlass
	TaskClassificationMultilabel
	TaskRegression
)

// String implements fmt.Stringer.
func (t Task) String() string {
	switch t {
	case TaskClassificationBinary:
		return "classification_binary"
	case TaskClassificationMulticlass:
		return "classification_multiclass"
	case TaskClassificationMultilabel:
		return "classification_multilabel"
	case TaskRegression:
		return "regression"
	default:
		return "unknown"
	}
}

// ParseTask converts a config string to a Task.
func ParseTask(s string) (Task, error) {
	switch s {
	case "classification_binary":
		return TaskClassificationBinary, nil
	case "classification_multiclass", "":
		return TaskClassificationMulticlass, nil
	case "classification_multilabel":
		return TaskClassificationMultilabel, nil
	case "regression":
		return TaskRegression, nil
	default:
		return TaskClassificationMulticlass, errors.Newf("unknown task %q", s).
			Component("training").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

// Loss names the loss function the external trainer should use.
type Loss string

const (
	LossBCE          Loss = "bce"
	LossCrossEntropy Loss = "cross_entropy"
	LossMSE          Loss = "mse"
)

// LossForTask maps the task to its standard loss.
func LossForTask(task Task) Loss {
	switch task {
	case TaskClassificationBinary, TaskClassificationMultilabel:
		return LossBCE
	case TaskRegression:
		return LossMSE
	default:
		return LossCrossEntropy
	}
}

// OptimizerConfig holds the SGD parameters passed to the trainer.
type OptimizerConfig struct {
	LearningRate float64
	Momentum     float64
	Nesterov     bool
}

// ModelConfig describes the multi-modal model: one backbone name per
// modality plus the output width of the final classification head.
type ModelConfig struct {
	Modalities map[string]string
	NumOutputs int
}

// Trainer is the boundary to the external deep-learning runtime. Fit and
// Validate run full passes over the data module's loaders; Predict returns
// one score vector per test record.
type Trainer interface {
	Fit(ctx context.Context, sys *System, dm *datamodule.DataModule) error
	Validate(ctx context.Context, sys *System, dm *datamodule.DataModule) error
	Predict(ctx context.Context, sys *System, dm *datamodule.DataModule) ([][]float32, error)
}

// System is a classification/regression system: model, optimizer and task
// configuration, delegating the training loop to a Trainer.
type System struct {
	Model     ModelConfig
	Optimizer OptimizerConfig
	Task      Task
	// CheckpointPath restores trainer state when non-empty.
	CheckpointPath string

	trainer Trainer
}

// NewSystem validates the configuration and binds it to a trainer.
func NewSystem(model ModelConfig, optimizer OptimizerConfig, task Task, trainer Trainer) (*System, error) {
	if trainer == nil {
		return nil, errors.NewStd("trainer is required")
	}
	if model.NumOutputs <= 0 {
		return nil, errors.Newf("model must have a positive number of outputs, got %d", model.NumOutputs).
			Component("training").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if len(model.Modalities) == 0 {
		return nil, errors.NewStd("model needs at least one modality")
	}
	if optimizer.LearningRate <= 0 {
		optimizer.LearningRate = 0.01
	}

	logging.ForService("training").Info("system configured",
		"task", task.String(),
		"loss", string(LossForTask(task)),
		"outputs", model.NumOutputs,
		"lr", optimizer.LearningRate)

	return &System{Model: model, Optimizer: optimizer, Task: task, trainer: trainer}, nil
}

// Loss returns the loss the system trains with.
func (s *System) Loss() Loss {
	return LossForTask(s.Task)
}

// Fit delegates a training run to the trainer.
func (s *System) Fit(ctx context.Context, dm *datamodule.DataModule) error {
	return s.trainer.Fit(ctx, s, dm)
}

// Validate delegates a validation pass to the trainer.
func (s *System) Validate(ctx context.Context, dm *datamodule.DataModule) error {
	return s.trainer.Validate(ctx, s, dm)
}

// Predict delegates prediction to the trainer and returns one score vector
// per test record.
func (s *System) Predict(ctx context.Context, dm *datamodule.DataModule) ([][]float32, error) {
	scores, err := s.trainer.Predict(ctx, s, dm)
	if err != nil {
		return nil, err
	}
	for i, row := range scores {
		if len(row) != s.Model.NumOutputs {
			return nil, errors.Newf("prediction %d has %d scores, model has %d outputs", i, len(row), s.Model.NumOutputs).
				Component("training").
				Category(errors.CategoryProcessing).
				Build()
		}
	}
	return scores, nil
}
