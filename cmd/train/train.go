// Package train implements the training system subcommand.
package train

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tlarcher/geolife-go/internal/conf"
	"github.com/tlarcher/geolife-go/internal/datamodule"
	"github.com/tlarcher/geolife-go/internal/encoding"
	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/training"
)

// Command creates the train command. It resolves the data module and
// training system configuration that gets handed to the external
// deep-learning runtime.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Resolve and print the training run configuration",
		Long: `Build the data module and training system from the configuration and
print the resolved run plan: dataset variant, transform pipeline, loader
sizes, task, loss and optimizer. Execution of the run is delegated to the
external deep-learning runtime.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(settings)
		},
	}

	cmd.Flags().StringVar(&settings.Dataset.Path, "dataset", settings.Dataset.Path, "Dataset root directory")
	cmd.Flags().StringVar(&settings.Dataset.Variant, "variant", settings.Dataset.Variant, "Dataset variant: full or mini")
	cmd.Flags().StringVar(&settings.Dataset.Labels, "labels", settings.Dataset.Labels, "Label vocabulary file, one label per line")
	cmd.Flags().StringVar(&settings.Training.Task, "task", settings.Training.Task, "Prediction task")
	cmd.Flags().StringVar(&settings.Training.Checkpoint, "checkpoint", settings.Training.Checkpoint, "Checkpoint path to restore")

	return cmd
}

func runPlan(settings *conf.Settings) error {
	variant, err := datamodule.ParseVariant(settings.Dataset.Variant)
	if err != nil {
		return err
	}

	dm, err := datamodule.New(datamodule.Config{
		DatasetPath:        settings.Dataset.Path,
		Variant:            variant,
		TrainBatchSize:     settings.Dataset.TrainBatchSize,
		InferenceBatchSize: settings.Dataset.InferenceBatchSize,
		NumWorkers:         settings.Dataset.NumWorkers,
	})
	if err != nil {
		return err
	}

	task, err := training.ParseTask(settings.Training.Task)
	if err != nil {
		return err
	}

	numOutputs := settings.Training.NumOutputs
	if settings.Dataset.Labels != "" {
		vocab, err := encoding.LoadVocabulary(settings.Dataset.Labels)
		if err != nil {
			return err
		}
		if numOutputs != vocab.Len() {
			return errors.Newf("training.numoutputs is %d but label file has %d labels", numOutputs, vocab.Len()).
				Component("train").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}

	model := training.ModelConfig{
		Modalities: map[string]string{
			datamodule.ModalityRGB:         "resnet18",
			datamodule.ModalityTemperature: "resnet18",
		},
		NumOutputs: numOutputs,
	}
	optimizer := training.OptimizerConfig{
		LearningRate: settings.Training.Optimizer.LearningRate,
		Momentum:     settings.Training.Optimizer.Momentum,
		Nesterov:     settings.Training.Optimizer.Nesterov,
	}

	cfg := dm.Config()
	trainLoader := dm.TrainLoader()
	inferenceLoader := dm.InferenceLoader()

	fmt.Println("Training run plan")
	fmt.Printf("  dataset:    %s (%s)\n", cfg.DatasetPath, cfg.Variant)
	fmt.Printf("  loaders:    train batch %d, inference batch %d, %d workers\n",
		trainLoader.BatchSize, inferenceLoader.BatchSize, trainLoader.NumWorkers)
	fmt.Printf("  task:       %s (loss %s)\n", task, training.LossForTask(task))
	fmt.Printf("  model:      %d modalities, %d outputs\n", len(model.Modalities), model.NumOutputs)
	fmt.Printf("  optimizer:  SGD lr=%g momentum=%g nesterov=%t\n",
		optimizer.LearningRate, optimizer.Momentum, optimizer.Nesterov)
	if settings.Training.Checkpoint != "" {
		fmt.Printf("  checkpoint: %s\n", settings.Training.Checkpoint)
	}
	return nil
}
