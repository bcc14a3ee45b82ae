package split

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tlarcher/geolife-go/internal/conf"
	"github.com/tlarcher/geolife-go/internal/observation"
	"github.com/tlarcher/geolife-go/internal/split"
)

// FrequencyCommand creates the frequency-stratified split command.
func FrequencyCommand(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frequency [input.csv]",
		Short: "Split observations per species frequency into train and validation",
		Long: `Split an observation CSV so every species contributes the same share of
records to validation. Species with too few records to contribute at least
one record to each subset stay wholly in train. The input must have a
speciesId column; all other columns are passed through unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrequency(settings, args[0])
		},
	}

	cmd.Flags().Float64Var(&settings.Split.Frequency.ValRatio, "ratio", settings.Split.Frequency.ValRatio, "Per-species validation share")
	cmd.Flags().Int64Var(&settings.Split.Frequency.Seed, "seed", settings.Split.Frequency.Seed, "Random seed for per-species sampling")
	cmd.Flags().StringVarP(&settings.Split.Frequency.Output, "output", "o", settings.Split.Frequency.Output, "Base name of the validation output file")

	return cmd
}

func runFrequency(settings *conf.Settings, inputPath string) error {
	tbl, err := observation.ReadCSV(inputPath)
	if err != nil {
		return err
	}

	result, err := split.ByFrequency(tbl, split.FrequencyOptions{
		ValRatio: settings.Split.Frequency.ValRatio,
		Seed:     settings.Split.Frequency.Seed,
	})
	if err != nil {
		return err
	}

	if err := split.WriteFrequencyOutputs(result, inputPath, settings.Split.Frequency.Output, settings.Split.Frequency.ValRatio); err != nil {
		return err
	}

	if result.Excluded > 0 {
		fmt.Printf("%d records were not considered for validation, their species are too rare to split at the requested ratio\n", result.Excluded)
	}
	return nil
}
