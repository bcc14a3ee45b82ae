package split

import (
	"github.com/spf13/cobra"

	"github.com/tlarcher/geolife-go/internal/conf"
	"github.com/tlarcher/geolife-go/internal/observation"
	"github.com/tlarcher/geolife-go/internal/split"
)

// SpatialCommand creates the spatial split command. Whole spatial bins go
// to validation so nearby observations never leak across subsets.
func SpatialCommand(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spatial [input.csv]",
		Short: "Split observations spatially into train and validation",
		Long: `Split an observation CSV into train and validation subsets by assigning
whole spatial bins to validation. The input must have lon and lat columns;
all other columns are passed through unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpatial(settings, args[0])
		},
	}

	cmd.Flags().Float64Var(&settings.Split.Spatial.Spacing, "spacing", settings.Split.Spatial.Spacing, "Bin side length in coordinate units")
	cmd.Flags().Float64Var(&settings.Split.Spatial.ValFraction, "val-fraction", settings.Split.Spatial.ValFraction, "Target validation share of records")
	cmd.Flags().Int64Var(&settings.Split.Spatial.Seed, "seed", settings.Split.Spatial.Seed, "Random seed for bin selection")

	return cmd
}

func runSpatial(settings *conf.Settings, inputPath string) error {
	tbl, err := observation.ReadCSV(inputPath)
	if err != nil {
		return err
	}

	result, err := split.Spatial(tbl, split.SpatialOptions{
		Spacing:     settings.Split.Spatial.Spacing,
		ValFraction: settings.Split.Spatial.ValFraction,
		Seed:        settings.Split.Spatial.Seed,
	})
	if err != nil {
		return err
	}

	return split.WriteSpatialOutputs(result, inputPath, settings.Split.Spatial.Spacing)
}
