// Package split implements the train/val splitting subcommands.
package split

import (
	"github.com/spf13/cobra"

	"github.com/tlarcher/geolife-go/internal/conf"
)

// Command creates the split parent command
func Command(settings *conf.Settings) *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Split an observation CSV into train and validation subsets",
	}

	splitCmd.AddCommand(SpatialCommand(settings))
	splitCmd.AddCommand(FrequencyCommand(settings))

	return splitCmd
}
