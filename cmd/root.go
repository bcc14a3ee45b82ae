package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlarcher/geolife-go/cmd/discover"
	"github.com/tlarcher/geolife-go/cmd/split"
	"github.com/tlarcher/geolife-go/cmd/train"
	"github.com/tlarcher/geolife-go/internal/buildinfo"
	"github.com/tlarcher/geolife-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "geolife",
		Short:   "GeoLife-Go CLI",
		Long:    `Dataset preparation and training harness for GeoLifeCLEF species occurrence data.`,
		Version: buildinfo.String(),
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		split.Command(settings),
		discover.Command(settings),
		train.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
