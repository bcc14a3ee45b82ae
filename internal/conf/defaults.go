// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "GeoLife-Go")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "geolife.log")

	// 10 minutes of arc, the GeoLifeCLEF benchmark default
	viper.SetDefault("split.spatial.spacing", 10.0/60.0)
	viper.SetDefault("split.spatial.valfraction", 0.15)
	viper.SetDefault("split.spatial.seed", 42)

	viper.SetDefault("split.frequency.valratio", 0.05)
	viper.SetDefault("split.frequency.seed", 42)
	viper.SetDefault("split.frequency.output", "obs_val")

	viper.SetDefault("discover.extensions", []string{"tif", "jpeg", "png"})
	viper.SetDefault("discover.suffix", "")

	viper.SetDefault("dataset.path", ".")
	viper.SetDefault("dataset.variant", "full")
	viper.SetDefault("dataset.trainbatchsize", 32)
	viper.SetDefault("dataset.inferencebatchsize", 256)
	viper.SetDefault("dataset.numworkers", 0)
	viper.SetDefault("dataset.labels", "")

	viper.SetDefault("training.task", "classification_multiclass")
	viper.SetDefault("training.numoutputs", 100)
	viper.SetDefault("training.checkpoint", "")
	viper.SetDefault("training.topk", 3)
	viper.SetDefault("training.optimizer.learningrate", 0.01)
	viper.SetDefault("training.optimizer.momentum", 0.9)
	viper.SetDefault("training.optimizer.nesterov", true)
}
