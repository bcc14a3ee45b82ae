// Package split partitions occurrence tables into train and validation
// subsets, either by spatial binning or by per-species frequency.
package split

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/tlarcher/geolife-go/internal/logging"
	"github.com/tlarcher/geolife-go/internal/observation"
)

// Subset tags attached to output records.
const (
	SubsetTrain = "train"
	SubsetVal   = "val"
)

// Result holds the outcome of a split run. Train and Val carry the subset
// tag column; together they cover the input exactly.
type Result struct {
	Train *observation.Table
	Val   *observation.Table
	// Excluded is the number of records belonging to species too rare to
	// contribute at least one record to both subsets. Those records stay
	// in Train. Always zero for spatial splits.
	Excluded int
	RunID    uuid.UUID
}

func serviceLogger() *slog.Logger {
	return logging.ForService("split")
}
