package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/observation"
)

// SpatialOptions configures a spatial split.
type SpatialOptions struct {
	// Spacing is the side length of a spatial bin, in coordinate units.
	Spacing float64
	// ValFraction is the target share of records assigned to validation.
	ValFraction float64
	// Seed fixes the bin shuffle for reproducibility.
	Seed int64
}

type binKey struct {
	x int64
	y int64
}

// Spatial partitions records into square bins of side Spacing by flooring
// coordinates to multiples of Spacing, then assigns whole bins to the
// validation subset until the accumulated record count reaches ValFraction
// of the total. Whole-bin assignment avoids spatial leakage between train
// and validation.
func Spatial(tbl *observation.Table, opts SpatialOptions) (*Result, error) {
	if opts.Spacing <= 0 {
		return nil, errors.Newf("spacing must be positive, got %g", opts.Spacing).
			Component("split").
			Category(errors.CategoryValidation).
			Build()
	}
	if opts.ValFraction <= 0 || opts.ValFraction >= 1 {
		return nil, errors.Newf("val fraction must be in (0, 1), got %g", opts.ValFraction).
			Component("split").
			Category(errors.CategoryValidation).
			Build()
	}

	occ, err := tbl.Occurrences()
	if err != nil {
		return nil, err
	}

	bins := make(map[binKey][]int)
	for i, o := range occ {
		key := binKey{
			x: int64(math.Floor(o.Lon / opts.Spacing)),
			y: int64(math.Floor(o.Lat / opts.Spacing)),
		}
		bins[key] = append(bins[key], i)
	}

	// Map iteration order is random; sort keys before the seeded shuffle
	// so the same seed always yields the same split.
	keys := make([]binKey, 0, len(bins))
	for key := range bins {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].x != keys[j].x {
			return keys[i].x < keys[j].x
		}
		return keys[i].y < keys[j].y
	})

	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	target := opts.ValFraction * float64(tbl.Len())
	valRows := make(map[int]bool)
	valCount := 0
	for _, key := range keys {
		if float64(valCount) >= target {
			break
		}
		for _, row := range bins[key] {
			valRows[row] = true
		}
		valCount += len(bins[key])
	}

	train := make([]int, 0, tbl.Len()-valCount)
	val := make([]int, 0, valCount)
	for i := 0; i < tbl.Len(); i++ {
		if valRows[i] {
			val = append(val, i)
		} else {
			train = append(train, i)
		}
	}

	result := &Result{
		Train: tbl.Select(train).WithSubset(SubsetTrain),
		Val:   tbl.Select(val).WithSubset(SubsetVal),
		RunID: uuid.New(),
	}

	serviceLogger().Info("spatial split complete",
		"run_id", result.RunID,
		"records", tbl.Len(),
		"bins", len(bins),
		"train", result.Train.Len(),
		"val", result.Val.Len(),
		"spacing", opts.Spacing)

	return result, nil
}

// WriteSpatialOutputs writes the train, val and combined train+val CSV
// files next to the input, named after the bin spacing expressed in
// minutes of arc. The spatial convention puts lon, lat and the subset tag
// first, followed by the remaining input columns.
func WriteSpatialOutputs(result *Result, inputPath string, spacing float64) error {
	base := trimCSVExt(inputPath)
	param := fmt.Sprintf("%gmin", spacing*60)

	trainVal, err := result.Train.Append(result.Val)
	if err != nil {
		return err
	}

	outputs := []struct {
		path string
		tbl  *observation.Table
	}{
		{fmt.Sprintf("%s_train_val-%s.csv", base, param), trainVal},
		{fmt.Sprintf("%s_train-%s.csv", base, param), result.Train},
		{fmt.Sprintf("%s_val-%s.csv", base, param), result.Val},
	}

	for _, out := range outputs {
		reordered, err := spatialColumnOrder(out.tbl)
		if err != nil {
			return err
		}
		if err := reordered.WriteCSV(out.path); err != nil {
			return err
		}
		serviceLogger().Info("wrote split file", "path", out.path, "records", out.tbl.Len())
	}
	return nil
}

func spatialColumnOrder(tbl *observation.Table) (*observation.Table, error) {
	order := []string{observation.ColLon, observation.ColLat, observation.ColSubset}
	for _, col := range tbl.Columns() {
		switch col {
		case observation.ColLon, observation.ColLat, observation.ColSubset:
		default:
			order = append(order, col)
		}
	}
	return tbl.Reorder(order)
}

func trimCSVExt(path string) string {
	if len(path) > 4 && path[len(path)-4:] == ".csv" {
		return path[:len(path)-4]
	}
	return path
}
