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

// FrequencyOptions configures a frequency-stratified split.
type FrequencyOptions struct {
	// ValRatio is the per-species share of records sampled into validation.
	ValRatio float64
	// Seed fixes the per-species sampling for reproducibility.
	Seed int64
}

// ByFrequency splits records per species so each species contributes
// round(count * ValRatio) validation records, sampled uniformly without
// replacement. Species with fewer than 1/ValRatio records cannot
// contribute at least one record to both subsets; they stay wholly in
// train and their record count is reported as Result.Excluded.
func ByFrequency(tbl *observation.Table, opts FrequencyOptions) (*Result, error) {
	if opts.ValRatio <= 0 || opts.ValRatio >= 1 {
		return nil, errors.Newf("val ratio must be in (0, 1), got %g", opts.ValRatio).
			Component("split").
			Category(errors.CategoryValidation).
			Build()
	}
	if err := tbl.RequireColumns(observation.ColSpeciesID); err != nil {
		return nil, err
	}

	species, err := tbl.Strings(observation.ColSpeciesID)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]int)
	for i, sid := range species {
		groups[sid] = append(groups[sid], i)
	}

	// Most frequent species first, as in the benchmark convention; ties
	// broken by species id so the seeded sampling is reproducible.
	sids := make([]string, 0, len(groups))
	for sid := range groups {
		sids = append(sids, sid)
	}
	sort.Slice(sids, func(i, j int) bool {
		ni, nj := len(groups[sids[i]]), len(groups[sids[j]])
		if ni != nj {
			return ni > nj
		}
		return sids[i] < sids[j]
	})

	rng := rand.New(rand.NewSource(opts.Seed))
	minDivisible := 1 / opts.ValRatio

	valRows := make(map[int]bool)
	excluded := 0
	for _, sid := range sids {
		rows := groups[sid]
		if float64(len(rows)) < minDivisible {
			excluded += len(rows)
			continue
		}
		valCount := int(math.Round(float64(len(rows)) * opts.ValRatio))
		for _, k := range rng.Perm(len(rows))[:valCount] {
			valRows[rows[k]] = true
		}
	}

	train := make([]int, 0, tbl.Len()-len(valRows))
	val := make([]int, 0, len(valRows))
	for i := 0; i < tbl.Len(); i++ {
		if valRows[i] {
			val = append(val, i)
		} else {
			train = append(train, i)
		}
	}

	result := &Result{
		Train:    tbl.Select(train).WithSubset(SubsetTrain),
		Val:      tbl.Select(val).WithSubset(SubsetVal),
		Excluded: excluded,
		RunID:    uuid.New(),
	}

	serviceLogger().Info("frequency split complete",
		"run_id", result.RunID,
		"records", tbl.Len(),
		"species", len(groups),
		"train", result.Train.Len(),
		"val", result.Val.Len(),
		"excluded", result.Excluded,
		"val_ratio", opts.ValRatio)

	return result, nil
}

// WriteFrequencyOutputs writes the train-without-val, val and combined
// CSV files using the percentage naming convention. The subset tag column
// is appended after the input columns.
func WriteFrequencyOutputs(result *Result, inputPath, outputName string, valRatio float64) error {
	base := trimCSVExt(inputPath)
	pct := fmt.Sprintf("%g%%", valRatio*100)

	trainVal, err := result.Train.Append(result.Val)
	if err != nil {
		return err
	}

	outputs := []struct {
		path string
		tbl  *observation.Table
	}{
		{fmt.Sprintf("%s_without_val-%s.csv", base, pct), result.Train},
		{fmt.Sprintf("%s-%s.csv", trimCSVExt(outputName), pct), result.Val},
		{fmt.Sprintf("%s_val-%s.csv", base, pct), trainVal},
	}

	for _, out := range outputs {
		if err := out.tbl.WriteCSV(out.path); err != nil {
			return err
		}
		serviceLogger().Info("wrote split file", "path", out.path, "records", out.tbl.Len())
	}
	return nil
}
