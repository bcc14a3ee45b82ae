package split

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/observation"
)

func randomObsTable(t *testing.T, n int, seed int64) *observation.Table {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			strconv.FormatFloat(rng.Float64()*20-10, 'f', 4, 64),
			strconv.FormatFloat(rng.Float64()*10+40, 'f', 4, 64),
			strconv.Itoa(100 + rng.Intn(5)),
			fmt.Sprintf("obs-%d", i),
		}
	}
	tbl, err := observation.NewTable([]string{"lon", "lat", "speciesId", "observationId"}, rows)
	require.NoError(t, err)
	return tbl
}

func TestSpatialPartitionsExactly(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 500, 7)
	result, err := Spatial(tbl, SpatialOptions{Spacing: 0.5, ValFraction: 0.15, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, tbl.Len(), result.Train.Len()+result.Val.Len())
	assert.Zero(t, result.Excluded)

	// no record in both subsets
	trainIDs, err := result.Train.Strings("observationId")
	require.NoError(t, err)
	valIDs, err := result.Val.Strings("observationId")
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, id := range trainIDs {
		seen[id] = true
	}
	for _, id := range valIDs {
		assert.False(t, seen[id], "record %s in both subsets", id)
	}
}

func TestSpatialKeepsWholeBinsTogether(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 400, 11)
	spacing := 1.0
	result, err := Spatial(tbl, SpatialOptions{Spacing: spacing, ValFraction: 0.2, Seed: 1})
	require.NoError(t, err)

	binOf := func(tbl *observation.Table) map[[2]int64]string {
		bins := make(map[[2]int64]string)
		lons, err := tbl.Floats("lon")
		require.NoError(t, err)
		lats, err := tbl.Floats("lat")
		require.NoError(t, err)
		subsets, err := tbl.Strings("subset")
		require.NoError(t, err)
		for i := range lons {
			key := [2]int64{int64(math.Floor(lons[i] / spacing)), int64(math.Floor(lats[i] / spacing))}
			if prev, ok := bins[key]; ok {
				require.Equal(t, prev, subsets[i], "bin %v straddles subsets", key)
			}
			bins[key] = subsets[i]
		}
		return bins
	}

	trainBins := binOf(result.Train)
	valBins := binOf(result.Val)
	for key := range valBins {
		_, inTrain := trainBins[key]
		assert.False(t, inTrain, "bin %v in both subsets", key)
	}
}

func TestSpatialValFractionTarget(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 1000, 3)
	result, err := Spatial(tbl, SpatialOptions{Spacing: 0.25, ValFraction: 0.15, Seed: 99})
	require.NoError(t, err)

	// greedy whole-bin fill reaches the target and may overshoot by at
	// most one bin
	assert.GreaterOrEqual(t, result.Val.Len(), 150)
	assert.Less(t, result.Val.Len(), 300)
}

func TestSpatialDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 300, 5)
	opts := SpatialOptions{Spacing: 0.5, ValFraction: 0.2, Seed: 1234}

	a, err := Spatial(tbl, opts)
	require.NoError(t, err)
	b, err := Spatial(tbl, opts)
	require.NoError(t, err)

	aIDs, err := a.Val.Strings("observationId")
	require.NoError(t, err)
	bIDs, err := b.Val.Strings("observationId")
	require.NoError(t, err)
	assert.Equal(t, aIDs, bIDs)

	opts.Seed = 4321
	c, err := Spatial(tbl, opts)
	require.NoError(t, err)
	cIDs, err := c.Val.Strings("observationId")
	require.NoError(t, err)
	assert.NotEqual(t, aIDs, cIDs)
}

func TestSpatialSubsetTags(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 50, 2)
	result, err := Spatial(tbl, SpatialOptions{Spacing: 2, ValFraction: 0.3, Seed: 8})
	require.NoError(t, err)

	tags, err := result.Train.Strings("subset")
	require.NoError(t, err)
	for _, tag := range tags {
		assert.Equal(t, SubsetTrain, tag)
	}
	tags, err = result.Val.Strings("subset")
	require.NoError(t, err)
	for _, tag := range tags {
		assert.Equal(t, SubsetVal, tag)
	}
}

func TestSpatialOptionValidation(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 10, 2)

	_, err := Spatial(tbl, SpatialOptions{Spacing: 0, ValFraction: 0.2})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = Spatial(tbl, SpatialOptions{Spacing: 1, ValFraction: 1.5})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestSpatialMissingColumns(t *testing.T) {
	t.Parallel()

	tbl, err := observation.NewTable([]string{"speciesId"}, [][]string{{"101"}})
	require.NoError(t, err)

	_, err = Spatial(tbl, SpatialOptions{Spacing: 1, ValFraction: 0.2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"lon"`)
}

func TestWriteSpatialOutputs(t *testing.T) {
	t.Parallel()

	tbl := randomObsTable(t, 120, 6)
	result, err := Spatial(tbl, SpatialOptions{Spacing: 0.5, ValFraction: 0.2, Seed: 77})
	require.NoError(t, err)

	dir := t.TempDir()
	input := filepath.Join(dir, "obs.csv")
	require.NoError(t, WriteSpatialOutputs(result, input, 0.5))

	for _, name := range []string{"obs_train-30min.csv", "obs_val-30min.csv", "obs_train_val-30min.csv"} {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		assert.NoError(t, err, name)
	}

	// spatial convention: lon, lat, subset first
	out, err := observation.ReadCSV(filepath.Join(dir, "obs_train-30min.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"lon", "lat", "subset", "speciesId", "observationId"}, out.Columns())
}
