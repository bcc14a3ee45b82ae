package training

import (
	"sort"
	"strconv"

	"github.com/tlarcher/geolife-go/internal/encoding"
	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/observation"
)

// TopK returns the indices of the k highest scores, best first. Ties keep
// the lower index first.
func TopK(scores []float32, k int) []int {
	if k > len(scores) {
		k = len(scores)
	}
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx[:k]
}

// ExportPredictions writes per-record top-k predicted labels and scores to
// a CSV file, one row per record, resolving score indices through the
// label vocabulary.
func ExportPredictions(scores [][]float32, vocab *encoding.Vocabulary, topK int, path string) error {
	if topK <= 0 {
		return errors.Newf("top-k must be positive, got %d", topK).
			Component("training").
			Category(errors.CategoryValidation).
			Build()
	}

	header := []string{"observationIndex"}
	for k := 1; k <= topK; k++ {
		header = append(header, "predicted_"+strconv.Itoa(k), "score_"+strconv.Itoa(k))
	}

	rows := make([][]string, 0, len(scores))
	for i, row := range scores {
		if len(row) != vocab.Len() {
			return errors.Newf("prediction %d has %d scores, vocabulary has %d labels", i, len(row), vocab.Len()).
				Component("training").
				Category(errors.CategoryValidation).
				Build()
		}
		fields := []string{strconv.Itoa(i)}
		best := TopK(row, topK)
		for k := 0; k < topK; k++ {
			if k < len(best) {
				fields = append(fields,
					vocab.Labels()[best[k]],
					strconv.FormatFloat(float64(row[best[k]]), 'g', -1, 32))
			} else {
				fields = append(fields, "", "")
			}
		}
		rows = append(rows, fields)
	}

	tbl, err := observation.NewTable(header, rows)
	if err != nil {
		return err
	}
	return tbl.WriteCSV(path)
}
