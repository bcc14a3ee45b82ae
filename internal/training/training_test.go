package training

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlarcher/geolife-go/internal/datamodule"
	"github.com/tlarcher/geolife-go/internal/encoding"
	"github.com/tlarcher/geolife-go/internal/observation"
)

// recordingTrainer counts delegated calls and returns canned predictions.
type recordingTrainer struct {
	fits      int
	validates int
	scores    [][]float32
}

func (r *recordingTrainer) Fit(ctx context.Context, sys *System, dm *datamodule.DataModule) error {
	r.fits++
	return nil
}

func (r *recordingTrainer) Validate(ctx context.Context, sys *System, dm *datamodule.DataModule) error {
	r.validates++
	return nil
}

func (r *recordingTrainer) Predict(ctx context.Context, sys *System, dm *datamodule.DataModule) ([][]float32, error) {
	return r.scores, nil
}

func testModel() ModelConfig {
	return ModelConfig{
		Modalities: map[string]string{"rgb": "resnet18", "temperature": "resnet18"},
		NumOutputs: 3,
	}
}

func testDataModule(t *testing.T) *datamodule.DataModule {
	t.Helper()
	dm, err := datamodule.New(datamodule.Config{DatasetPath: t.TempDir()})
	require.NoError(t, err)
	return dm
}

func TestParseTask(t *testing.T) {
	t.Parallel()

	task, err := ParseTask("classification_multilabel")
	require.NoError(t, err)
	assert.Equal(t, TaskClassificationMultilabel, task)

	task, err = ParseTask("")
	require.NoError(t, err)
	assert.Equal(t, TaskClassificationMulticlass, task)

	_, err = ParseTask("clustering")
	require.Error(t, err)
}

func TestLossForTask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LossCrossEntropy, LossForTask(TaskClassificationMulticlass))
	assert.Equal(t, LossBCE, LossForTask(TaskClassificationBinary))
	assert.Equal(t, LossBCE, LossForTask(TaskClassificationMultilabel))
	assert.Equal(t, LossMSE, LossForTask(TaskRegression))
}

func TestSystemDelegates(t *testing.T) {
	t.Parallel()

	trainer := &recordingTrainer{scores: [][]float32{{0.1, 0.7, 0.2}}}
	sys, err := NewSystem(testModel(), OptimizerConfig{}, TaskClassificationMulticlass, trainer)
	require.NoError(t, err)

	// lr default applied
	assert.InDelta(t, 0.01, sys.Optimizer.LearningRate, 1e-9)

	dm := testDataModule(t)
	ctx := context.Background()

	require.NoError(t, sys.Fit(ctx, dm))
	require.NoError(t, sys.Validate(ctx, dm))
	assert.Equal(t, 1, trainer.fits)
	assert.Equal(t, 1, trainer.validates)

	scores, err := sys.Predict(ctx, dm)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestSystemRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewSystem(testModel(), OptimizerConfig{}, TaskRegression, nil)
	require.Error(t, err)

	bad := testModel()
	bad.NumOutputs = 0
	_, err = NewSystem(bad, OptimizerConfig{}, TaskRegression, &recordingTrainer{})
	require.Error(t, err)
}

func TestPredictShapeCheck(t *testing.T) {
	t.Parallel()

	trainer := &recordingTrainer{scores: [][]float32{{0.1, 0.7}}} // 2 scores, 3 outputs
	sys, err := NewSystem(testModel(), OptimizerConfig{}, TaskClassificationMulticlass, trainer)
	require.NoError(t, err)

	_, err = sys.Predict(context.Background(), testDataModule(t))
	require.Error(t, err)
}

func TestTopK(t *testing.T) {
	t.Parallel()

	scores := []float32{0.1, 0.9, 0.3, 0.9}
	assert.Equal(t, []int{1, 3, 2}, TopK(scores, 3))
	assert.Equal(t, []int{1, 3, 2, 0}, TopK(scores, 10))
}

func TestExportPredictions(t *testing.T) {
	t.Parallel()

	vocab, err := encoding.NewVocabulary([]string{"101", "102", "103"})
	require.NoError(t, err)

	scores := [][]float32{
		{0.1, 0.7, 0.2},
		{0.5, 0.25, 0.25},
	}
	path := filepath.Join(t.TempDir(), "predictions.csv")
	require.NoError(t, ExportPredictions(scores, vocab, 2, path))

	tbl, err := observation.ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"observationIndex", "predicted_1", "score_1", "predicted_2", "score_2"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())

	first, err := tbl.Strings("predicted_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "101"}, first)
}

func TestExportPredictionsShapeMismatch(t *testing.T) {
	t.Parallel()

	vocab, err := encoding.NewVocabulary([]string{"101", "102"})
	require.NoError(t, err)

	err = ExportPredictions([][]float32{{0.1}}, vocab, 1, filepath.Join(t.TempDir(), "p.csv"))
	require.Error(t, err)
}
