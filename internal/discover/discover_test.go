package discover

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlarcher/geolife-go/internal/errors"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	return rels
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "a.csv", "b.txt", "sub/c.csv")

	paths, err := FindFiles(root, []string{"csv"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "sub/c.csv"}, relPaths(t, root, paths))
}

func TestFindFilesLeadingDotTolerated(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "patch.tif", "patch.jpeg")

	paths, err := FindFiles(root, []string{".tif", "jpeg"}, "")
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestFindFilesSuffixPattern(t *testing.T) {
	t.Parallel()

	root := writeTree(t,
		"1001_rgb.tif",
		"1001_altitude.tif",
		"1002_rgb.tif",
		"notes_rgb.txt",
	)

	paths, err := FindFiles(root, []string{"tif"}, "_rgb")
	require.NoError(t, err)
	assert.Equal(t, []string{"1001_rgb.tif", "1002_rgb.tif"}, relPaths(t, root, paths))
}

func TestFindFilesCaseSensitiveExtensions(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "a.CSV", "b.csv")

	paths, err := FindFiles(root, []string{"csv"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.csv"}, relPaths(t, root, paths))
}

func TestFindFilesMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFiles(filepath.Join(t.TempDir(), "absent"), []string{"csv"}, "")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestFindFilesInvalidPattern(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "a.csv")
	_, err := FindFiles(root, []string{"csv"}, "([")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestFindFilesIdempotent(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "a.csv", "sub/b.csv", "sub/deep/c.csv")

	first, err := FindFiles(root, []string{"csv"}, "")
	require.NoError(t, err)
	second, err := FindFiles(root, []string{"csv"}, "")
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestFindFileInfos(t *testing.T) {
	t.Parallel()

	root := writeTree(t, "a.csv")
	infos, err := FindFileInfos(root, []string{"csv"}, "")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int64(1), infos[0].Size)
	assert.False(t, infos[0].ModTime.IsZero())
}
