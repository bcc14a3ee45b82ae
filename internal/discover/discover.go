// Package discover enumerates patch and raster files under a directory
// tree by extension and filename suffix.
package discover

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tlarcher/geolife-go/internal/errors"
)

// FileInfo describes a discovered file.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// FindFiles walks the tree rooted at root and returns the path of every
// file whose extension is one of extensions (case-sensitive, leading dot
// optional) and whose filename stem matches suffixPattern as a regular
// expression anchored at the end of the stem. An empty suffixPattern
// matches every stem. Order follows filesystem traversal; callers needing
// determinism must sort.
func FindFiles(root string, extensions []string, suffixPattern string) ([]string, error) {
	infos, err := FindFileInfos(root, extensions, suffixPattern)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(infos))
	for _, fi := range infos {
		paths = append(paths, fi.Path)
	}
	return paths, nil
}

// FindFileInfos is FindFiles with size and modification time attached to
// each result.
func FindFileInfos(root string, extensions []string, suffixPattern string) ([]FileInfo, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf("search root not found: %s", root).
				Component("discover").
				Category(errors.CategoryNotFound).
				FileContext(root).
				Build()
		}
		return nil, errors.New(err).
			Component("discover").
			Category(errors.CategoryFileIO).
			FileContext(root).
			Build()
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.TrimPrefix(ext, ".")] = true
	}

	stemRe, err := regexp.Compile("(" + suffixPattern + ")$")
	if err != nil {
		return nil, errors.Newf("invalid suffix pattern %q: %w", suffixPattern, err).
			Component("discover").
			Category(errors.CategoryValidation).
			Build()
	}

	var files []FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		ext := filepath.Ext(name)
		if ext == "" || !extSet[ext[1:]] {
			return nil
		}
		stem := strings.TrimSuffix(name, ext)
		if !stemRe.MatchString(stem) {
			return nil
		}
		files = append(files, FileInfo{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, errors.New(err).
			Component("discover").
			Category(errors.CategoryFileIO).
			FileContext(root).
			Build()
	}

	return files, nil
}
