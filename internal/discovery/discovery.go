// Package discovery provides candidate file discovery for batch comparisons.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vqcheck/vqcheck/internal/errors"
	"github.com/vqcheck/vqcheck/internal/util"
)

// FindVideoFiles finds video files in the given directory.
// Returns files sorted alphabetically by filename.
func FindVideoFiles(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", inputDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", inputDir)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsVideoFile(fullPath) {
			files = append(files, fullPath)
		}
	}

	if len(files) == 0 {
		return nil, errors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}

// ExpandCandidates resolves a mixed list of file and directory arguments into
// a flat, ordered list of candidate video files. A directory argument
// contributes every video file it directly contains.
func ExpandCandidates(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if util.DirectoryExists(arg) {
			found, err := FindVideoFiles(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if !util.FileExists(arg) {
			return nil, fmt.Errorf("candidate does not exist: %s", arg)
		}
		files = append(files, arg)
	}
	return files, nil
}
