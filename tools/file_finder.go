package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/bench"
)

type FileFinder interface {
	GetLasFilesToProcess(opts *bench.BenchOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetLasFilesToProcess(opts *bench.BenchOptions) ([]string, error) {
	// If folder input is not enabled then the las file is given by -input flag, otherwise look for las in -input folder
	// eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderInput {
		return []string{opts.Input}, nil
	}

	return f.getLasFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getLasFilesFromInputFolder(opts *bench.BenchOptions) ([]string, error) {
	var lasFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read input folder %s", opts.Input)
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			if !info.IsDir() && strings.ToLower(filepath.Ext(info.Name())) == ".las" {
				lasFiles = append(lasFiles, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	sort.Strings(lasFiles)
	return lasFiles, nil
}
