package pkg

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

type GenerateRunner struct {
	algorithmManagerFactory algorithm_manager.Factory
}

func NewGenerateRunner(algorithmManagerFactory algorithm_manager.Factory) bench.IRunner {
	return &GenerateRunner{
		algorithmManagerFactory: algorithmManagerFactory,
	}
}

// Writes NumPoints random points spread over the root bounds to the output LAS file
func (runner *GenerateRunner) Run(opts *bench.BenchOptions) error {
	if opts.BenchGenerateOptions == nil || opts.BenchGenerateOptions.Output == "" {
		return errors.New("output las file not specified")
	}
	output := opts.BenchGenerateOptions.Output

	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(output)); err != nil {
		return errors.Wrapf(err, "cannot create folder of %s", output)
	}

	points := runner.algorithmManagerFactory(opts).GetPointGeneratorAlgorithm().Generate(opts.NumPoints)
	if err := io.WriteLasPoints(output, points); err != nil {
		return errors.Wrapf(err, "cannot write las file %s", output)
	}

	tools.LogOutput(fmt.Sprintf("Written %d points to %s", len(points), output))
	return nil
}
