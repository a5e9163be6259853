package pkg

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/internal/metrics"
	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
	"github.com/ecopia-map/point_octree/internal/scan"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

const (
	droppedOutOfBounds = "out_of_bounds"
	droppedMaxDepth    = "max_depth"
	droppedMerged      = "merged"
)

// Returns a copy of the options with the root bounds resolved, together with the LAS files to load.
// No file is returned when points have to be generated.
func prepareOptions(fileFinder tools.FileFinder, opts *bench.BenchOptions) (*bench.BenchOptions, []string, error) {
	runOpts := opts.Copy()
	if runOpts.Input == "" {
		return runOpts, nil, nil
	}

	files, err := fileFinder.GetLasFilesToProcess(runOpts)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, errors.Errorf("no las file found in %s", runOpts.Input)
	}

	if !runOpts.FitRootToInput && !runOpts.Recenter {
		return runOpts, files, nil
	}

	bounds, err := readInputBounds(files)
	if err != nil {
		return nil, nil, err
	}
	runOpts.RootCenter = bounds.Center()
	runOpts.RootHalfExtent = bounds.HalfExtent()
	if runOpts.Recenter {
		runOpts.InputCenter = bounds.Center()
		runOpts.RootCenter = r3.Vector{}
	}
	tools.LogOutput(fmt.Sprintf("Root bounds: center %s, half extent %s", tools.FormatVector(runOpts.RootCenter), tools.FormatVector(runOpts.RootHalfExtent)))

	return runOpts, files, nil
}

// Union of the bounds declared by the headers of the given LAS files
func readInputBounds(files []string) (*geometry.BoundingBox, error) {
	var bounds *geometry.BoundingBox
	for _, file := range files {
		box, err := io.ReadLasBounds(file)
		if err != nil {
			return nil, err
		}
		if bounds == nil {
			bounds = box
			continue
		}
		bounds.ExpandToFit(box.Min())
		bounds.ExpandToFit(box.Max())
	}
	return bounds, nil
}

// Generates the random points of the run or reads them from the LAS files
func loadPoints(algorithmManager algorithm_manager.AlgorithmManager, opts *bench.BenchOptions, files []string) ([]r3.Vector, error) {
	if len(files) == 0 {
		points := algorithmManager.GetPointGeneratorAlgorithm().Generate(opts.NumPoints)
		tools.LogOutput(fmt.Sprintf("Created %d random points (seed %d)", len(points), opts.Seed))
		return points, nil
	}

	var points []r3.Vector
	for _, file := range files {
		filePoints, err := io.ReadLasPoints(file, algorithmManager.GetCoordinateConverterAlgorithm())
		if err != nil {
			return nil, err
		}
		tools.LogOutput(fmt.Sprintf("Loaded %d points from %s", len(filePoints), file))
		points = append(points, filePoints...)
	}
	return points, nil
}

// Inserts the points in a new tree and, when the tree stores them, in a new linear index, so that
// both hold the same points whatever the tree options.
func buildIndexes(algorithmManager algorithm_manager.AlgorithmManager, points []r3.Vector) (*point_tree.PointTree, *scan.LinearIndex, error) {
	tree := algorithmManager.GetTreeAlgorithm()
	linear := algorithmManager.GetLinearAlgorithm()

	for _, p := range points {
		stored := tree.NumberOfPoints()
		err := tree.AddPoint(p)
		switch {
		case errors.Is(err, point_tree.ErrOutOfBounds):
			metrics.InstrumentPointDropped(droppedOutOfBounds)
			continue
		case errors.Is(err, point_tree.ErrMaxDepthReached):
			metrics.InstrumentPointDropped(droppedMaxDepth)
			continue
		case err != nil:
			return nil, nil, err
		}

		if tree.NumberOfPoints() == stored {
			metrics.InstrumentPointDropped(droppedMerged)
			continue
		}
		metrics.InstrumentPointInserted()
		linear.Add(p)
	}

	return tree, linear, nil
}
