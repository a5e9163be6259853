package algorithm_manager

import (
	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
	"github.com/ecopia-map/point_octree/internal/scan"
)

type AlgorithmManager interface {
	GetTreeAlgorithm() *point_tree.PointTree
	GetLinearAlgorithm() *scan.LinearIndex
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetPointGeneratorAlgorithm() *data.PointGenerator
}

// Builds the AlgorithmManager serving the given options
type Factory func(opts *bench.BenchOptions) AlgorithmManager
