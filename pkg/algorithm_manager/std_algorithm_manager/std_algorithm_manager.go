package std_algorithm_manager

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/converters/offset_converter"
	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
	"github.com/ecopia-map/point_octree/internal/scan"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *bench.BenchOptions
	coordinateConverter converters.CoordinateConverter
}

func NewAlgorithmManager(opts *bench.BenchOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: evaluateCoordinateConverterAlgorithm(opts),
	}
}

func evaluateCoordinateConverterAlgorithm(opts *bench.BenchOptions) converters.CoordinateConverter {
	if opts.Recenter {
		return offset_converter.NewRecenteringConverter(opts.InputCenter)
	}
	return offset_converter.NewOffsetConverter(r3.Vector{})
}

// Returns a new empty tree bound to the root box of the options
func (m *StandardAlgorithmManager) GetTreeAlgorithm() *point_tree.PointTree {
	return point_tree.NewPointTree(m.options.RootCenter, m.options.RootHalfExtent, m.options.TreeOptions())
}

func (m *StandardAlgorithmManager) GetLinearAlgorithm() *scan.LinearIndex {
	return scan.NewLinearIndex(m.options.NumPoints)
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

// Returns a generator of points spread over the root box
func (m *StandardAlgorithmManager) GetPointGeneratorAlgorithm() *data.PointGenerator {
	return data.NewPointGenerator(m.options.Seed, m.options.RootBoundingBox())
}
