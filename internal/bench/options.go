package bench

import (
	"strings"

	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
)

type Strategy string

const (
	// Range queries answered by the octree
	Octree Strategy = "OCTREE"

	// Range queries answered testing every point, the reference implementation
	Naive Strategy = "NAIVE"

	// Both strategies run on the same data, one after the other
	Both Strategy = "BOTH"
)

func (s Strategy) RunsOctree() bool {
	return s == Octree || s == Both
}

func (s Strategy) RunsNaive() bool {
	return s == Naive || s == Both
}

func ParseStrategy(value string) Strategy {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	switch Strategy(normalizedValue) {
	case Octree, Naive, Both:
		return Strategy(normalizedValue)
	}
	return ""
}

func ParseDepthPolicy(value string) point_tree.DepthPolicy {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	switch point_tree.DepthPolicy(normalizedValue) {
	case point_tree.DepthPolicyMerge, point_tree.DepthPolicyReject:
		return point_tree.DepthPolicy(normalizedValue)
	}
	return ""
}

// Contains the options needed to build the tree and run the benchmark commands
type BenchOptions struct {
	Input          string                 // Input LAS file/folder, random points are generated when empty
	FolderInput    bool                   // Enables loading of all LAS files from the input folder
	Recursive      bool                   // Recursive lookup of LAS files in subfolders
	NumPoints      int                    // Number of random points to generate
	Seed           int64                  // Seed of the random point generator
	RootCenter     r3.Vector              // Center of the root node
	RootHalfExtent r3.Vector              // Half extent of the root node
	FitRootToInput bool                   // Derive the root bounds from the LAS headers instead of RootCenter/RootHalfExtent
	Recenter       bool                   // Translate LAS points so that their bounds are centered on the origin
	InputCenter    r3.Vector              // Center of the LAS bounds, moved to the origin when Recenter is set
	QueryMin       r3.Vector              // Min corner of the benchmark query box
	QueryMax       r3.Vector              // Max corner of the benchmark query box
	Strategy       Strategy               // Strategies to time
	MaxDepth       int                    // Max depth of the tree, 0 for unbounded
	DepthPolicy    point_tree.DepthPolicy // Outcome of insertions beyond MaxDepth
	StrictBounds   bool                   // Reject points outside the root bounds
	NumQueries     int                    // Number of random boxes checked by the verify command
	QueryHalfSize  float64                // Half size of the random boxes checked by the verify command
	Workers        int                    // Number of verify consumers, 0 for one per CPU

	Command              string
	BenchGenerateOptions *BenchGenerateOptions
}

type BenchGenerateOptions struct {
	Output string // Output LAS file
}

func (opt *BenchOptions) RootBoundingBox() *geometry.BoundingBox {
	return geometry.NewBoundingBoxFromCenter(opt.RootCenter, opt.RootHalfExtent)
}

func (opt *BenchOptions) QueryBoundingBox() *geometry.BoundingBox {
	return geometry.NewBoundingBoxFromCorners(opt.QueryMin, opt.QueryMax)
}

func (opt *BenchOptions) TreeOptions() point_tree.Options {
	return point_tree.Options{
		MaxDepth:     opt.MaxDepth,
		DepthPolicy:  opt.DepthPolicy,
		StrictBounds: opt.StrictBounds,
	}
}

func (opt *BenchOptions) Copy() *BenchOptions {
	newOpt := *opt
	newOpt.BenchGenerateOptions = nil

	if opt.BenchGenerateOptions != nil {
		generateOpt := *opt.BenchGenerateOptions
		newOpt.BenchGenerateOptions = &generateOpt
	}

	return &newOpt
}

type IRunner interface {
	Run(opts *BenchOptions) error
}
