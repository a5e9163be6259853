package point_tree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// What to do with a point that cannot be separated from the occupant of a leaf without
// growing the tree past its maximum depth
type DepthPolicy string

const (
	// The point is absorbed by the existing occupant and counted as merged
	DepthPolicyMerge DepthPolicy = "MERGE"

	// The point is refused with ErrMaxDepthReached and the tree is left untouched
	DepthPolicyReject DepthPolicy = "REJECT"
)

var (
	ErrOutOfBounds     = errors.New("point is outside the bounds of the tree")
	ErrMaxDepthReached = errors.New("point cannot be separated from an existing one within the max depth")
)

// Options extending the plain octree behaviour. The zero value keeps the permissive defaults:
// no depth limit and no bound check.
type Options struct {
	MaxDepth     int         // Max depth of the leaves, 0 for unbounded subdivision
	DepthPolicy  DepthPolicy // Outcome of insertions beyond MaxDepth, defaults to MERGE
	StrictBounds bool        // Rejects points lying outside the root bounding box
}

// Represents an octree of points rooted at a PointNode covering center ± halfExtent
type PointTree struct {
	rootNode       *PointNode
	center         r3.Vector
	halfExtent     r3.Vector
	opts           Options
	numberOfPoints int64
	mergedPoints   int64
}

// Builds an empty PointTree
func NewPointTree(center r3.Vector, halfExtent r3.Vector, opts Options) *PointTree {
	if opts.DepthPolicy == "" {
		opts.DepthPolicy = DepthPolicyMerge
	}
	return &PointTree{
		rootNode:   NewPointNode(center, halfExtent),
		center:     center,
		halfExtent: halfExtent,
		opts:       opts,
	}
}

func (tree *PointTree) GetRootNode() octree.INode {
	return tree.rootNode
}

func (tree *PointTree) RootNode() *PointNode {
	return tree.rootNode
}

func (tree *PointTree) Options() Options {
	return tree.opts
}

// Adds a point to the tree. With the default options this never fails.
func (tree *PointTree) AddPoint(point r3.Vector) error {
	if tree.opts.StrictBounds && !tree.rootNode.GetBoundingBox().Contains(point) {
		return errors.Wrapf(ErrOutOfBounds, "point (%g, %g, %g)", point.X, point.Y, point.Z)
	}

	limit := depthLimit{maxDepth: tree.opts.MaxDepth, policy: tree.opts.DepthPolicy}
	switch tree.rootNode.insert(point, 0, limit) {
	case pointRejected:
		return errors.Wrapf(ErrMaxDepthReached, "point (%g, %g, %g), max depth %d", point.X, point.Y, point.Z, tree.opts.MaxDepth)
	case pointMerged:
		tree.mergedPoints++
	default:
		tree.numberOfPoints++
	}
	return nil
}

func (tree *PointTree) QueryRange(min r3.Vector, max r3.Vector) []r3.Vector {
	return tree.rootNode.QueryRange(min, max)
}

func (tree *PointTree) QueryRangeStats(min r3.Vector, max r3.Vector) ([]r3.Vector, QueryStats) {
	return tree.rootNode.QueryRangeStats(min, max)
}

func (tree *PointTree) QueryBox(box *geometry.BoundingBox) []r3.Vector {
	return tree.rootNode.QueryRange(box.Min(), box.Max())
}

// Number of points stored in the tree, merged points excluded
func (tree *PointTree) NumberOfPoints() int64 {
	return tree.numberOfPoints
}

// Number of points absorbed by an existing occupant because of the depth limit
func (tree *PointTree) MergedPoints() int64 {
	return tree.mergedPoints
}

// Depth of the deepest node, the root being at depth 0
func (tree *PointTree) Depth() int {
	maxDepth := 0
	tree.rootNode.Walk(func(_ *PointNode, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return maxDepth
}

// Total number of nodes, internal nodes and empty leaves included
func (tree *PointTree) NodeCount() int {
	count := 0
	tree.rootNode.Walk(func(_ *PointNode, _ int) bool {
		count++
		return true
	})
	return count
}

// Releases every node and starts over from an empty root with the same bounds
func (tree *PointTree) Clear() bool {
	tree.rootNode = NewPointNode(tree.center, tree.halfExtent)
	tree.numberOfPoints = 0
	tree.mergedPoints = 0
	return true
}
