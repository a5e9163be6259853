package octree

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/geometry"
)

// Anything able to return the points contained in the closed box [min, max]
type RangeQuerier interface {
	QueryRange(min r3.Vector, max r3.Vector) []r3.Vector
}

type ITree interface {
	RangeQuerier
	GetRootNode() INode
	// Adds a Point to the Tree
	AddPoint(point r3.Vector) error
	NumberOfPoints() int64
	Clear() bool
}

type INode interface {
	IsLeaf() bool
	IsOccupied() bool
	GetOccupant() (r3.Vector, bool)
	// Returns the i-th child octant, nil for leaves
	GetChild(octant int) INode
	GetBoundingBox() *geometry.BoundingBox
	OctantOf(point r3.Vector) int
}
