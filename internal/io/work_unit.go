package io

import (
	"github.com/ecopia-map/point_octree/internal/geometry"
)

// Contains the minimal data needed to run and check a single range query
type WorkUnit struct {
	Index int
	Box   *geometry.BoundingBox
}
