package data

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/geometry"
)

// Produces points uniformly distributed inside a bounding box. The sequence only depends on
// the seed, so two generators built with the same arguments yield the same points.
type PointGenerator struct {
	rng *rand.Rand
	box *geometry.BoundingBox
}

// Builds a new PointGenerator over the given box
func NewPointGenerator(seed int64, box *geometry.BoundingBox) *PointGenerator {
	return &PointGenerator{
		rng: rand.New(rand.NewSource(seed)),
		box: box,
	}
}

// Builds a generator over the cube [-1,1]^3
func NewUnitPointGenerator(seed int64) *PointGenerator {
	return NewPointGenerator(seed, geometry.NewBoundingBox(-1, 1, -1, 1, -1, 1))
}

func (g *PointGenerator) Next() r3.Vector {
	return r3.Vector{
		X: g.uniform(g.box.Xmin, g.box.Xmax),
		Y: g.uniform(g.box.Ymin, g.box.Ymax),
		Z: g.uniform(g.box.Zmin, g.box.Zmax),
	}
}

func (g *PointGenerator) Generate(n int) []r3.Vector {
	points := make([]r3.Vector, n)
	for i := range points {
		points[i] = g.Next()
	}
	return points
}

// Returns a box with the given half size centered on a random point of the generator box
func (g *PointGenerator) NextBox(halfSize r3.Vector) *geometry.BoundingBox {
	return geometry.NewBoundingBoxFromCenter(g.Next(), halfSize)
}

func (g *PointGenerator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}
