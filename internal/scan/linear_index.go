package scan

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/geometry"
)

// LinearIndex answers range queries by testing every stored point. It is the reference the
// octree is measured and verified against.
type LinearIndex struct {
	points []r3.Vector
}

func NewLinearIndex(capacity int) *LinearIndex {
	return &LinearIndex{
		points: make([]r3.Vector, 0, capacity),
	}
}

func (l *LinearIndex) Add(point r3.Vector) {
	l.points = append(l.points, point)
}

func (l *LinearIndex) Len() int {
	return len(l.points)
}

func (l *LinearIndex) Points() []r3.Vector {
	return l.points
}

func (l *LinearIndex) QueryRange(min r3.Vector, max r3.Vector) []r3.Vector {
	var results []r3.Vector
	for _, p := range l.points {
		if geometry.ContainsPoint(min, max, p) {
			results = append(results, p)
		}
	}
	return results
}

// Same as QueryRange returning only the number of matches, the way the naive benchmark
// collects indices instead of copies.
func (l *LinearIndex) CountRange(min r3.Vector, max r3.Vector) int {
	count := 0
	for _, p := range l.points {
		if geometry.ContainsPoint(min, max, p) {
			count++
		}
	}
	return count
}
