package scan

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/point_octree/internal/octree"
)

var _ octree.RangeQuerier = (*LinearIndex)(nil)

func TestLinearIndex(t *testing.T) {
	l := NewLinearIndex(4)
	require.Zero(t, l.Len())
	require.Empty(t, l.QueryRange(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1}))

	points := []r3.Vector{
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: -0.1, Y: -0.1, Z: -0.1},
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 0, Z: 0},
	}
	for _, p := range points {
		l.Add(p)
	}
	require.Equal(t, 4, l.Len())
	require.Equal(t, points, l.Points())

	min := r3.Vector{}
	max := r3.Vector{X: 1, Y: 1, Z: 1}
	require.Equal(t, []r3.Vector{points[0], points[2]}, l.QueryRange(min, max))
	require.Equal(t, 2, l.CountRange(min, max))
	require.Equal(t, 0, l.CountRange(r3.Vector{X: 5, Y: 5, Z: 5}, r3.Vector{X: 6, Y: 6, Z: 6}))
}
