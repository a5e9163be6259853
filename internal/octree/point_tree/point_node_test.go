package point_tree

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/point_octree/internal/octree"
)

var (
	origin = r3.Vector{}
	unit   = r3.Vector{X: 1, Y: 1, Z: 1}
)

func randomPoints(rng *rand.Rand, n int) []r3.Vector {
	points := make([]r3.Vector, n)
	for i := range points {
		points[i] = r3.Vector{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
	}
	return points
}

func countPoints(points []r3.Vector) map[r3.Vector]int {
	counts := make(map[r3.Vector]int, len(points))
	for _, p := range points {
		counts[p]++
	}
	return counts
}

// Checks that no node holds both an occupant and children, and that internal nodes own all
// eight children.
func validateNodes(t *testing.T, root *PointNode) {
	t.Helper()
	root.Walk(func(node *PointNode, _ int) bool {
		if node.IsLeaf() {
			for i := 0; i < 8; i++ {
				require.Nil(t, node.Child(i))
				require.Nil(t, node.GetChild(i))
			}
			return true
		}
		require.False(t, node.IsOccupied())
		_, ok := node.GetOccupant()
		require.False(t, ok)
		for i := 0; i < 8; i++ {
			require.NotNil(t, node.Child(i))
		}
		return true
	})
}

func TestNewPointNode(t *testing.T) {
	n := NewPointNode(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 4, Y: 5, Z: 6})

	require.True(t, n.IsLeaf())
	require.False(t, n.IsOccupied())
	require.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, n.Center())
	require.Equal(t, r3.Vector{X: 4, Y: 5, Z: 6}, n.HalfExtent())
	require.Equal(t, r3.Vector{X: -3, Y: -3, Z: -3}, n.GetBoundingBox().Min())
	require.Equal(t, r3.Vector{X: 5, Y: 7, Z: 9}, n.GetBoundingBox().Max())

	var _ octree.INode = n
}

func TestOctantOf(t *testing.T) {
	n := NewPointNode(origin, unit)

	tests := []struct {
		point r3.Vector
		want  int
	}{
		{r3.Vector{X: -0.5, Y: -0.5, Z: -0.5}, 0},
		{r3.Vector{X: -0.5, Y: -0.5, Z: 0.5}, 1},
		{r3.Vector{X: -0.5, Y: 0.5, Z: -0.5}, 2},
		{r3.Vector{X: -0.5, Y: 0.5, Z: 0.5}, 3},
		{r3.Vector{X: 0.5, Y: -0.5, Z: -0.5}, 4},
		{r3.Vector{X: 0.5, Y: -0.5, Z: 0.5}, 5},
		{r3.Vector{X: 0.5, Y: 0.5, Z: -0.5}, 6},
		{r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, 7},
		// ties on a splitting plane go to the + side
		{r3.Vector{X: 0, Y: 0, Z: 0}, 7},
		{r3.Vector{X: 0, Y: -0.5, Z: -0.5}, 4},
		{r3.Vector{X: -0.5, Y: 0, Z: -0.5}, 2},
		{r3.Vector{X: -0.5, Y: -0.5, Z: 0}, 1},
	}

	for _, test := range tests {
		require.Equal(t, test.want, n.OctantOf(test.point), "point %v", test.point)
	}
}

func TestInsertIntoEmptyLeaf(t *testing.T) {
	n := NewPointNode(origin, unit)
	p := r3.Vector{X: 0.3, Y: -0.2, Z: 0.1}
	n.Insert(p)

	require.True(t, n.IsLeaf())
	require.True(t, n.IsOccupied())
	occupant, ok := n.GetOccupant()
	require.True(t, ok)
	require.Equal(t, p, occupant)
}

func TestSplitIntoOctants(t *testing.T) {
	n := NewPointNode(origin, r3.Vector{X: 2, Y: 4, Z: 8})
	p1 := r3.Vector{X: 1, Y: -1, Z: 1}
	p2 := r3.Vector{X: -1, Y: 1, Z: -1}

	n.Insert(p1)
	n.Insert(p2)

	require.False(t, n.IsLeaf())
	require.False(t, n.IsOccupied())
	validateNodes(t, n)

	t.Run("children geometry", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			child := n.Child(i)
			want := r3.Vector{X: -1, Y: -2, Z: -4}
			if i&4 != 0 {
				want.X = 1
			}
			if i&2 != 0 {
				want.Y = 2
			}
			if i&1 != 0 {
				want.Z = 4
			}
			require.Equal(t, want, child.Center(), "octant %d", i)
			require.Equal(t, r3.Vector{X: 1, Y: 2, Z: 4}, child.HalfExtent(), "octant %d", i)
		}
	})

	t.Run("points routed to their octants", func(t *testing.T) {
		filled := 0
		for i := 0; i < 8; i++ {
			child := n.Child(i)
			require.True(t, child.IsLeaf())
			if child.IsOccupied() {
				filled++
			}
		}
		require.Equal(t, 2, filled)

		for _, p := range []r3.Vector{p1, p2} {
			child := n.Child(n.OctantOf(p))
			occupant, ok := child.GetOccupant()
			require.True(t, ok)
			require.Equal(t, p, occupant)

			eps := r3.Vector{X: 1e-9, Y: 1e-9, Z: 1e-9}
			require.Equal(t, []r3.Vector{p}, child.QueryRange(p.Sub(eps), p.Add(eps)))
		}
	})
}

func TestSplitSameOctant(t *testing.T) {
	n := NewPointNode(origin, unit)
	p1 := r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}
	p2 := r3.Vector{X: 0.6, Y: 0.6, Z: 0.6}

	n.Insert(p1)
	n.Insert(p2)

	// both points fall in octant 7 of the root, they are separated one level below
	child := n.Child(7)
	require.False(t, child.IsLeaf())
	for i := 0; i < 7; i++ {
		require.False(t, n.Child(i).IsOccupied())
	}
	require.Equal(t, 0, child.OctantOf(p1))
	require.Equal(t, 7, child.OctantOf(p2))
	occupant, _ := child.Child(0).GetOccupant()
	require.Equal(t, p1, occupant)
	occupant, _ = child.Child(7).GetOccupant()
	require.Equal(t, p2, occupant)
	validateNodes(t, n)
}

func TestInsertIntoInternalNode(t *testing.T) {
	n := NewPointNode(origin, unit)
	n.Insert(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	n.Insert(r3.Vector{X: -0.5, Y: -0.5, Z: -0.5})

	before := make([]bool, 8)
	for i := range before {
		before[i] = n.Child(i).IsOccupied()
	}

	p := r3.Vector{X: 0.5, Y: -0.5, Z: 0.5}
	n.Insert(p)

	for i := 0; i < 8; i++ {
		if i == n.OctantOf(p) {
			occupant, ok := n.Child(i).GetOccupant()
			require.True(t, ok)
			require.Equal(t, p, occupant)
			continue
		}
		require.Equal(t, before[i], n.Child(i).IsOccupied(), "octant %d", i)
		require.True(t, n.Child(i).IsLeaf())
	}
}

func TestQueryRangeScenarios(t *testing.T) {
	t.Run("two points around the center", func(t *testing.T) {
		n := NewPointNode(origin, unit)
		a := r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}
		b := r3.Vector{X: -0.1, Y: -0.1, Z: -0.1}
		n.Insert(a)
		n.Insert(b)

		require.ElementsMatch(t, []r3.Vector{a, b}, n.QueryRange(r3.Vector{X: -1, Y: -1, Z: -1}, unit))
		require.Equal(t, []r3.Vector{a}, n.QueryRange(origin, unit))
	})

	t.Run("empty tree", func(t *testing.T) {
		n := NewPointNode(origin, unit)
		require.Empty(t, n.QueryRange(r3.Vector{X: -1, Y: -1, Z: -1}, unit))
		require.Empty(t, n.QueryRange(r3.Vector{X: -100, Y: -100, Z: -100}, r3.Vector{X: 100, Y: 100, Z: 100}))
	})

	t.Run("point at the center", func(t *testing.T) {
		n := NewPointNode(origin, unit)
		n.Insert(origin)
		n.Insert(r3.Vector{X: -0.5, Y: -0.5, Z: -0.5})

		require.Equal(t, 7, n.OctantOf(origin))
		occupant, ok := n.Child(7).GetOccupant()
		require.True(t, ok)
		require.Equal(t, origin, occupant)
		require.Equal(t, []r3.Vector{origin}, n.QueryRange(origin, origin))
	})

	t.Run("boundary inclusive", func(t *testing.T) {
		n := NewPointNode(origin, unit)
		corner := r3.Vector{X: 1, Y: 1, Z: 1}
		n.Insert(corner)
		n.Insert(r3.Vector{X: -1, Y: -1, Z: -1})

		require.Equal(t, []r3.Vector{corner}, n.QueryRange(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, corner))
		require.Empty(t, n.QueryRange(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 0.99, Y: 1, Z: 1}))
	})

	t.Run("single occupant outside box", func(t *testing.T) {
		n := NewPointNode(origin, unit)
		n.Insert(r3.Vector{X: 0.9, Y: 0.9, Z: 0.9})
		require.Empty(t, n.QueryRange(r3.Vector{X: -1, Y: -1, Z: -1}, origin))
	})
}

func TestQueryRangeRandomPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	points := randomPoints(rng, 1000)

	n := NewPointNode(origin, unit)
	for _, p := range points {
		n.Insert(p)
	}
	validateNodes(t, n)

	t.Run("full domain returns every point once", func(t *testing.T) {
		results := n.QueryRange(r3.Vector{X: -1, Y: -1, Z: -1}, unit)
		require.Len(t, results, len(points))
		require.Equal(t, countPoints(points), countPoints(results))
	})

	t.Run("random boxes match brute force", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			a := randomPoints(rng, 1)[0]
			b := randomPoints(rng, 1)[0]
			min := r3.Vector{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
			max := r3.Vector{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}

			var expected []r3.Vector
			for _, p := range points {
				if p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y && p.Z >= min.Z && p.Z <= max.Z {
					expected = append(expected, p)
				}
			}
			require.ElementsMatch(t, expected, n.QueryRange(min, max))
		}
	})

	t.Run("tight box around each point", func(t *testing.T) {
		eps := r3.Vector{X: 1e-12, Y: 1e-12, Z: 1e-12}
		for _, p := range points[:100] {
			require.Equal(t, []r3.Vector{p}, n.QueryRange(p.Sub(eps), p.Add(eps)))
		}
	})

	t.Run("small box prunes the tree", func(t *testing.T) {
		q := r3.Vector{X: .05, Y: .05, Z: .05}
		_, stats := n.QueryRangeStats(q.Mul(-1), q)
		require.Less(t, stats.PointTests, 50)

		_, stats = n.QueryRangeStats(r3.Vector{X: -1, Y: -1, Z: -1}, unit)
		require.Equal(t, len(points), stats.PointTests)
	})
}

func TestQueryRangeDoesNotMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := NewPointNode(origin, unit)
	for _, p := range randomPoints(rng, 200) {
		n.Insert(p)
	}

	snapshot := func() []r3.Vector {
		var occupants []r3.Vector
		n.Walk(func(node *PointNode, _ int) bool {
			if p, ok := node.GetOccupant(); ok {
				occupants = append(occupants, p)
			}
			return true
		})
		return occupants
	}

	before := snapshot()
	n.QueryRange(r3.Vector{X: -0.3, Y: -0.3, Z: -0.3}, r3.Vector{X: 0.7, Y: 0.2, Z: 0.4})
	require.Equal(t, before, snapshot())
}

func TestInsertOutOfDomain(t *testing.T) {
	n := NewPointNode(origin, unit)
	outside := r3.Vector{X: 5, Y: -5, Z: 5}
	n.Insert(outside)
	n.Insert(r3.Vector{X: 0.2, Y: 0.2, Z: 0.2})

	// stored without complaint in the octant selected by the comparison with the center
	occupant, ok := n.Child(5).GetOccupant()
	require.True(t, ok)
	require.Equal(t, outside, occupant)

	// the query only reaches it through a box overlapping the octant it was filed under
	require.Empty(t, n.QueryRange(r3.Vector{X: 4, Y: -6, Z: 4}, r3.Vector{X: 6, Y: -4, Z: 6}))
	require.Equal(t, []r3.Vector{outside}, n.QueryRange(r3.Vector{X: 0, Y: -6, Z: 0}, r3.Vector{X: 6, Y: -0.5, Z: 6}))
}

func TestWalkPrune(t *testing.T) {
	n := NewPointNode(origin, unit)
	n.Insert(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	n.Insert(r3.Vector{X: -0.5, Y: -0.5, Z: -0.5})

	visited := 0
	n.Walk(func(_ *PointNode, depth int) bool {
		visited++
		return depth < 0
	})
	require.Equal(t, 1, visited)

	visited = 0
	n.Walk(func(_ *PointNode, _ int) bool {
		visited++
		return true
	})
	require.Equal(t, 9, visited)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func BenchmarkInsert(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	points := randomPoints(rng, b.N)
	n := NewPointNode(origin, unit)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Insert(points[i])
	}
}

func BenchmarkQueryRange(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	n := NewPointNode(origin, unit)
	for _, p := range randomPoints(rng, 100000) {
		n.Insert(p)
	}
	half := r3.Vector{X: .05, Y: .05, Z: .05}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		center := randomPoints(rng, 1)[0]
		n.QueryRange(center.Sub(half), center.Add(half))
	}
}
