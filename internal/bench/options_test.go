package bench

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
)

func TestParseStrategy(t *testing.T) {
	require.Equal(t, Octree, ParseStrategy("octree"))
	require.Equal(t, Naive, ParseStrategy(" Naive "))
	require.Equal(t, Both, ParseStrategy("BOTH"))
	require.Equal(t, Strategy(""), ParseStrategy("kdtree"))

	require.True(t, Both.RunsOctree())
	require.True(t, Both.RunsNaive())
	require.False(t, Octree.RunsNaive())
	require.False(t, Naive.RunsOctree())
}

func TestParseDepthPolicy(t *testing.T) {
	require.Equal(t, point_tree.DepthPolicyMerge, ParseDepthPolicy("merge"))
	require.Equal(t, point_tree.DepthPolicyReject, ParseDepthPolicy("REJECT "))
	require.Equal(t, point_tree.DepthPolicy(""), ParseDepthPolicy("drop"))
}

func TestBenchOptionsCopy(t *testing.T) {
	opts := &BenchOptions{
		NumPoints:      10,
		RootHalfExtent: r3.Vector{X: 1, Y: 1, Z: 1},
		MaxDepth:       3,
		DepthPolicy:    point_tree.DepthPolicyReject,
		BenchGenerateOptions: &BenchGenerateOptions{
			Output: "points.las",
		},
	}

	newOpts := opts.Copy()
	require.Equal(t, opts, newOpts)

	newOpts.BenchGenerateOptions.Output = "other.las"
	require.Equal(t, "points.las", opts.BenchGenerateOptions.Output)

	require.Equal(t, point_tree.Options{MaxDepth: 3, DepthPolicy: point_tree.DepthPolicyReject}, opts.TreeOptions())
	require.Equal(t, r3.Vector{X: -1, Y: -1, Z: -1}, opts.RootBoundingBox().Min())
}
