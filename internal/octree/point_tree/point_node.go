package point_tree

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// Each node is either an internal node linking to exactly eight children, an empty leaf or a
// filled leaf holding a single point. A node never holds a point and children at the same time.
const (
	internalNode = nodeType(iota)
	leafNodeEmpty
	leafNodeFilled
)

type nodeType uint8

// pointNodeData is replaced as a whole on every state transition, see the newX constructors.
type pointNodeData struct {
	nodeType nodeType
	children *[8]PointNode
	point    r3.Vector
}

func newLeafNodeEmpty() pointNodeData {
	return pointNodeData{nodeType: leafNodeEmpty}
}

func newLeafNodeFilled(p r3.Vector) pointNodeData {
	return pointNodeData{nodeType: leafNodeFilled, point: p}
}

func newInternalNode(children *[8]PointNode) pointNodeData {
	return pointNodeData{nodeType: internalNode, children: children}
}

// Models a node of the octree covering the box center ± halfExtent. Children are laid out by
// octant index: bit 4 selects the +x half, bit 2 the +y half and bit 1 the +z half.
//
//	child: 0 1 2 3 4 5 6 7
//	x:     - - - - + + + +
//	y:     - - + + - - + +
//	z:     - + - + - + - +
type PointNode struct {
	center     r3.Vector
	halfExtent r3.Vector
	node       pointNodeData
}

// Counters collected while answering a range query
type QueryStats struct {
	PointTests int // occupants compared against the query box
	NodeVisits int // children whose box overlapped the query box
}

// Instantiates a new empty leaf. The extents are not validated, callers must provide positive
// values covering the domain of the points that will be inserted.
func NewPointNode(center r3.Vector, halfExtent r3.Vector) *PointNode {
	n := &PointNode{}
	n.init(center, halfExtent)
	return n
}

func (n *PointNode) init(center r3.Vector, halfExtent r3.Vector) {
	n.center = center
	n.halfExtent = halfExtent
	n.node = newLeafNodeEmpty()
}

func (n *PointNode) Center() r3.Vector {
	return n.center
}

func (n *PointNode) HalfExtent() r3.Vector {
	return n.halfExtent
}

func (n *PointNode) GetBoundingBox() *geometry.BoundingBox {
	return geometry.NewBoundingBoxFromCenter(n.center, n.halfExtent)
}

func (n *PointNode) IsLeaf() bool {
	return n.node.nodeType != internalNode
}

func (n *PointNode) IsOccupied() bool {
	return n.node.nodeType == leafNodeFilled
}

func (n *PointNode) GetOccupant() (r3.Vector, bool) {
	if n.node.nodeType != leafNodeFilled {
		return r3.Vector{}, false
	}
	return n.node.point, true
}

// Child returns the node owning the given octant, or nil if n is a leaf.
func (n *PointNode) Child(octant int) *PointNode {
	if n.node.nodeType != internalNode {
		return nil
	}
	return &n.node.children[octant]
}

func (n *PointNode) GetChild(octant int) octree.INode {
	if child := n.Child(octant); child != nil {
		return child
	}
	return nil
}

// Returns the index of the child octant that would hold the given point. Points lying on a
// splitting plane belong to the + side.
func (n *PointNode) OctantOf(point r3.Vector) int {
	return octantOf(n.center, point)
}

func octantOf(center r3.Vector, point r3.Vector) int {
	oct := 0
	if point.X >= center.X {
		oct |= 4
	}
	if point.Y >= center.Y {
		oct |= 2
	}
	if point.Z >= center.Z {
		oct |= 1
	}
	return oct
}

// Returns center and half extent of the given octant of the box center ± halfExtent
func octantBox(center r3.Vector, halfExtent r3.Vector, octant int) (r3.Vector, r3.Vector) {
	childCenter := center
	childCenter.X += halfExtent.X * sign(octant&4)
	childCenter.Y += halfExtent.Y * sign(octant&2)
	childCenter.Z += halfExtent.Z * sign(octant&1)
	return childCenter, halfExtent.Mul(.5)
}

func sign(bit int) float64 {
	if bit != 0 {
		return .5
	}
	return -.5
}

// Inserts the point in the subtree. Inserting into an occupied leaf splits it into eight
// octants and pushes both the old and the new point down. No bound check is performed and
// coincident points keep splitting until floating point precision separates them.
func (n *PointNode) Insert(point r3.Vector) {
	n.insert(point, 0, depthLimit{})
}

// depthLimit bounds the depth at which leaves may still be split. The zero value is unbounded.
type depthLimit struct {
	maxDepth int
	policy   DepthPolicy
}

type insertOutcome uint8

const (
	pointInserted insertOutcome = iota
	pointMerged
	pointRejected
)

func (n *PointNode) insert(point r3.Vector, depth int, limit depthLimit) insertOutcome {
	switch n.node.nodeType {
	case leafNodeEmpty:
		n.node = newLeafNodeFilled(point)
		return pointInserted

	case leafNodeFilled:
		oldPoint := n.node.point
		if limit.maxDepth > 0 && !separableWithin(n.center, n.halfExtent, oldPoint, point, depth, limit.maxDepth) {
			if limit.policy == DepthPolicyReject {
				return pointRejected
			}
			return pointMerged
		}
		n.splitIntoOctants()
		n.node.children[n.OctantOf(oldPoint)].insert(oldPoint, depth+1, limit)
		return n.node.children[n.OctantOf(point)].insert(point, depth+1, limit)

	default:
		return n.node.children[n.OctantOf(point)].insert(point, depth+1, limit)
	}
}

// Turns the leaf into an internal node with eight empty children. The occupant, if any, is
// dropped: callers are responsible for reinserting it.
func (n *PointNode) splitIntoOctants() {
	children := new([8]PointNode)
	for i := range children {
		center, halfExtent := octantBox(n.center, n.halfExtent, i)
		children[i].init(center, halfExtent)
	}
	n.node = newInternalNode(children)
}

// Reports whether a and b end up in different leaves without creating nodes deeper than
// maxDepth, starting from a leaf at the given depth.
func separableWithin(center, halfExtent, a, b r3.Vector, depth, maxDepth int) bool {
	for ; depth < maxDepth; depth++ {
		octA := octantOf(center, a)
		if octA != octantOf(center, b) {
			return true
		}
		center, halfExtent = octantBox(center, halfExtent, octA)
	}
	return false
}

// Returns all the points stored in the subtree lying inside the closed box [min, max].
// Children whose box is separated from the query box are skipped without being visited.
func (n *PointNode) QueryRange(min r3.Vector, max r3.Vector) []r3.Vector {
	return n.queryRange(min, max, nil, &QueryStats{})
}

// Same as QueryRange, also reporting how much of the tree has been touched.
func (n *PointNode) QueryRangeStats(min r3.Vector, max r3.Vector) ([]r3.Vector, QueryStats) {
	var stats QueryStats
	results := n.queryRange(min, max, nil, &stats)
	return results, stats
}

func (n *PointNode) queryRange(min, max r3.Vector, results []r3.Vector, stats *QueryStats) []r3.Vector {
	switch n.node.nodeType {
	case leafNodeEmpty:
		return results

	case leafNodeFilled:
		stats.PointTests++
		if geometry.ContainsPoint(min, max, n.node.point) {
			results = append(results, n.node.point)
		}
		return results

	default:
		for i := range n.node.children {
			child := &n.node.children[i]
			childMin := child.center.Sub(child.halfExtent)
			childMax := child.center.Add(child.halfExtent)
			if !geometry.Overlaps(childMin, childMax, min, max) {
				continue
			}
			stats.NodeVisits++
			results = child.queryRange(min, max, results, stats)
		}
		return results
	}
}

// Walks the subtree depth first, parents before children. Returning false from fn prunes the
// children of the current node.
func (n *PointNode) Walk(fn func(node *PointNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *PointNode) walk(fn func(node *PointNode, depth int) bool, depth int) {
	if !fn(n, depth) || n.node.nodeType != internalNode {
		return
	}
	for i := range n.node.children {
		n.node.children[i].walk(fn, depth+1)
	}
}
