package geometry

import (
	"github.com/golang/geo/r3"
)

// Axis aligned box described by its min and max corners. All the tests performed
// on a BoundingBox treat it as closed, i.e. points lying on a face are inside.
type BoundingBox struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
	Zmin float64
	Zmax float64
}

// Builds a new BoundingBox from its extremes along each axis
func NewBoundingBox(Xmin, Xmax, Ymin, Ymax, Zmin, Zmax float64) *BoundingBox {
	return &BoundingBox{
		Xmin: Xmin,
		Xmax: Xmax,
		Ymin: Ymin,
		Ymax: Ymax,
		Zmin: Zmin,
		Zmax: Zmax,
	}
}

// Builds a new BoundingBox from its min and max corners
func NewBoundingBoxFromCorners(min, max r3.Vector) *BoundingBox {
	return NewBoundingBox(min.X, max.X, min.Y, max.Y, min.Z, max.Z)
}

// Builds a new BoundingBox spanning center ± halfExtent along each axis
func NewBoundingBoxFromCenter(center, halfExtent r3.Vector) *BoundingBox {
	return NewBoundingBoxFromCorners(center.Sub(halfExtent), center.Add(halfExtent))
}

func (b *BoundingBox) Min() r3.Vector {
	return r3.Vector{X: b.Xmin, Y: b.Ymin, Z: b.Zmin}
}

func (b *BoundingBox) Max() r3.Vector {
	return r3.Vector{X: b.Xmax, Y: b.Ymax, Z: b.Zmax}
}

func (b *BoundingBox) Center() r3.Vector {
	return b.Min().Add(b.Max()).Mul(0.5)
}

func (b *BoundingBox) HalfExtent() r3.Vector {
	return b.Max().Sub(b.Min()).Mul(0.5)
}

// Returns true if the point lies inside the box or on its boundary
func (b *BoundingBox) Contains(p r3.Vector) bool {
	return ContainsPoint(b.Min(), b.Max(), p)
}

// Returns true if the two boxes share at least one point, touching faces included
func (b *BoundingBox) Intersects(other *BoundingBox) bool {
	return Overlaps(b.Min(), b.Max(), other.Min(), other.Max())
}

// Grows the box so that it contains the given point
func (b *BoundingBox) ExpandToFit(p r3.Vector) {
	if p.X < b.Xmin {
		b.Xmin = p.X
	}
	if p.X > b.Xmax {
		b.Xmax = p.X
	}
	if p.Y < b.Ymin {
		b.Ymin = p.Y
	}
	if p.Y > b.Ymax {
		b.Ymax = p.Y
	}
	if p.Z < b.Zmin {
		b.Zmin = p.Z
	}
	if p.Z > b.Zmax {
		b.Zmax = p.Z
	}
}

// ContainsPoint reports whether p lies in the closed box [min, max] on all three axes.
func ContainsPoint(min, max, p r3.Vector) bool {
	return p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z
}

// Overlaps is the separating axis test between the closed boxes [aMin, aMax] and [bMin, bMax]:
// the boxes are disjoint iff on some axis one ends before the other starts.
func Overlaps(aMin, aMax, bMin, bMax r3.Vector) bool {
	return !(aMax.X < bMin.X || aMin.X > bMax.X ||
		aMax.Y < bMin.Y || aMin.Y > bMax.Y ||
		aMax.Z < bMin.Z || aMin.Z > bMax.Z)
}
