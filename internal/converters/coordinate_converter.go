package converters

import (
	"github.com/golang/geo/r3"
)

// Maps coordinates read from a point source into the frame of the tree
type CoordinateConverter interface {
	ConvertCoordinate(coord r3.Vector) r3.Vector
}
