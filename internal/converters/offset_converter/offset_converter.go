package offset_converter

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/converters"
)

// Translates every coordinate by a fixed offset
type OffsetConverter struct {
	Offset r3.Vector
}

func NewOffsetConverter(offset r3.Vector) converters.CoordinateConverter {
	return &OffsetConverter{
		Offset: offset,
	}
}

// Builds the converter moving the given center to the origin
func NewRecenteringConverter(center r3.Vector) converters.CoordinateConverter {
	return NewOffsetConverter(center.Mul(-1))
}

func (c *OffsetConverter) ConvertCoordinate(coord r3.Vector) r3.Vector {
	return coord.Add(c.Offset)
}
