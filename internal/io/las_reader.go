package io

import (
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/geometry"
)

// Reads all the points of a LAS file, mapping them through the converter when one is given.
// Only the positions are kept.
func ReadLasPoints(filePath string, converter converters.CoordinateConverter) (points []r3.Vector, err error) {
	lf, err := lidario.NewLasFile(filePath, "r")
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open las file %s", filePath)
	}
	defer func() {
		err = multierr.Combine(err, closeLasFile(lf, filePath))
	}()

	points = make([]r3.Vector, 0, lf.Header.NumberPoints)
	for i := 0; i < lf.Header.NumberPoints; i++ {
		p, perr := lf.LasPoint(i)
		if perr != nil {
			return nil, errors.Wrapf(perr, "cannot read point %d of las file %s", i, filePath)
		}
		data := p.PointData()

		v := r3.Vector{X: data.X, Y: data.Y, Z: data.Z}
		if converter != nil {
			v = converter.ConvertCoordinate(v)
		}
		points = append(points, v)
	}

	return points, nil
}

// Returns the bounds declared in the header of a LAS file
func ReadLasBounds(filePath string) (box *geometry.BoundingBox, err error) {
	lf, err := lidario.NewLasFile(filePath, "r")
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open las file %s", filePath)
	}
	defer func() {
		err = multierr.Combine(err, closeLasFile(lf, filePath))
	}()

	h := lf.Header
	return geometry.NewBoundingBox(h.MinX, h.MaxX, h.MinY, h.MaxY, h.MinZ, h.MaxZ), nil
}

func closeLasFile(lf *lidario.LasFile, filePath string) error {
	return errors.Wrapf(lf.Close(), "cannot close las file %s", filePath)
}
