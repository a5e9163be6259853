package io

import (
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
)

// Writes the points to a new LAS file using point format 0
func WriteLasPoints(filePath string, points []r3.Vector) (err error) {
	lf, err := lidario.NewLasFile(filePath, "w")
	if err != nil {
		return
	}
	defer func() {
		cerr := lf.Close()
		err = multierr.Combine(err, cerr)
	}()

	if err = lf.AddHeader(lidario.LasHeader{
		PointFormatID: 0,
	}); err != nil {
		return
	}

	for _, p := range points {
		pr0 := &lidario.PointRecord0{
			X: p.X,
			Y: p.Y,
			Z: p.Z,
			BitField: lidario.PointBitField{
				Value: (1) | (1 << 3),
			},
			ClassBitField: lidario.ClassificationBitField{
				Value: 0,
			},
			PointSourceID: 1,
		}
		if err = lf.AddLasPoint(pr0); err != nil {
			return
		}
	}

	return
}
