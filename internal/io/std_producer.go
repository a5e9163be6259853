package io

import (
	"sync"

	"github.com/golang/geo/r3"

	"github.com/ecopia-map/point_octree/internal/data"
)

type StandardProducer struct {
	generator  *data.PointGenerator
	numQueries int
	halfSize   r3.Vector
}

// Builds a producer of numQueries cubic query boxes with the given half size, centered on
// points drawn from the generator
func NewStandardProducer(generator *data.PointGenerator, numQueries int, halfSize float64) *StandardProducer {
	return &StandardProducer{
		generator:  generator,
		numQueries: numQueries,
		halfSize:   r3.Vector{X: halfSize, Y: halfSize, Z: halfSize},
	}
}

// Submits WorkUnits to the provided work channel. Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup) {
	for i := 0; i < p.numQueries; i++ {
		work <- &WorkUnit{
			Index: i,
			Box:   p.generator.NextBox(p.halfSize),
		}
	}
	close(work)
	wg.Done()
}
