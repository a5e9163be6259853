package io

import (
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ecopia-map/point_octree/internal/metrics"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// Runs every submitted query against the index under test and a reference index and reports
// the queries whose results differ. Both indexes must not be modified while consuming.
type StandardConsumer struct {
	index     octree.RangeQuerier
	reference octree.RangeQuerier
	checked   int
}

func NewStandardConsumer(index octree.RangeQuerier, reference octree.RangeQuerier) *StandardConsumer {
	return &StandardConsumer{
		index:     index,
		reference: reference,
	}
}

// Continually consumes WorkUnits until the work channel is closed. Mismatches do not stop the
// consumer: they are combined and submitted as a single error to the error channel on exit,
// so the channel needs room for one error per consumer.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	var err error
	for work := range workchan {
		err = multierr.Append(err, c.doWork(work))
		c.checked++
	}

	if err != nil {
		errchan <- err
	}

	waitGroup.Done()
}

func (c *StandardConsumer) Checked() int {
	return c.checked
}

func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	min, max := workUnit.Box.Min(), workUnit.Box.Max()

	start := time.Now()
	got := c.index.QueryRange(min, max)
	metrics.InstrumentQuery("octree", start, len(got))

	start = time.Now()
	want := c.reference.QueryRange(min, max)
	metrics.InstrumentQuery("naive", start, len(want))

	if !sameMultiset(got, want) {
		metrics.InstrumentVerifyMismatch()
		return errors.Errorf(
			"query %d [(%g, %g, %g), (%g, %g, %g)]: octree returned %d points, linear scan %d",
			workUnit.Index, min.X, min.Y, min.Z, max.X, max.Y, max.Z, len(got), len(want),
		)
	}
	return nil
}

func sameMultiset(a, b []r3.Vector) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[r3.Vector]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}
