package pkg

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

type VerifyRunner struct {
	fileFinder              tools.FileFinder
	algorithmManagerFactory algorithm_manager.Factory
}

func NewVerifyRunner(fileFinder tools.FileFinder, algorithmManagerFactory algorithm_manager.Factory) bench.IRunner {
	return &VerifyRunner{
		fileFinder:              fileFinder,
		algorithmManagerFactory: algorithmManagerFactory,
	}
}

// Checks the octree against the linear scan on random query boxes spread over the root bounds.
// Queries run concurrently, the indexes are no longer modified once built.
func (runner *VerifyRunner) Run(opts *bench.BenchOptions) error {
	runOpts, files, err := prepareOptions(runner.fileFinder, opts)
	if err != nil {
		return err
	}
	algorithmManager := runner.algorithmManagerFactory(runOpts)

	points, err := loadPoints(algorithmManager, runOpts, files)
	if err != nil {
		return err
	}
	tree, linear, err := buildIndexes(algorithmManager, points)
	if err != nil {
		return err
	}
	tools.LogOutput(fmt.Sprintf("Inserted %d points to octree", tree.NumberOfPoints()))

	numConsumers := runOpts.Workers
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// each consumer submits at most one error, on exit
	errorChannel := make(chan error, numConsumers)

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	boxGenerator := data.NewPointGenerator(runOpts.Seed+1, tree.RootNode().GetBoundingBox())
	producer := io.NewStandardProducer(boxGenerator, runOpts.NumQueries, runOpts.QueryHalfSize)
	go producer.Produce(workChannel, &waitGroup)

	consumers := make([]*io.StandardConsumer, 0, numConsumers)
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(tree, linear)
		consumers = append(consumers, consumer)
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(errorChannel)

	checked := 0
	for _, consumer := range consumers {
		checked += consumer.Checked()
	}

	withErrors := false
	for err := range errorChannel {
		glog.Errorln(err)
		withErrors = true
	}
	logMetrics()
	if withErrors {
		return errors.Errorf("octree and linear scan disagree on some of the %d queries. Check console output for details", checked)
	}

	tools.LogOutput(fmt.Sprintf("Verified %d queries with %d workers", checked, numConsumers))
	return nil
}
