package pkg

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/internal/metrics"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

type BenchRunner struct {
	fileFinder              tools.FileFinder
	algorithmManagerFactory algorithm_manager.Factory
}

// Outcome of a bench run. Timings are in seconds, fields of a strategy that did not run are zero.
type BenchReport struct {
	RunID         string `json:"run_id"`
	Points        int    `json:"points"`
	Stored        int64  `json:"stored"`
	Merged        int64  `json:"merged"`
	Depth         int    `json:"depth"`
	Nodes         int    `json:"nodes"`
	InsertSeconds string `json:"insert_seconds"`
	NaiveFound    int    `json:"naive_found"`
	NaiveSeconds  string `json:"naive_seconds"`
	OctreeFound   int    `json:"octree_found"`
	OctreeSeconds string `json:"octree_seconds"`
	PointTests    int    `json:"point_tests"`
	NodeVisits    int    `json:"node_visits"`
	Speedup       string `json:"speedup,omitempty"`
}

func NewBenchRunner(fileFinder tools.FileFinder, algorithmManagerFactory algorithm_manager.Factory) bench.IRunner {
	return &BenchRunner{
		fileFinder:              fileFinder,
		algorithmManagerFactory: algorithmManagerFactory,
	}
}

func (runner *BenchRunner) Run(opts *bench.BenchOptions) error {
	_, err := runner.RunBench(opts)
	return err
}

// Builds the tree and the linear index over the same points, then times the query box against
// the selected strategies
func (runner *BenchRunner) RunBench(opts *bench.BenchOptions) (*BenchReport, error) {
	report := &BenchReport{RunID: uuid.New().String()}
	glog.Infof("bench run %s", report.RunID)

	runOpts, files, err := prepareOptions(runner.fileFinder, opts)
	if err != nil {
		return nil, err
	}
	algorithmManager := runner.algorithmManagerFactory(runOpts)

	points, err := loadPoints(algorithmManager, runOpts, files)
	if err != nil {
		return nil, err
	}
	report.Points = len(points)

	start := time.Now()
	tree, linear, err := buildIndexes(algorithmManager, points)
	if err != nil {
		return nil, err
	}
	report.InsertSeconds = formatSeconds(time.Since(start))
	report.Stored = tree.NumberOfPoints()
	report.Merged = tree.MergedPoints()
	report.Depth = tree.Depth()
	report.Nodes = tree.NodeCount()
	tools.LogOutput(fmt.Sprintf("Inserted %d points to octree in %s sec. (depth %d, %d nodes)", report.Stored, report.InsertSeconds, report.Depth, report.Nodes))
	if dropped := int64(report.Points) - report.Stored; dropped > 0 {
		tools.LogOutput(fmt.Sprintf("%d points not stored, %d of them merged", dropped, report.Merged))
	}

	queryMin, queryMax := runOpts.QueryMin, runOpts.QueryMax
	var naiveElapsed, octreeElapsed time.Duration

	if runOpts.Strategy.RunsNaive() {
		start = time.Now()
		report.NaiveFound = linear.CountRange(queryMin, queryMax)
		naiveElapsed = time.Since(start)
		metrics.InstrumentQuery("naive", start, report.NaiveFound)

		report.NaiveSeconds = formatSeconds(naiveElapsed)
		tools.LogOutput(fmt.Sprintf("testNaive found %d points in %s sec.", report.NaiveFound, report.NaiveSeconds))
	}

	if runOpts.Strategy.RunsOctree() {
		start = time.Now()
		results, stats := tree.QueryRangeStats(queryMin, queryMax)
		octreeElapsed = time.Since(start)
		metrics.InstrumentQuery("octree", start, len(results))

		report.OctreeFound = len(results)
		report.OctreeSeconds = formatSeconds(octreeElapsed)
		report.PointTests = stats.PointTests
		report.NodeVisits = stats.NodeVisits
		tools.LogOutput(fmt.Sprintf("testOctree found %d points in %s sec. (%d point tests, %d node visits)", report.OctreeFound, report.OctreeSeconds, report.PointTests, report.NodeVisits))
	}

	if runOpts.Strategy == bench.Both && octreeElapsed > 0 {
		report.Speedup = decimal.NewFromFloat(naiveElapsed.Seconds()).
			Div(decimal.NewFromFloat(octreeElapsed.Seconds())).
			StringFixed(2)
		tools.LogOutput(fmt.Sprintf("Octree speedup: x%s", report.Speedup))
	}

	glog.Infoln(tools.FmtJSONString(report))
	logMetrics()

	return report, nil
}

func formatSeconds(d time.Duration) string {
	return decimal.NewFromFloat(d.Seconds()).StringFixed(5)
}

func logMetrics() {
	samples, err := metrics.Snapshot()
	if err != nil {
		glog.Warningf("cannot gather metrics: %v", err)
		return
	}
	glog.Infoln(tools.FmtJSONString(samples))
}
