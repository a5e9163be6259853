package tools

import (
	"flag"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

const (
	CommandBench    = "bench"
	CommandVerify   = "verify"
	CommandGenerate = "generate"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type TreeFlags struct {
	Input          *string    `json:"input"`
	FolderInput    *bool      `json:"folder"`
	Recursive      *bool      `json:"recursive"`
	NumPoints      *int       `json:"num_points"`
	Seed           *int64     `json:"seed"`
	RootCenter     *r3.Vector `json:"root_center"`
	RootHalfExtent *r3.Vector `json:"root_half_extent"`
	FitRoot        *bool      `json:"fit_root"`
	Recenter       *bool      `json:"recenter"`
	MaxDepth       *int       `json:"max_depth"`
	DepthPolicy    *string    `json:"depth_policy"`
	StrictBounds   *bool      `json:"strict_bounds"`
}

type FlagsForCommandBench struct {
	TreeFlags
	QueryMin     *r3.Vector `json:"query_min"`
	QueryMax     *r3.Vector `json:"query_max"`
	Strategy     *string    `json:"strategy"`
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
}

type FlagsForCommandVerify struct {
	TreeFlags
	NumQueries    *int     `json:"num_queries"`
	QueryHalfSize *float64 `json:"query_half_size"`
	Workers       *int     `json:"workers"`
	Help          *bool
}

type FlagsForCommandGenerate struct {
	NumPoints *int       `json:"num_points"`
	Seed      *int64     `json:"seed"`
	Center    *r3.Vector `json:"center"`
	HalfSize  *r3.Vector `json:"half_size"`
	Output    *string    `json:"output"`
	Help      *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v belongs to glog
	version := defineBoolFlag("version", "", false, "Displays the version of octree-bench.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func defineTreeFlags(flagCommand *flag.FlagSet) TreeFlags {
	return TreeFlags{
		Input:          defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input las file/folder. When empty random points are generated."),
		FolderInput:    defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables loading of all las files from input folder. Input must be a folder if specified"),
		Recursive:      defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .las files inside the subfolders"),
		NumPoints:      defineIntFlagCommand(flagCommand, "points", "n", 1000000, "Number of random points to generate when no input is given."),
		Seed:           defineInt64FlagCommand(flagCommand, "seed", "s", 1, "Seed of the random point generator."),
		RootCenter:     defineVectorFlagCommand(flagCommand, "root-center", "c", r3.Vector{}, "Center of the root node, as x,y,z."),
		RootHalfExtent: defineVectorFlagCommand(flagCommand, "root-half-extent", "e", r3.Vector{X: 1, Y: 1, Z: 1}, "Half extent of the root node, as x,y,z. Random points are generated inside the root bounds."),
		FitRoot:        defineBoolFlagCommand(flagCommand, "fit-root", "", false, "Derives the root bounds from the las file headers."),
		Recenter:       defineBoolFlagCommand(flagCommand, "recenter", "", false, "Translates las points so that their bounds are centered on the origin. Implies -fit-root."),
		MaxDepth:       defineIntFlagCommand(flagCommand, "max-depth", "d", 0, "Max depth of the tree leaves. 0 means unbounded subdivision."),
		DepthPolicy:    defineStringFlagCommand(flagCommand, "depth-policy", "", "MERGE", "Outcome of points that cannot be separated within max-depth, can be 'MERGE' or 'REJECT'."),
		StrictBounds:   defineBoolFlagCommand(flagCommand, "strict", "", false, "Rejects points lying outside the root bounds instead of storing them."),
	}
}

func ParseFlagsForCommandBench(args []string) FlagsForCommandBench {
	glog.Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-bench", flag.ExitOnError)

	treeFlags := defineTreeFlags(flagCommand)
	queryMin := defineVectorFlagCommand(flagCommand, "query-min", "", r3.Vector{X: -.05, Y: -.05, Z: -.05}, "Min corner of the query box, as x,y,z.")
	queryMax := defineVectorFlagCommand(flagCommand, "query-max", "", r3.Vector{X: .05, Y: .05, Z: .05}, "Max corner of the query box, as x,y,z.")
	strategy := defineStringFlagCommand(flagCommand, "strategy", "", "BOTH", "Query strategies to time, can be 'OCTREE', 'NAIVE' or 'BOTH'.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandBench{
		TreeFlags:    treeFlags,
		QueryMin:     queryMin,
		QueryMax:     queryMax,
		Strategy:     strategy,
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
	}
}

func ParseFlagsForCommandVerify(args []string) FlagsForCommandVerify {
	glog.Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-verify", flag.ExitOnError)

	treeFlags := defineTreeFlags(flagCommand)
	numQueries := defineIntFlagCommand(flagCommand, "queries", "q", 1000, "Number of random query boxes to check.")
	queryHalfSize := defineFloat64FlagCommand(flagCommand, "query-half-size", "", 0.05, "Half size of the random query boxes.")
	workers := defineIntFlagCommand(flagCommand, "workers", "w", 0, "Number of concurrent verifiers. 0 means one per CPU.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandVerify{
		TreeFlags:     treeFlags,
		NumQueries:    numQueries,
		QueryHalfSize: queryHalfSize,
		Workers:       workers,
		Help:          help,
	}
}

func ParseFlagsForCommandGenerate(args []string) FlagsForCommandGenerate {
	glog.Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-generate", flag.ExitOnError)

	numPoints := defineIntFlagCommand(flagCommand, "points", "n", 1000000, "Number of random points to generate.")
	seed := defineInt64FlagCommand(flagCommand, "seed", "s", 1, "Seed of the random point generator.")
	center := defineVectorFlagCommand(flagCommand, "center", "c", r3.Vector{}, "Center of the generation box, as x,y,z.")
	halfSize := defineVectorFlagCommand(flagCommand, "half-size", "e", r3.Vector{X: 1, Y: 1, Z: 1}, "Half size of the generation box, as x,y,z.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output las file.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandGenerate{
		NumPoints: numPoints,
		Seed:      seed,
		Center:    center,
		HalfSize:  halfSize,
		Output:    output,
		Help:      help,
	}
}

// flag.Value holding a vector written as x,y,z
type vectorValue r3.Vector

func (v *vectorValue) String() string {
	return FormatVector(r3.Vector(*v))
}

func (v *vectorValue) Set(value string) error {
	parsed, err := ParseVector(value)
	if err != nil {
		return err
	}
	*v = vectorValue(parsed)
	return nil
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineInt64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	flagCommand.Int64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineVectorFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue r3.Vector, usage string) *r3.Vector {
	output := vectorValue(defaultValue)
	flagCommand.Var(&output, name, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Var(&output, shortHand, usage+" (shorthand for "+name+")")
	}
	return (*r3.Vector)(&output)
}
