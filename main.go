/*
 * This file is part of the Point Octree benchmark distribution (octree-bench).
 * Derived from the Go Cesium Point Cloud Tiler, Copyright (c) 2019 Massimo Federico Bonfigli.
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/ecopia-map/point_octree/internal/bench"
	"github.com/ecopia-map/point_octree/pkg"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

const VERSION = "1.0.0"

const logo = `
            _                     _
  ___   ___| |_ _ __ ___  ___    | |__   ___ _ __   ___| |__
 / _ \ / __| __| '__/ _ \/ _ \   | '_ \ / _ \ '_ \ / __| '_ \
| (_) | (__| |_| | |  __/  __/   | |_) |  __/ | | | (__| | | |
 \___/ \___|\__|_|  \___|\___|   |_.__/ \___|_| |_|\___|_| |_|
  A point octree range query benchmark written in golang
  Copyright YYYY
`

func main() {
	flagsGlobal := tools.ParseFlagsGlobal()
	logToConsole()
	defer glog.Flush()

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Fatal("Please specify a subcommand [bench|verify|generate].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandBench:
		mainCommandBench(args)
	case tools.CommandVerify:
		mainCommandVerify(args)
	case tools.CommandGenerate:
		mainCommandGenerate(args)
	default:
		glog.Fatalf("Unrecognized command [%q]. Command must be one of [bench|verify|generate]", cmd)
	}
}

// Put the flags shared by bench and verify inside a BenchOptions struct
func treeOptionsFromFlags(treeFlags tools.TreeFlags, command string) bench.BenchOptions {
	return bench.BenchOptions{
		Input:          tools.ResolvePath(*treeFlags.Input),
		FolderInput:    *treeFlags.FolderInput,
		Recursive:      *treeFlags.Recursive,
		NumPoints:      *treeFlags.NumPoints,
		Seed:           *treeFlags.Seed,
		RootCenter:     *treeFlags.RootCenter,
		RootHalfExtent: *treeFlags.RootHalfExtent,
		FitRootToInput: *treeFlags.FitRoot,
		Recenter:       *treeFlags.Recenter,
		MaxDepth:       *treeFlags.MaxDepth,
		DepthPolicy:    bench.ParseDepthPolicy(*treeFlags.DepthPolicy),
		StrictBounds:   *treeFlags.StrictBounds,
		Command:        command,
	}
}

func mainCommandBench(args []string) {
	flags := tools.ParseFlagsForCommandBench(args)

	if *flags.Help {
		showHelp()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts := treeOptionsFromFlags(flags.TreeFlags, tools.CommandBench)
	opts.QueryMin = *flags.QueryMin
	opts.QueryMax = *flags.QueryMax
	opts.Strategy = bench.ParseStrategy(*flags.Strategy)

	if msg, res := validateOptionsForCommandBench(&opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "bench")
	err := pkg.NewBenchRunner(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager).Run(&opts)
	if err != nil {
		glog.Fatal("Error while benchmarking: ", err)
	}
}

func mainCommandVerify(args []string) {
	flags := tools.ParseFlagsForCommandVerify(args)

	if *flags.Help {
		showHelp()
		return
	}

	opts := treeOptionsFromFlags(flags.TreeFlags, tools.CommandVerify)
	opts.NumQueries = *flags.NumQueries
	opts.QueryHalfSize = *flags.QueryHalfSize
	opts.Workers = *flags.Workers

	if msg, res := validateOptionsForCommandVerify(&opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}

	err := pkg.NewVerifyRunner(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager).Run(&opts)
	if err != nil {
		glog.Fatal("Error while verifying: ", err)
	}
	tools.LogOutput("Verification Completed")
}

func mainCommandGenerate(args []string) {
	flags := tools.ParseFlagsForCommandGenerate(args)

	if *flags.Help {
		showHelp()
		return
	}

	opts := bench.BenchOptions{
		NumPoints:      *flags.NumPoints,
		Seed:           *flags.Seed,
		RootCenter:     *flags.Center,
		RootHalfExtent: *flags.HalfSize,
		Command:        tools.CommandGenerate,
		BenchGenerateOptions: &bench.BenchGenerateOptions{
			Output: tools.ResolvePath(*flags.Output),
		},
	}

	if msg, res := validateOptionsForCommandGenerate(&opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}

	err := pkg.NewGenerateRunner(std_algorithm_manager.NewAlgorithmManager).Run(&opts)
	if err != nil {
		glog.Fatal("Error while generating: ", err)
	}
}

// Validates the options shared by the commands building a tree, checking that the input exists
// and that the root bounds are usable
func validateTreeOptions(opts *bench.BenchOptions) (string, bool) {
	if opts.Input != "" {
		if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
			return "Input file/folder not found", false
		}
	} else if opts.NumPoints <= 0 {
		return "points must be positive when no input is given", false
	}

	if opts.Input == "" || (!opts.FitRootToInput && !opts.Recenter) {
		h := opts.RootHalfExtent
		if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
			return "root-half-extent must be positive on every axis", false
		}
	}

	if opts.MaxDepth < 0 {
		return "max-depth cannot be negative", false
	}

	if opts.DepthPolicy == "" {
		return "depth-policy should be either MERGE or REJECT", false
	}

	return "", true
}

func validateOptionsForCommandBench(opts *bench.BenchOptions) (string, bool) {
	if msg, res := validateTreeOptions(opts); !res {
		return msg, res
	}

	if opts.Strategy == "" {
		return "strategy should be one of OCTREE, NAIVE or BOTH", false
	}

	if opts.QueryMin.X > opts.QueryMax.X || opts.QueryMin.Y > opts.QueryMax.Y || opts.QueryMin.Z > opts.QueryMax.Z {
		return "query-min cannot be greater than query-max", false
	}

	return "", true
}

func validateOptionsForCommandVerify(opts *bench.BenchOptions) (string, bool) {
	if msg, res := validateTreeOptions(opts); !res {
		return msg, res
	}

	if opts.NumQueries <= 0 {
		return "queries must be positive", false
	}

	if opts.QueryHalfSize < 0 {
		return "query-half-size cannot be negative", false
	}

	return "", true
}

func validateOptionsForCommandGenerate(opts *bench.BenchOptions) (string, bool) {
	if opts.BenchGenerateOptions.Output == "" {
		return "output las file not specified", false
	}

	if opts.NumPoints <= 0 {
		return "points must be positive", false
	}

	h := opts.RootHalfExtent
	if h.X < 0 || h.Y < 0 || h.Z < 0 {
		return "half-size cannot be negative", false
	}

	return "", true
}

// Progress messages are written through glog only, echo them on stderr unless the glog flags
// say otherwise
func logToConsole() {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "alsologtostderr" || f.Name == "logtostderr" {
			explicit = true
		}
	})
	if !explicit {
		_ = flag.Set("alsologtostderr", "true")
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("octree-bench builds a point octree and compares its range queries with a linear scan")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: octree-bench [global flags] <bench|verify|generate> [command flags]")
	fmt.Println("Run a command with -help to list its flags.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
