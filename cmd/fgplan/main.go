// Command fgplan plans the heaps and barriers of a frame graph description without a device and
// prints the resulting layout as JSON.
//
//	fgplan -in frame.json [-universal] [-merge-reads] [-no-alias] [-strategy MinMemory] [-v]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/backend/null"
	"github.com/vkngwrapper/framegraph/desc"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/memutils/metadata"
	"github.com/vkngwrapper/framegraph/storage"
)

var strategies = map[string]metadata.AllocationStrategy{
	"FirstFit":  0,
	"MinMemory": metadata.AllocationStrategyMinMemory,
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fgplan: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("fgplan", flag.ContinueOnError)
	flags.SetOutput(stderr)

	in := flags.String("in", "-", "frame graph description to plan, or - for stdin")
	universal := flags.Bool("universal", false, "place every resource in a single universal heap")
	mergeReads := flags.Bool("merge-reads", false, "merge consecutive read states of a resource")
	noAlias := flags.Bool("no-alias", false, "give every resource its own memory")
	strategyName := flags.String("strategy", "FirstFit", "placement strategy: FirstFit or MinMemory")
	summary := flags.Bool("summary", false, "leave the per-placement heap maps out of the output")
	verbose := flags.Bool("v", false, "log every planning step to stderr")

	err := flags.Parse(args)
	if err != nil {
		return err
	}

	strategy, ok := strategies[*strategyName]
	if !ok {
		return errors.Newf("unknown strategy %q", *strategyName)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(*in, stdin)
	if err != nil {
		return err
	}

	description, err := desc.Parse(data)
	if err != nil {
		return err
	}

	options := description.Options
	options.UniversalHeaps = options.UniversalHeaps || *universal
	options.MergeReadStates = options.MergeReadStates || *mergeReads
	options.DisableAliasing = options.DisableAliasing || *noAlias

	g := graph.New()
	err = description.Build(g)
	if err != nil {
		return err
	}

	factory := null.NewFactory(logger)
	s, err := storage.New(logger, g, factory, factory, storage.CreateOptions{
		Flags:              options.Flags() | storage.StorageCreateExternallySynchronized,
		AllocationStrategy: strategy,
	})
	if err != nil {
		return err
	}

	err = description.Declare(s.Scheduler())
	if err != nil {
		return err
	}

	err = s.AllocateScheduledResources()
	if err != nil {
		return errors.CombineErrors(err, s.Destroy())
	}

	_, err = fmt.Fprintln(stdout, s.BuildStatsString(!*summary))
	return errors.CombineErrors(err, s.Destroy())
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
