package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/pipeline"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "convert <format> <input>",
		Short: "Convert a text graph to binary formats",
		Long: `Convert a SNAP edge list or METIS adjacency list to .binedge and/or .binadj.

Formats: snap (or edgelist), metis (or adjlist).
Outputs are named after the input file and written to the output directory.

Examples:
  graphbin convert snap roadNet-CA.txt                     # data/roadNet-CA.binedge
  graphbin convert metis road.graph --emit binedge,binadj  # both binary formats
  graphbin convert snap web.txt -o out --verify            # check degrees first`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"snap", "edgelist", "metis", "adjlist"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := textfmt.ParseFormat(args[0])
			if err != nil {
				return err
			}
			outs, err := pipeline.ParseOutputs(flags.emit)
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), format, args[1], outs, flags)
		},
	}

	addOutputFlags(cmd, &flags, "binedge")
	return cmd
}

// addOutputFlags registers the flags shared by convert and generate.
func addOutputFlags(cmd *cobra.Command, f *outputFlags, defaultEmit string) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "output directory (default from config, \"data\")")
	cmd.Flags().StringSliceVar(&f.emit, "emit", nil, "outputs: binedge, binadj, adjlist, edgelist (default "+defaultEmit+")")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check reported degrees against neighbor lists before encoding")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached outputs")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching entirely")
	completeValues(cmd, "emit", emitCompletions)
}

// runConvert converts input and reports the written files.
func (c *CLI) runConvert(ctx context.Context, format textfmt.Format, input string, outs []pipeline.Output, flags outputFlags) error {
	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Convert(ctx, pipeline.Options{
		Format:        format,
		Input:         input,
		OutputOptions: c.outputOptions(flags, outs),
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", input))

	printResult(res)
	return nil
}

var outputOrder = []pipeline.Output{
	pipeline.OutputBinEdge,
	pipeline.OutputBinAdj,
	pipeline.OutputAdjList,
	pipeline.OutputEdgeList,
}

// printResult prints the files of a pipeline run in output order.
func printResult(res *pipeline.Result) {
	printSuccess("%s ready", res.Name)
	var first string
	for _, out := range outputOrder {
		path, ok := res.Outputs[out]
		if !ok {
			continue
		}
		if first == "" {
			first = path
		}
		printFile(path, res.Sizes[out])
	}
	printStats(res.Summary.Nodes, res.Summary.Edges, res.CacheHit)
	if first != "" {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+first)
	}
}
