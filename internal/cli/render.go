package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/pipeline"
	"github.com/matzehuels/graphbin/pkg/render"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format   string // text format for non-binary inputs
	output   string // output path; .dot writes DOT source, anything else SVG
	maxNodes int    // refuse larger graphs
	detailed bool   // add degrees to node labels
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{maxNodes: render.DefaultMaxNodes}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw a small graph as SVG or DOT",
		Long: `Render a graph file with Graphviz for a quick visual check.

The output format follows the -o extension: .dot writes Graphviz source,
anything else SVG. Without -o the SVG is written next to the input.

Examples:
  graphbin render data/BA_100.binadj
  graphbin render sample.txt --format snap -o sample.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "text format: snap or metis (text files only)")
	completeValues(cmd, "format", formatCompletions)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "refuse graphs with more nodes")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node degrees in labels")
	return cmd
}

// renderOutputPath returns where render writes: output if set, otherwise the
// input path with its extension replaced by .svg.
func renderOutputPath(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	var format textfmt.Format
	if opts.format != "" {
		f, err := textfmt.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	}
	g, err := pipeline.Load(ctx, input, format)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	dot, err := render.ToDOT(g, render.Options{MaxNodes: opts.maxNodes, Detailed: opts.detailed})
	if err != nil {
		return err
	}

	outputPath := renderOutputPath(input, opts.output)
	data := []byte(dot)
	if !strings.EqualFold(filepath.Ext(outputPath), ".dot") {
		spinner := newSpinnerWithContext(ctx, "Laying out graph...")
		spinner.Start()
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Layout failed")
			return err
		}
		spinner.Stop()
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write %s", outputPath)
	}
	printSuccess("Rendered %s", input)
	printFile(outputPath, len(data))
	return nil
}
