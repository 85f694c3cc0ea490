package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/pipeline"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format     string // text format for non-binary files
	verify     bool   // run the degree consistency check
	components bool   // compute connected components
	json       bool   // print the inspection as JSON
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a graph file",
		Long: `Decode a graph file and print its size, degree and connectivity summary.

.binedge and .binadj files are recognised by extension; text files need --format.

Examples:
  graphbin inspect data/roadNet-CA.binadj --verify
  graphbin inspect data/BA_10000.binedge --components --json
  graphbin inspect roadNet-CA.txt --format snap`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "text format: snap or metis (text files only)")
	completeValues(cmd, "format", formatCompletions)
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check reported degrees against neighbor lists")
	cmd.Flags().BoolVar(&opts.components, "components", false, "count connected components")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, path string, opts inspectOpts) error {
	in, err := c.inspect(ctx, path, opts)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}
	printInspection(in)
	return nil
}

func (c *CLI) inspect(ctx context.Context, path string, opts inspectOpts) (*pipeline.Inspection, error) {
	var format textfmt.Format
	if opts.format != "" {
		f, err := textfmt.ParseFormat(opts.format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	return runner.Inspect(ctx, path, pipeline.InspectOptions{
		Format:     format,
		Verify:     opts.verify,
		Components: opts.components,
	})
}

func printInspection(in *pipeline.Inspection) {
	s := in.Summary
	printSuccess("%s", in.Path)
	printKeyValue("Kind", in.Kind)
	printKeyValue("Size", formatBytes(in.Bytes))
	if in.Records > 0 {
		printKeyValue("Records", strconv.Itoa(in.Records))
	}
	printKeyValue("Nodes", strconv.Itoa(s.Nodes))
	printKeyValue("Edges", strconv.Itoa(s.Edges))
	printKeyValue("Self-loops", strconv.Itoa(s.SelfLoops))
	printKeyValue("Max degree", strconv.Itoa(s.MaxDegree))
	if s.Components > 0 {
		printKeyValue("Components", fmt.Sprintf("%d (largest %d)", s.Components, s.LargestComponent))
	}
	if in.Verified {
		printDetail("degrees verified")
	}
}

// formatBytes renders n with a binary unit, e.g. "1.5 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
