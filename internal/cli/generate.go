package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/generate"
	"github.com/matzehuels/graphbin/pkg/pipeline"
)

// generateOpts holds the generator flags of the generate command.
type generateOpts struct {
	nodes       int
	attach      int
	probability float64
	seed        uint64
}

// generateCommand creates the generate command.
//
// Unset generator flags fall back to the [generate] section of the config
// file, then to the built-in defaults (10000 nodes, attach 10, seed 42).
func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts  generateOpts
		flags outputFlags
	)

	cmd := &cobra.Command{
		Use:   "generate <ba|er>",
		Short: "Generate a synthetic graph",
		Long: `Generate a Barabási–Albert (ba) or Erdős–Rényi (er) graph and write it in
binary formats. The same seed always produces the same graph.

Outputs are named BA_<nodes> or ER_<nodes>.

Examples:
  graphbin generate ba                       # data/BA_10000.binedge and .binadj
  graphbin generate ba -n 100000 -k 5        # 100k nodes, 5 edges per new node
  graphbin generate er -n 5000 -p 0.001      # explicit edge probability`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ba", "er"},
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := generate.ParseModel(args[0])
			if err != nil {
				return err
			}
			outs, err := pipeline.ParseOutputs(flags.emit)
			if err != nil {
				return err
			}
			gen := generate.Options{
				Model:       model,
				Nodes:       c.Config.Generate.Nodes,
				Attach:      c.Config.Generate.Attach,
				Probability: opts.probability,
				Seed:        c.Config.Generate.Seed,
			}
			if cmd.Flags().Changed("nodes") {
				gen.Nodes = opts.nodes
			}
			if cmd.Flags().Changed("attach") {
				gen.Attach = opts.attach
			}
			if cmd.Flags().Changed("seed") {
				gen.Seed = opts.seed
			}
			if cmd.Flags().Changed("probability") && opts.probability <= 0 {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
					"--probability must be in (0, 1], got %v; omit it for ln(n)/n", opts.probability)
			}
			return c.runGenerate(cmd.Context(), gen, outs, flags)
		},
	}

	cmd.Flags().IntVarP(&opts.nodes, "nodes", "n", generate.DefaultNodes, "number of nodes")
	cmd.Flags().IntVarP(&opts.attach, "attach", "k", generate.DefaultAttach, "edges added per new node (ba)")
	cmd.Flags().Float64VarP(&opts.probability, "probability", "p", 0, "edge probability in (0, 1] (er, default ln(n)/n)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", generate.DefaultSeed, "random seed")
	addOutputFlags(cmd, &flags, "binedge,binadj")
	return cmd
}

// runGenerate generates the graph and reports the written files.
func (c *CLI) runGenerate(ctx context.Context, gen generate.Options, outs []pipeline.Output, flags outputFlags) error {
	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Generate(ctx, pipeline.GenerateOptions{
		Generator:     gen,
		OutputOptions: c.outputOptions(flags, outs),
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %s", res.Name))

	printResult(res)
	return nil
}
