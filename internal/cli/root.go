package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the root command sets the log level from
// --verbose, loads the configuration file and attaches the logger to the
// command context. With --verbose, pipeline and cache events are logged at
// debug level as well.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphbin converts graph datasets to compact binary formats",
		Long: `graphbin converts SNAP edge lists and METIS adjacency lists into the
.binedge and .binadj binary formats, and generates synthetic
Barabási–Albert and Erdős–Rényi graphs for benchmarking.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)

			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.verbose {
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphbin/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
