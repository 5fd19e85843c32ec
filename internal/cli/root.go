package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/parallelstacks/pkg/buildinfo"
	"github.com/matzehuels/parallelstacks/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "parallelstacks merges call stacks into one tree",
		Long: `parallelstacks merges the call stacks of many threads or goroutines into a
single tree that shares common callers, and renders it as a graph of tables.

Stacks are read from a file or stdin in one of several formats: plain labels,
structured frames, debug-adapter JSON, gdb "thread apply all bt" output, or a
Go goroutine dump.`,
		Version:       buildinfo.ResolvedVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := newLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "global config file (default $XDG_CONFIG_HOME/parallelstacks/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
