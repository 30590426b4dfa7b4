// Package commands implements the CLI commands for the analog compiler engine.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/benjaminforras/analog/internal/app"
)

// CLI represents the command line interface for analog.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance with the given components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "analog",
		Short:         "Incremental compiler engine for annotated class modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli := &CLI{
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(cli.newBuildCmd())
	rootCmd.AddCommand(cli.newWatchCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput directs command output and errors to the given writers.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
