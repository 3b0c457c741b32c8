package main

import (
	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/cliconfig"
	"github.com/render-engine/render-engine-cli/internal/resolve"
)

var rootCmd = &cobra.Command{
	Use:           "render-engine",
	Short:         "Command-line front end for the render-engine site library",
	Long:          "Build, serve, and scaffold content for a render-engine site.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newResolver loads the persisted config once and returns a resolver bound
// to the command's output stream. Commands that consult defaults call this
// at the top of RunE so the config is read at most once per process.
func newResolver(cmd *cobra.Command) (*resolve.Resolver, *cliconfig.Config) {
	cfg := cliconfig.Load(cliconfig.FileName, cmd.OutOrStdout())
	return &resolve.Resolver{Config: cfg, Out: cmd.OutOrStdout()}, cfg
}
