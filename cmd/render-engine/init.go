package main

import (
	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new site from a scaffolding template",
	Long: `Create a new site configuration from a cookiecutter template.

The template can be a local path or a git repository. Extra context is
passed through to the template as a JSON string.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetString("template")
		extraContext, _ := cmd.Flags().GetString("extra-context")
		noInput, _ := cmd.Flags().GetBool("no-input")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		configFile, _ := cmd.Flags().GetString("config-file")

		opts := scaffold.Options{
			Template:     template,
			ExtraContext: extraContext,
			NoInput:      noInput,
			OutputDir:    outputDir,
			ConfigFile:   configFile,
		}
		return scaffold.Run(opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	initCmd.Flags().StringP("template", "t", scaffold.DefaultTemplate, "template to use for creating a new site")
	initCmd.Flags().StringP("extra-context", "e", "", "extra context to pass to the template, as a JSON string")
	initCmd.Flags().Bool("no-input", false, "do not prompt for parameters")
	initCmd.Flags().StringP("output-dir", "o", ".", "directory to create the site in")
	initCmd.Flags().StringP("config-file", "c", "", "extra config file to pass to the generator")

	rootCmd.AddCommand(initCmd)
}
