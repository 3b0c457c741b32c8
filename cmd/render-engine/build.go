package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/engine"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site",
	Long:  "Resolve the site from its module:site reference and render it to the output folder.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _ := newResolver(cmd)

		moduleSite, _ := cmd.Flags().GetString("module-site")
		module, siteName, err := r.ModuleSite(moduleSite)
		if err != nil {
			return err
		}

		site, err := engine.Load(module, siteName)
		if err != nil {
			return err
		}

		clean, _ := cmd.Flags().GetBool("clean")
		if clean {
			if err := os.RemoveAll(site.OutputPath()); err != nil {
				return fmt.Errorf("cleaning output folder: %w", err)
			}
		}

		if err := site.Render(); err != nil {
			return fmt.Errorf("rendering site: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Site rendered to %s\n", site.OutputPath())
		return nil
	},
}

func init() {
	buildCmd.Flags().String("module-site", "", "the site definition and site name in the format module:site")
	buildCmd.Flags().BoolP("clean", "c", false, "clean the output folder prior to building")

	rootCmd.AddCommand(buildCmd)
}
