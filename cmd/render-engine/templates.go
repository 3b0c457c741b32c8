package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/engine"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available theme templates",
	Long: `List the templates registered by the site's themes.

With --theme-name, only that theme's templates are shown; otherwise every
installed theme is listed. --filter-value narrows the output to template
names containing the given substring.`,
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

		themeName, _ := cmd.Flags().GetString("theme-name")
		filter, _ := cmd.Flags().GetString("filter-value")
		out := cmd.OutOrStdout()

		if themeName != "" {
			theme, ok := site.Themes()[themeName]
			if !ok {
				fmt.Fprintf(out, "%s not installed\n", themeName)
				return nil
			}
			return printThemeTemplates(out, theme, fmt.Sprintf("Available templates for %s:", themeName), filter)
		}

		fmt.Fprintln(out, "No theme name specified. Listing all installed themes and their templates")
		for _, name := range site.Themes().Names() {
			header := fmt.Sprintf("Showing templates for %s:", name)
			if err := printThemeTemplates(out, site.Themes()[name], header, filter); err != nil {
				return err
			}
		}
		return nil
	},
}

// printThemeTemplates lists one theme's templates after filtering.
func printThemeTemplates(out io.Writer, theme *engine.Theme, header, filter string) error {
	templates, err := theme.ListTemplates()
	if err != nil {
		return fmt.Errorf("listing templates for %s: %w", theme.Prefix, err)
	}
	fmt.Fprintln(out, header)
	for _, tmpl := range engine.FilterTemplates(templates, filter) {
		fmt.Fprintf(out, "  %s\n", tmpl)
	}
	return nil
}

func init() {
	templatesCmd.Flags().String("module-site", "", "the site definition and site name in the format module:site")
	templatesCmd.Flags().StringP("theme-name", "t", "", "theme to search templates in")
	templatesCmd.Flags().StringP("filter-value", "f", "", "filter templates based on names")

	rootCmd.AddCommand(templatesCmd)
}
