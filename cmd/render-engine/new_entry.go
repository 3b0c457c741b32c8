package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/engine"
	"github.com/render-engine/render-engine-cli/internal/entry"
	"github.com/render-engine/render-engine-cli/internal/resolve"
)

var newEntryCmd = &cobra.Command{
	Use:   "new-entry",
	Short: "Create a new collection entry",
	Long: `Create a new entry in a collection's content path.

The entry's front-matter is assembled from the collection's default
metadata and any --args key/value pairs, and the file is opened in an
editor afterwards unless --editor none is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, cfg := newResolver(cmd)

		raw := resolve.RawEntryArgs{}
		raw.ModuleSite, _ = cmd.Flags().GetString("module-site")
		raw.Collection, _ = cmd.Flags().GetString("collection")
		raw.Content, _ = cmd.Flags().GetString("content")
		raw.ContentFile, _ = cmd.Flags().GetString("content-file")
		raw.Title, _ = cmd.Flags().GetString("title")
		raw.Slug, _ = cmd.Flags().GetString("slug")
		raw.Filename, _ = cmd.Flags().GetString("filename")
		raw.Editor, _ = cmd.Flags().GetString("editor")
		raw.IncludeDate, _ = cmd.Flags().GetBool("include-date")
		raw.Args, _ = cmd.Flags().GetStringArray("args")

		inv, err := r.EntryArgs(raw, cmd.InOrStdin())
		if err != nil {
			return err
		}

		site, err := engine.Load(inv.Module, inv.SiteName)
		if err != nil {
			return err
		}

		coll, ok := site.FindCollection(inv.Collection)
		if !ok {
			return fmt.Errorf("unknown collection: %s", inv.Collection)
		}

		text, err := entry.Build(inv.Spec, coll)
		if err != nil {
			return err
		}

		path := filepath.Join(coll.ContentPath, inv.Filename)
		if _, err := os.Stat(path); err == nil {
			ok, err := confirm(fmt.Sprintf("%s already exists. Overwrite?", path), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted; the existing entry was left untouched.")
				return nil
			}
		}

		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "New %s entry created at %q\n", inv.Collection, path)

		if editor := inv.Editor.Resolve(cfg); editor != "" {
			if err := launchEditor(editor, path); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: editor exited with error: %v\n", err)
			}
		}
		return nil
	},
}

// confirm prompts for a yes/no answer, defaulting to no.
func confirm(prompt string, in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// launchEditor opens the file in the given editor, attached to the
// terminal.
func launchEditor(editor, path string) error {
	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	newEntryCmd.Flags().String("module-site", "", "the site definition and site name in the format module:site")
	newEntryCmd.Flags().String("collection", "", "the name of the collection to add the entry to")
	newEntryCmd.Flags().String("content", "", "the content to include in the entry; mutually exclusive with --content-file")
	newEntryCmd.Flags().String("content-file", "", "path to a file containing the content, or '-' to read it interactively; mutually exclusive with --content")
	newEntryCmd.Flags().StringP("title", "t", "", "title for the new entry")
	newEntryCmd.Flags().StringP("slug", "s", "", "slug for the new entry")
	newEntryCmd.Flags().BoolP("include-date", "d", false, "include today's date in the entry metadata")
	newEntryCmd.Flags().StringArrayP("args", "a", nil, "key/value attrs to include in the entry, in the format key=value or key:value")
	newEntryCmd.Flags().String("editor", "default", "editor to open the entry with: 'default', 'none', or an executable name")
	newEntryCmd.Flags().StringP("filename", "f", "", "the filename to save the entry as, within the collection's content path")

	rootCmd.AddCommand(newEntryCmd)
}
