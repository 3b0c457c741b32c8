package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/render-engine/render-engine-cli/internal/engine"
	"github.com/render-engine/render-engine-cli/internal/server"
)

// serveBind is the development server's bind address. Loopback only; the
// server is not meant to be exposed.
const serveBind = "127.0.0.1"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally for development",
	Long: `Render the site and serve it over HTTP at localhost.

This is only for development purposes and should not be used in production.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _ := newResolver(cmd)

		moduleSite, _ := cmd.Flags().GetString("module-site")
		module, siteName, err := r.ModuleSite(moduleSite)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		if port < 0 || port > 65534 {
			return fmt.Errorf("port must be between 0 and 65534 (got %d)", port)
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

		srv := server.NewServer(server.Options{
			Port:       port,
			Bind:       serveBind,
			OutputDir:  site.OutputPath(),
			LiveReload: true,
		})

		reload, _ := cmd.Flags().GetBool("reload")
		if reload {
			ignore := server.DefaultIgnore(site.OutputPath())
			watcher := server.NewWatcher(site.ContentPaths(), 100*time.Millisecond, ignore, func() {
				log.Println("Change detected, rebuilding...")
				if err := site.Render(); err != nil {
					log.Printf("Rebuild failed: %v", err)
					return
				}
				srv.NotifyReload()
			})
			srv.SetWatcher(watcher)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("module-site", "", "the site definition and site name in the format module:site")
	serveCmd.Flags().BoolP("clean", "c", false, "clean the output folder prior to building")
	serveCmd.Flags().BoolP("reload", "r", false, "rebuild on changes to the site")
	serveCmd.Flags().IntP("port", "p", 8000, "port to serve on")

	rootCmd.AddCommand(serveCmd)
}
