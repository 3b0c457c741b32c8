// Package cliconfig loads persisted CLI defaults from the project-local
// render-engine.toml file.
package cliconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

// FileName is the fixed project-relative location of the config file.
const FileName = "render-engine.toml"

// editorEnvVar supplies the editor when the config file names none.
const editorEnvVar = "EDITOR"

// Config holds the optional defaults persisted in the [cli] section of the
// config file. A missing or malformed file yields an empty Config; the
// process never aborts over it.
type Config struct {
	Module     string
	Site       string
	Collection string
	Editor     string

	// Found reports whether a parseable config file was read.
	Found bool
}

// Load reads the config file at path. It never fails: an absent file yields
// empty defaults, and a malformed file is reported on out and likewise
// yields empty defaults. A status line is written to out in every case.
// Loading is a pure function of the file and environment, so repeated calls
// with an unchanged file produce equal configs.
func Load(path string, out io.Writer) *Config {
	cfg := &Config{}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	err := v.ReadInConfig()
	switch {
	case err == nil:
		fmt.Fprintf(out, "Config loaded from %s\n", path)
		cfg.Found = true
		cfg.Module = v.GetString("cli.module")
		cfg.Site = v.GetString("cli.site")
		cfg.Collection = v.GetString("cli.collection")
		cfg.Editor = v.GetString("cli.editor")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(out, "No config file found at %s\n", path)
	default:
		fmt.Fprintf(out, "Encountered an error while parsing %s: %v\n", path, err)
	}

	if cfg.Editor == "" {
		cfg.Editor = os.Getenv(editorEnvVar)
	}

	return cfg
}

// ModuleSite combines the persisted module and site values into a
// "module:site" reference, or "" when either half is missing.
func (c *Config) ModuleSite() string {
	if c.Module == "" || c.Site == "" {
		return ""
	}
	return c.Module + ":" + c.Site
}
