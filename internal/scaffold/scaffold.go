// Package scaffold drives the external cookiecutter generator to create a
// new site from a project template.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/tidwall/gjson"
)

// DefaultTemplate is the scaffolding template used when none is given.
const DefaultTemplate = "https://github.com/render-engine/cookiecutter-render-engine-site"

// missingGenerator is the remediation text printed when cookiecutter is not
// installed. The condition is soft: the command still exits zero.
const missingGenerator = "You need to install cookiecutter to use this command. " +
	"Run `pip install cookiecutter` to install it."

// lookPath locates the cookiecutter executable. Package-level so tests can
// override it.
var lookPath = exec.LookPath

// Options describes one scaffolding run.
type Options struct {
	// Template is a local path or git repository URL.
	Template string
	// ExtraContext is a JSON object of template variables, passed through
	// as key=value arguments.
	ExtraContext string
	NoInput      bool
	OutputDir    string
	ConfigFile   string
}

// Args builds the cookiecutter argument list for the options.
func Args(opts Options) ([]string, error) {
	args := []string{opts.Template}
	if opts.NoInput {
		args = append(args, "--no-input")
	}
	if opts.OutputDir != "" {
		args = append(args, "--output-dir", opts.OutputDir)
	}
	if opts.ConfigFile != "" {
		args = append(args, "--config-file", opts.ConfigFile)
	}
	if opts.ExtraContext != "" {
		if !gjson.Valid(opts.ExtraContext) {
			return nil, errors.New("extra-context must be a valid JSON string")
		}
		parsed := gjson.Parse(opts.ExtraContext)
		if !parsed.IsObject() {
			return nil, errors.New("extra-context must be a JSON object")
		}
		parsed.ForEach(func(key, value gjson.Result) bool {
			args = append(args, fmt.Sprintf("%s=%s", key.String(), value.String()))
			return true
		})
	}
	return args, nil
}

// Run invokes cookiecutter with the given options, wiring its stdio to the
// provided streams. A missing cookiecutter executable prints remediation
// text and returns nil so the command exits zero.
func Run(opts Options, stdin io.Reader, stdout, stderr io.Writer) error {
	path, err := lookPath("cookiecutter")
	if err != nil {
		fmt.Fprintln(stderr, missingGenerator)
		return nil
	}

	args, err := Args(opts)
	if err != nil {
		return err
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running cookiecutter: %w", err)
	}
	return nil
}
