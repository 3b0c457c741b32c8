package scaffold

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "template only",
			opts: Options{Template: DefaultTemplate},
			want: []string{DefaultTemplate},
		},
		{
			name: "all flags",
			opts: Options{
				Template:   "gh:me/template",
				NoInput:    true,
				OutputDir:  "sites",
				ConfigFile: "cc.yaml",
			},
			want: []string{"gh:me/template", "--no-input", "--output-dir", "sites", "--config-file", "cc.yaml"},
		},
		{
			name: "extra context expands to key=value pairs",
			opts: Options{
				Template:     "gh:me/template",
				ExtraContext: `{"project_name": "My Site", "author": "Jane"}`,
			},
			want: []string{"gh:me/template", "project_name=My Site", "author=Jane"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Args(tc.opts)
			if err != nil {
				t.Fatalf("Args: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Args() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestArgsInvalidExtraContext(t *testing.T) {
	for _, extra := range []string{"{not json", `"a string"`, `[1, 2]`} {
		if _, err := Args(Options{Template: "t", ExtraContext: extra}); err == nil {
			t.Errorf("expected error for extra-context %q", extra)
		}
	}
}

func TestRunMissingGenerator(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()

	stderr := new(bytes.Buffer)
	err := Run(Options{Template: DefaultTemplate}, nil, new(bytes.Buffer), stderr)
	if err != nil {
		t.Fatalf("missing cookiecutter must not be an error: %v", err)
	}
	if !strings.Contains(stderr.String(), "pip install cookiecutter") {
		t.Errorf("expected remediation text, got %q", stderr.String())
	}
}
