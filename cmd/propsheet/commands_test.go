package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/muurk/propsheet/internal/config"
	"github.com/muurk/propsheet/internal/logging"
	"github.com/muurk/propsheet/internal/schema"
)

const panelSchemaYAML = `properties:
  - itemType: group
    groupIndex: 1
    title: Appearance
  - property: title
    type: string
    required: true
  - property: width
    type: number
    default: 3
    min: 1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenSession(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "panel.yaml", panelSchemaYAML)
	valuesFile := writeFile(t, dir, "values.yaml", "title: Dash\n")

	reg := config.NewRegistry()
	reg.RecordOpened("remembered", schemaFile, valuesFile)

	tests := []struct {
		name       string
		id         string
		schema     string
		values     string
		wantID     string
		wantValues map[string]any
		wantErr    string
	}{
		{
			name:       "id from schema file name",
			schema:     schemaFile,
			values:     valuesFile,
			wantID:     "panel",
			wantValues: map[string]any{"title": "Dash"},
		},
		{
			name:       "paths from registry",
			id:         "remembered",
			wantID:     "remembered",
			wantValues: map[string]any{"title": "Dash"},
		},
		{
			name:   "missing values file starts empty",
			schema: schemaFile,
			values: filepath.Join(dir, "new.yaml"),
			wantID: "panel",
		},
		{
			name:    "unknown id",
			id:      "nobody",
			wantErr: "no schema remembered",
		},
		{
			name:    "nothing given",
			wantErr: "--schema or --id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := openSession(reg, tt.id, tt.schema, tt.values, false)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("openSession() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("openSession() error = %v", err)
			}
			if sess.InstanceID != tt.wantID {
				t.Errorf("InstanceID = %q, want %q", sess.InstanceID, tt.wantID)
			}
			if len(sess.Schema) != 3 {
				t.Errorf("len(Schema) = %d, want 3", len(sess.Schema))
			}
			for k, v := range tt.wantValues {
				if sess.Values[k] != v {
					t.Errorf("Values[%s] = %v, want %v", k, sess.Values[k], v)
				}
			}
		})
	}
}

func TestSessionBuild(t *testing.T) {
	dir := t.TempDir()
	sess, err := openSession(config.NewRegistry(), "", writeFile(t, dir, "panel.yaml", panelSchemaYAML), "", false)
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}

	surface, err := sess.build(nil, 0)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	defer surface.Dispose()

	if surface.Validate() {
		t.Error("Validate() = true with required title missing")
	}
	if got := invalidTitles(surface); strings.Join(got, ",") != "title" {
		t.Errorf("invalidTitles() = %v, want [title]", got)
	}
	if got := surface.Values()["width"]; got != 3 {
		t.Errorf("width = %v, want default 3", got)
	}
}

func TestValuesFormat(t *testing.T) {
	tests := []struct {
		flag    string
		path    string
		want    schema.Format
		wantErr bool
	}{
		{"", "", schema.FormatYAML, false},
		{"", "out.json", schema.FormatJSON, false},
		{"JSON", "out.yaml", schema.FormatJSON, false},
		{"yaml", "", schema.FormatYAML, false},
		{"hcl", "", "", true},
		{"", "out.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"|"+tt.path, func(t *testing.T) {
			got, err := valuesFormat(tt.flag, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("valuesFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("valuesFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")

	if err := writeValues(path, map[string]any{"title": "Dash", "width": 4}, schema.FormatJSON); err != nil {
		t.Fatalf("writeValues() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	values, err := schema.LoadValues(path)
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}
	if values["title"] != "Dash" {
		t.Errorf("title = %v, want Dash", values["title"])
	}
}

func TestLogOutput(t *testing.T) {
	tempLog := filepath.Join(os.TempDir(), "propsheet.log")

	tests := []struct {
		name  string
		cmd   *cobra.Command
		env   string
		flag  string
		file  string
		want  string
		level string
	}{
		{name: "edit silent", cmd: editCmd},
		{name: "edit level from env", cmd: editCmd, env: "debug", level: "debug", want: tempLog},
		{name: "edit level from flag", cmd: editCmd, env: "warn", flag: "info", level: "info", want: tempLog},
		{name: "edit explicit file", cmd: editCmd, env: "debug", file: "/tmp/x.log", level: "debug", want: "/tmp/x.log"},
		{name: "validate stays on stderr", cmd: validateCmd, env: "debug", level: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv(logging.LogLevelEnvVar, tt.env)

			level := resolveLogLevel(tt.flag)
			if level != tt.level {
				t.Errorf("resolveLogLevel(%q) = %q, want %q", tt.flag, level, tt.level)
			}
			if got := logOutput(tt.cmd, level, tt.file); got != tt.want {
				t.Errorf("logOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "panel.yaml", panelSchemaYAML)

	tests := []struct {
		name    string
		values  string
		wantErr bool
		want    string
	}{
		{name: "valid", values: "title: Dash\n", want: "Values are valid"},
		{name: "missing required", values: "width: 2\n", wantErr: true, want: "Validation failed"},
		{name: "below minimum", values: "title: Dash\nwidth: 0\n", wantErr: true, want: "width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valuesFile := writeFile(t, dir, "values.yaml", tt.values)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs([]string{"validate", "--schema", schemaFile, "--values", valuesFile})
			t.Cleanup(func() { rootCmd.SetArgs(nil) })

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}
