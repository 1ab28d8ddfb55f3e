package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/propsheet/internal/config"
	"github.com/muurk/propsheet/internal/editors"
	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/logging"
	"github.com/muurk/propsheet/internal/schema"
	"github.com/muurk/propsheet/internal/tui"
	"github.com/muurk/propsheet/internal/ui"
)

// Command flags
var (
	schemaPath     string
	valuesPath     string
	instanceID     string
	outPath        string
	outputFormat   string
	externalParams bool
	noAnimation    bool
	logFile        string
	logLevel       string
	assumeYes      bool
)

func init() {
	// Common flags for every sheet command (persistent on root)
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Schema file (.yaml, .json or .hcl)")
	rootCmd.PersistentFlags().StringVar(&valuesPath, "values", "", "Values file (.yaml or .json)")
	rootCmd.PersistentFlags().StringVar(&instanceID, "id", "", "Instance ID (defaults to the schema file name)")
	rootCmd.PersistentFlags().BoolVar(&externalParams, "external-params", false, "Offer expression editors on eligible properties")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = initLogging

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(valuesCmd)
}

func initLogging(cmd *cobra.Command, args []string) error {
	level := resolveLogLevel(logLevel)
	return logging.Initialize(level, logOutput(cmd, level, logFile))
}

// resolveLogLevel picks the level from the flag, the environment, then the
// registry preferences.
func resolveLogLevel(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(logging.LogLevelEnvVar); env != "" {
		return env
	}
	if reg, err := config.LoadRegistry(); err == nil {
		return reg.Preferences.LogLevel
	}
	return ""
}

// logOutput returns where logs go. The editor owns the terminal, so it logs to
// a file unless one was given.
func logOutput(cmd *cobra.Command, level, file string) string {
	if file != "" || level == "" || cmd != editCmd {
		return file
	}
	return filepath.Join(os.TempDir(), "propsheet.log")
}

// editCmd launches the interactive editor
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit values interactively",
	Long: `Open the property sheet in a full-screen terminal editor.

Saving writes the resolved values to the values file (or --out). The files
used are remembered per instance ID, so 'propsheet edit --id <id>' reopens
them later.`,
	Example: `  # Edit a values file
  propsheet edit --schema panel.hcl --values panel.yaml

  # Start from defaults and save somewhere new
  propsheet edit --schema panel.hcl --out new-panel.yaml

  # Disable expand/collapse animation
  propsheet edit --id panel --no-animation`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&outPath, "out", "", "Write saved values here instead of the values file")
	editCmd.Flags().BoolVar(&noAnimation, "no-animation", false, "Expand and collapse groups instantly")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("edit needs an interactive terminal; use show, validate or values from scripts")
	}

	reg := loadRegistry()
	sess, err := resolveSession(reg, cmd)
	if err != nil {
		return err
	}

	target := outPath
	if target == "" {
		target = sess.ValuesPath
	}
	if target == "" {
		return fmt.Errorf("nowhere to save: pass --values or --out")
	}
	format, err := schema.FormatFromPath(target)
	if err != nil {
		return err
	}

	budget := reg.Preferences.AnimationBudget()
	if noAnimation {
		budget = 0
	}

	sched := tui.NewScheduler()
	surface, err := sess.build(sched, budget)
	if err != nil {
		return err
	}
	defer surface.Dispose()

	model := tui.NewModel(tui.Config{
		Surface:   surface,
		Scheduler: sched,
		OnSave: func(values map[string]any) error {
			return writeValues(target, values, format)
		},
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	reg.RecordOpened(sess.InstanceID, sess.SchemaPath, target)
	if err := reg.Save(); err != nil {
		logging.Warn("Failed to save config registry", zap.Error(err))
	}

	if m, ok := final.(tui.Model); ok && m.Saved {
		fmt.Println(ui.NewSuccessResult("Values saved",
			ui.Param{Key: "Instance", Value: sess.InstanceID},
			ui.Param{Key: "File", Value: target},
		).Render())
	}
	return nil
}

// showCmd prints the sheet without interaction
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the property sheet",
	Long: `Render the property sheet as it would appear in the editor, with every
group expanded, and exit.`,
	Example: `  propsheet show --schema panel.hcl --values panel.yaml`,
	RunE:    runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, err := resolveSession(loadRegistry(), cmd)
	if err != nil {
		return err
	}

	surface, err := sess.build(nil, 0)
	if err != nil {
		return err
	}
	defer surface.Dispose()

	width := 0
	if ui.IsTerminal(os.Stdout) {
		width = ui.GetTerminalWidth()
	}
	fmt.Fprintln(cmd.OutOrStdout(), tui.Render(surface, width))
	return nil
}

// validateCmd checks a values file
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate values against the schema",
	Long: `Run every editor's validation in sheet order and stop at the first
invalid property. Exits non-zero when a property is invalid.`,
	Example: `  propsheet validate --schema panel.hcl --values panel.yaml`,
	RunE:    runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	sess, err := resolveSession(loadRegistry(), cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.NewHeader("Validate", "propsheet validate",
		ui.Param{Key: "Instance", Value: sess.InstanceID},
		ui.Param{Key: "Schema", Value: sess.SchemaPath},
		ui.Param{Key: "Values", Value: displayPath(sess.ValuesPath)},
	).Render())

	surface, err := sess.build(nil, 0)
	if err != nil {
		fmt.Fprintln(out, ui.NewFailureResult("Schema could not be built", err,
			"Check that every property type is a known editor kind",
		).Render())
		return err
	}
	defer surface.Dispose()

	if surface.Validate() {
		fmt.Fprintln(out, ui.NewSuccessResult("Values are valid",
			ui.Param{Key: "Properties", Value: strconv.Itoa(len(surface.Values()))},
		).Render())
		return nil
	}

	invalid := invalidTitles(surface)
	err = fmt.Errorf("invalid property: %s", strings.Join(invalid, ", "))
	fmt.Fprintln(out, ui.NewFailureResult("Validation failed", err,
		"Edit the value with 'propsheet edit --id "+sess.InstanceID+"'",
	).Render())
	return err
}

// invalidTitles lists the titles of rows marked invalid, in sheet order.
func invalidTitles(s *inspector.Surface) []string {
	var titles []string
	for _, row := range s.Container().Rows() {
		if row.Invalid && row.Kind != inspector.RowGroup {
			titles = append(titles, row.Title)
		}
	}
	if len(titles) == 0 {
		titles = append(titles, "unknown")
	}
	return titles
}

// valuesCmd prints or writes the resolved values
var valuesCmd = &cobra.Command{
	Use:   "values",
	Short: "Print the resolved values",
	Long: `Resolve every property (stored value, editor fallback or schema default)
and print the result, or write it to --out.`,
	Example: `  # Print as YAML
  propsheet values --schema panel.hcl --values panel.yaml

  # Convert to JSON
  propsheet values --schema panel.hcl --values panel.yaml --format json --out panel.json`,
	RunE: runValues,
}

func init() {
	valuesCmd.Flags().StringVar(&outPath, "out", "", "Write values to this file")
	valuesCmd.Flags().StringVar(&outputFormat, "format", "", "Output format (yaml, json); defaults to the --out extension or yaml")
	valuesCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Overwrite --out without asking")
}

func runValues(cmd *cobra.Command, args []string) error {
	sess, err := resolveSession(loadRegistry(), cmd)
	if err != nil {
		return err
	}

	format, err := valuesFormat(outputFormat, outPath)
	if err != nil {
		return err
	}

	surface, err := sess.build(nil, 0)
	if err != nil {
		return err
	}
	defer surface.Dispose()

	values := surface.Values()

	if outPath == "" {
		data, err := schema.EncodeValues(values, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if _, err := os.Stat(outPath); err == nil && !assumeYes {
		if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Overwrite "+outPath+"?", []string{
			fmt.Sprintf("%d properties will be written", len(values)),
		}) {
			return nil
		}
	}

	if err := writeValues(outPath, values, format); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.NewSuccessResult("Values written",
		ui.Param{Key: "File", Value: outPath},
		ui.Param{Key: "Format", Value: string(format)},
	).Render())
	return nil
}

// valuesFormat picks the output encoding from --format, then the output file
// extension, then YAML.
func valuesFormat(flag, path string) (schema.Format, error) {
	if flag != "" {
		switch f := schema.Format(strings.ToLower(flag)); f {
		case schema.FormatYAML, schema.FormatJSON:
			return f, nil
		default:
			return "", fmt.Errorf("unsupported format %q (want yaml or json)", flag)
		}
	}
	if path != "" {
		return schema.FormatFromPath(path)
	}
	return schema.FormatYAML, nil
}

// session is a resolved schema/values pair for one instance.
type session struct {
	InstanceID     string
	SchemaPath     string
	ValuesPath     string
	ExternalParams bool

	Schema []schema.Property
	Values map[string]any
}

// loadRegistry returns the user registry, or a default one if it can't be read.
func loadRegistry() *config.Registry {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Ignoring unreadable config registry", zap.Error(err))
		return config.NewRegistry()
	}
	return reg
}

func resolveSession(reg *config.Registry, cmd *cobra.Command) (*session, error) {
	external := reg.Preferences.ExternalParams
	if cmd.Flags().Changed("external-params") {
		external = externalParams
	}
	return openSession(reg, instanceID, schemaPath, valuesPath, external)
}

// openSession loads the schema and values. Paths missing from the arguments
// are taken from the registry entry for the instance.
func openSession(reg *config.Registry, id, schemaFile, valuesFile string, external bool) (*session, error) {
	if id == "" && schemaFile != "" {
		base := filepath.Base(schemaFile)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if target := reg.GetTarget(id); target != nil && id != "" {
		if schemaFile == "" {
			schemaFile = target.SchemaPath
			if valuesFile == "" {
				valuesFile = target.ValuesPath
			}
		}
	}

	if schemaFile == "" {
		if id != "" {
			return nil, fmt.Errorf("no schema remembered for instance %q; pass --schema", id)
		}
		return nil, fmt.Errorf("--schema or --id is required")
	}

	defs, err := schema.Load(schemaFile)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if valuesFile != "" {
		// A missing values file starts the sheet from defaults
		values, err = schema.LoadValues(valuesFile)
		if err != nil {
			return nil, err
		}
	}

	return &session{
		InstanceID:     id,
		SchemaPath:     schemaFile,
		ValuesPath:     valuesFile,
		ExternalParams: external,
		Schema:         defs,
		Values:         values,
	}, nil
}

// build creates the root surface. A nil scheduler applies expand/collapse
// immediately.
func (s *session) build(sched *tui.Scheduler, budget time.Duration) (*inspector.Surface, error) {
	opts := inspector.Options{
		Registry:                      editors.NewRegistry(),
		EnableExternalParameterEditor: s.ExternalParams,
	}
	if sched != nil {
		opts.Scheduler = sched
		opts.AnimationBudget = budget
	}
	return inspector.New(nil, s.Schema, s.Values, s.InstanceID, opts)
}

// writeValues encodes values and replaces path atomically.
func writeValues(path string, values map[string]any, format schema.Format) error {
	data, err := schema.EncodeValues(values, format)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write values file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save values file: %w", err)
	}
	logging.Info("Values written", zap.String("path", path), zap.Int("properties", len(values)))
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "(defaults only)"
	}
	return p
}
