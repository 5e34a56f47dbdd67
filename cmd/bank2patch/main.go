// Package main is the entry point for the bank2patch CLI
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bank2patch/pkg/api"
	"bank2patch/pkg/bank"
	"bank2patch/pkg/decode"
	"bank2patch/pkg/patch"
	"bank2patch/pkg/preview"
	"bank2patch/pkg/project"
	"bank2patch/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Directory flags get one variable per command: pflag writes the default into
// the bound variable at registration time, so sharing one variable across
// commands would leave only the last-registered default in effect.
var (
	importDir     string
	effectsDir    string
	tuiDir        string
	outputFile    string
	schemaName    string
	ampReleaseMax float64
	verbose       bool
	serverPort    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bank2patch",
	Short: "Convert a sound-bank CSV into patch documents",
	Long: `bank2patch converts a spreadsheet-style sound bank (one preset per CSV row,
columns addressed by fixed position) into nested YAML patch documents for the
sound engine, plus the companion effect and automation demo projects.

Examples:
  bank2patch import patches.csv -o assets/patches
  bank2patch import patches.csv --schema v1
  bank2patch show patches.csv cello
  bank2patch preview patches.csv cello -o cello.mid
  bank2patch effects -o effect-projects
  bank2patch kitchen-sink -o kitchen-sink.yaml
  bank2patch tui
  bank2patch serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var importCmd = &cobra.Command{
	Use:   "import <bank.csv>",
	Short: "Convert every bank row into a patch file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var showCmd = &cobra.Command{
	Use:   "show <bank.csv> <preset-name>",
	Short: "Print one decoded patch document",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

var previewCmd = &cobra.Command{
	Use:   "preview <bank.csv> <preset-name>",
	Short: "Render an audition MIDI file for one preset",
	Args:  cobra.ExactArgs(2),
	RunE:  runPreview,
}

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "Generate the effect demo project documents",
	RunE:  runEffects,
}

var kitchenSinkCmd = &cobra.Command{
	Use:   "kitchen-sink",
	Short: "Generate the all-effects automation project",
	RunE:  runKitchenSink,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&schemaName, "schema", "s", decode.SchemaLatest.String(), "Bank mapping revision (v1, v2, v3)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-patch progress")

	// import command
	importCmd.Flags().StringVarP(&importDir, "output", "o", "patches", "Output directory for patch files")
	importCmd.Flags().Float64Var(&ampReleaseMax, "amp-release-max", -1, "Ceiling for an amp-release \"max\" cell; negative leaves it unresolved")

	// show command has only the global flags

	// preview command
	previewCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path (default <preset-name>.mid)")

	// effects command
	effectsCmd.Flags().StringVarP(&effectsDir, "output", "o", "effect-projects", "Output directory for project files")

	// kitchen-sink command
	kitchenSinkCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default stdout)")

	// tui command
	tuiCmd.Flags().StringVarP(&tuiDir, "output", "o", "patches", "Output directory for imported patch files")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(effectsCmd)
	rootCmd.AddCommand(kitchenSinkCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getSchema() (decode.Schema, error) {
	return decode.ParseSchema(schemaName)
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runImport(cmd *cobra.Command, args []string) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	assembler := bank.NewAssembler(schema).WithLogger(logger)
	if ampReleaseMax >= 0 {
		assembler.WithAmpReleaseMax(ampReleaseMax)
	}

	writer, err := patch.NewWriter(importDir)
	if err != nil {
		return err
	}

	fmt.Printf("Importing %s (schema %s) -> %s\n", args[0], schema, importDir)
	stats, err := bank.NewImporter(assembler, writer, logger).ImportFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d patches (%d rows skipped)\n", stats.Imported, stats.Skipped)
	if stats.DepthConflicts > 0 {
		fmt.Printf("Warning: %d rows had both depth percentage and cents; cents were dropped\n", stats.DepthConflicts)
	}
	return nil
}

// findPatch decodes the bank and returns the preset whose normalized name
// matches name (itself normalized, so "Galactic Cathedral" works too).
func findPatch(bankPath, name string, schema decode.Schema) (*patch.Patch, error) {
	f, err := os.Open(bankPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	want := schema.Ident(name)
	patches, _, err := bank.DecodePatches(f, bank.NewAssembler(schema))
	if err != nil {
		return nil, err
	}
	for _, p := range patches {
		if p.Name == want {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no preset %q in %s", want, bankPath)
}

func runShow(cmd *cobra.Command, args []string) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	p, err := findPatch(args[0], args[1], schema)
	if err != nil {
		return err
	}
	doc, err := patch.Encode(p)
	if err != nil {
		return err
	}
	fmt.Print(string(doc))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	p, err := findPatch(args[0], args[1], schema)
	if err != nil {
		return err
	}

	output := outputFile
	if output == "" {
		output = p.Name + ".mid"
	}
	if err := preview.WriteFile(p, output); err != nil {
		return err
	}
	fmt.Printf("Rendered %s -> %s\n", p.Name, output)
	return nil
}

func runEffects(cmd *cobra.Command, args []string) error {
	paths, err := project.WriteEffectProjects(effectsDir)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d effect projects in %s\n", len(paths), effectsDir)
	return nil
}

func runKitchenSink(cmd *cobra.Command, args []string) error {
	data, err := project.NewKitchenSink().Generate()
	if err != nil {
		return err
	}
	if outputFile == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	fmt.Printf("Generated %s\n", outputFile)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	return tui.Run(schema, tuiDir)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serverPort <= 0 {
		return errors.New("port must be positive")
	}
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
