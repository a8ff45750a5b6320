// Package main provides the CLI entry point for the Verso runtime.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verso-run/verso/internal/config"
	"github.com/verso-run/verso/internal/filters"
	"github.com/verso-run/verso/internal/logger"
	"github.com/verso-run/verso/internal/registry"
	"github.com/verso-run/verso/internal/template"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "verso",
	Short: "Verso - Template rendering runtime",
	Long: `Verso renders text templates whose {{ ... }} expressions pipe values
through named filters.

A render job is a YAML file declaring templates, the context data they are
rendered against, optional feature toggles, and optional custom filters
written in JavaScript.

Examples:
  # Validate a job file
  verso validate job.yaml

  # Render all templates in a job
  verso render job.yaml

  # List the built-in filters
  verso filters`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetFormat(logger.FormatHuman)
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <job-file>",
	Short: "Validate a render job file",
	Long: `Validate a render job file against the schema and check every
template's syntax.

Exit codes:
  0 - Job is valid
  1 - Validation errors (schema violations)
  2 - Parse errors (invalid YAML syntax)

Examples:
  verso validate job.yaml
  verso validate --verbose job.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

var renderCmd = &cobra.Command{
	Use:   "render <job-file>",
	Short: "Render the templates in a job file",
	Long: `Render every template declared in the job file against its context
and print the results to stdout.

The job file is first validated against the schema. If validation fails,
nothing is rendered.

Exit codes:
  0 - All templates rendered successfully
  1 - Validation errors
  2 - Parse errors
  3 - Render errors

Examples:
  verso render job.yaml
  verso render --verbose job.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

var filtersCmd = &cobra.Command{
	Use:   "filters [job-file]",
	Short: "List available filters",
	Long: `List the names of the available filters.

Without a job file, lists the always-on built-in filters. With a job file,
lists everything the job would register: built-ins, enabled optional
filters, and the job's custom script filters.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runFilters,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("verso %s (commit %s, built %s)\n", version, commit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadJob parses a job file and exits with the appropriate code on failure.
func loadJob(path string) *config.Job {
	job, err := config.ParseFile(path)
	if err != nil {
		var failure *config.ValidationFailure
		if errors.As(err, &failure) {
			printValidationErrors(failure.Errors)
			os.Exit(ExitValidationError)
		}
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitParseError)
	}
	return job
}

// buildRegistry registers the filters a job declares: built-ins with the
// job's feature toggles plus the job's script filters.
func buildRegistry(job *config.Job) error {
	registry.RegisterBuiltins(registry.Options{
		Filesizeformat: job.Features.Filesizeformat,
	})
	for _, sf := range job.Filters {
		compiled, err := filters.NewScriptFilter(sf.Name, sf.Script)
		if err != nil {
			return err
		}
		registry.Register(sf.Name, compiled.Func())
	}
	return nil
}

func runValidate(_ *cobra.Command, args []string) {
	jobPath := args[0]

	if !quiet {
		fmt.Printf("Validating job: %s\n", jobPath)
	}

	job := loadJob(jobPath)

	// Schema validation passed; check template syntax too.
	syntaxErrors := 0
	for _, tmpl := range job.Templates {
		if err := template.ValidateSyntax(tmpl.Source); err != nil {
			fmt.Fprintf(os.Stderr, "✗ template %q: %v\n", tmpl.Name, err)
			syntaxErrors++
		}
	}
	if syntaxErrors > 0 {
		os.Exit(ExitValidationError)
	}

	if !quiet {
		fmt.Printf("✓ Job is valid (%d template(s))\n", len(job.Templates))
		if verbose {
			for _, tmpl := range job.Templates {
				fmt.Printf("  Template: %s\n", tmpl.Name)
			}
		}
	}

	os.Exit(ExitSuccess)
}

func runRender(_ *cobra.Command, args []string) {
	jobPath := args[0]

	job := loadJob(jobPath)

	if err := buildRegistry(job); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to build filter registry: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	renderer := template.NewRenderer()
	for _, tmpl := range job.Templates {
		out, err := renderer.Render(tmpl.Source, job.Context)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ template %q: %v\n", tmpl.Name, err)
			os.Exit(ExitRuntimeError)
		}
		if !quiet && len(job.Templates) > 1 {
			fmt.Printf("--- %s ---\n", tmpl.Name)
		}
		fmt.Println(out)
	}

	os.Exit(ExitSuccess)
}

func runFilters(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		job := loadJob(args[0])
		if err := buildRegistry(job); err != nil {
			fmt.Fprintf(os.Stderr, "✗ Failed to build filter registry: %v\n", err)
			os.Exit(ExitRuntimeError)
		}
	} else {
		registry.RegisterBuiltins(registry.Options{})
	}

	for _, name := range registry.List() {
		fmt.Println(name)
	}
	os.Exit(ExitSuccess)
}

// printValidationErrors prints schema validation errors to stderr.
func printValidationErrors(errs []config.ValidationError) {
	fmt.Fprintf(os.Stderr, "✗ Job validation failed with %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Type, e.Error())
	}
}
