package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/dewabbit/internal/config"
	"github.com/IvanShishkin/dewabbit/internal/core"
	"github.com/IvanShishkin/dewabbit/internal/filesystem"
	"github.com/IvanShishkin/dewabbit/internal/report"
	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

// Process exit codes
const (
	exitOK           = 0
	exitScanFailed   = 1
	exitNoTarget     = 2
	exitInvalidInput = 3
)

var (
	version = core.Version
	logger  *zap.Logger
	verbose bool
)

// exitError carries the process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		// Argument and flag parsing errors from cobra
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitInvalidInput)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dewabbit",
		Short: "Dewabbit - duplicate file quarantine for a single directory",
		Long: `Hashes every file directly inside a directory and moves byte-identical
duplicates into a "dupes" subdirectory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global verbose flag
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(helpCmd())

	return rootCmd
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Printf("%s%sDEWABBIT%s\n", colorBold, colorOrange, colorReset)
	fmt.Printf("%sDuplicate quarantine v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// newLogger builds the development logger under --verbose, otherwise a
// silent JSON logger that only emits errors
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		policy       string
		reportFormat string
		outputFile   string
		noProgress   bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Move duplicate files in a directory into its dupes folder",
		Long: `Scan the direct children of a directory (no recursion), hash each file with
SHA-256 and relocate duplicates into <path>/dupes. The scan stops at the first
unrecoverable error; files that cannot be accessed are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags before doing anything
			if err := validateFlags(policy, reportFormat); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return &exitError{code: exitInvalidInput, err: err}
			}

			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return &exitError{code: exitScanFailed, err: err}
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return &exitError{code: exitScanFailed, err: err}
			}

			// Override config with CLI flags
			if policy != "" {
				cfg.Policy = policy
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if noProgress {
				cfg.NoProgress = true
			}

			// Values from the config file or environment are checked too
			if err := cfg.Validate(); err != nil {
				fmt.Printf("\n  %s✗ Invalid configuration:%s %s\n\n", colorRed, colorReset, err.Error())
				return &exitError{code: exitInvalidInput, err: err}
			}

			path := cfg.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path != "" {
				if path, err = filesystem.ResolveTarget(path); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					return &exitError{code: exitInvalidInput, err: err}
				}
			}

			printBanner(path, cfg)

			scanner := core.NewScanner(cfg, logger)
			var bar *progressbar.ProgressBar
			if !cfg.NoProgress {
				scanner.SetProgressCallback(func(phase string, current, total int, message string) {
					switch phase {
					case core.PhaseEnumerated:
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionShowCount(),
							progressbar.OptionSetWidth(15),
							progressbar.OptionSetDescription("Hashing files..."),
							progressbar.OptionShowElapsedTimeOnFinish(),
						)
					case core.PhaseProcessing:
						if bar != nil {
							bar.Set(current)
						}
					case core.PhaseComplete:
						if bar != nil {
							bar.Finish()
						}
					}
				})
			}

			results, scanErr := scanner.Scan(path)
			if bar != nil {
				fmt.Fprintln(os.Stderr)
			}
			if scanErr != nil {
				logger.Error("Scan failed", zap.Error(scanErr))
			}

			generator := report.NewGenerator(cfg, logger)
			reportPath, err := generator.Generate(results)
			if err != nil {
				logger.Error("Failed to generate report", zap.Error(err))
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return &exitError{code: exitScanFailed, err: err}
			}

			if reportPath != "" {
				fmt.Printf("  %s%s%s\n", colorBold, report.StatusMessage(results), colorReset)
				fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, reportPath, colorReset)
				fmt.Println()
			}

			if code := exitCodeFor(results.Status); code != exitOK {
				return &exitError{code: code, err: scanErr}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Relocation policy: literal, keep-first (default: literal)")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, md, yaml (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

// validateFlags validates CLI flag values
func validateFlags(policy, reportFormat string) error {
	if policy != "" {
		validPolicies := []string{config.PolicyNameLiteral, config.PolicyNameKeepFirst}
		if !contains(validPolicies, strings.ToLower(policy)) {
			return fmt.Errorf("--policy must be one of: %s (got: %s)", strings.Join(validPolicies, ", "), policy)
		}
	}

	if reportFormat != "" && !contains(config.ValidReportFormats, strings.ToLower(reportFormat)) {
		return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(config.ValidReportFormats, ", "), reportFormat)
	}

	return nil
}

// exitCodeFor maps a scan status to the process exit code
func exitCodeFor(status models.Kind) int {
	switch status {
	case models.KindSuccess:
		return exitOK
	case models.KindNoTargetSelected:
		return exitNoTarget
	default:
		return exitScanFailed
	}
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// printBanner prints the startup banner
func printBanner(path string, cfg *config.Config) {
	if path == "" {
		path = "(none)"
	}
	printMainBanner()
	fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, path)
	fmt.Printf("  %sPolicy:%s    %s\n", colorGray, colorReset, core.NewPolicy(cfg.GetPolicy()).Name())
	fmt.Println()
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()

			fmt.Printf("%s%sABOUT%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  Dewabbit looks at the files directly inside one directory, hashes them\n")
			fmt.Printf("  with SHA-256 and relocates duplicates into a %sdupes%s subdirectory.\n", colorBold, colorReset)
			fmt.Printf("  Subdirectories are never entered.\n\n")

			fmt.Printf("%s%sPOLICIES%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %sliteral%s     (default) copy the later file into dupes, keep it in place,\n", colorCyan, colorReset)
			fmt.Printf("              and delete the file seen first\n")
			fmt.Printf("  %skeep-first%s  keep the file seen first and move later copies into dupes\n\n", colorCyan, colorReset)

			fmt.Printf("%s%sSCAN FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s--policy%s <name>    Relocation policy: literal, keep-first\n", colorBold, colorReset)
			fmt.Printf("  %s-r, --report%s <fmt> Report format: text, json, md, yaml\n", colorBold, colorReset)
			fmt.Printf("  %s-o, --output%s <file> Output file path\n", colorBold, colorReset)
			fmt.Printf("  %s--no-progress%s      Disable the progress bar\n", colorBold, colorReset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s-v, --verbose%s      Enable verbose logging\n", colorBold, colorReset)
			fmt.Printf("  %s--version%s          Show version\n", colorBold, colorReset)

			fmt.Printf("\n%s%sEXIT CODES%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  0 success, 1 scan stopped on an error, 2 no directory given, 3 invalid flags\n")

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  dewabbit scan ~/Downloads\n")
			fmt.Printf("  dewabbit scan --policy=keep-first ~/Pictures\n")
			fmt.Printf("  dewabbit scan --report=json --output=dupes.json ~/Downloads\n\n")
		},
	}
}
