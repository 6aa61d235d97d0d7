package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/dewabbit/internal/config"
	"github.com/IvanShishkin/dewabbit/internal/filesystem"
	"github.com/IvanShishkin/dewabbit/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// CloudGuidance is shown when a scan stops on a cloud placeholder
const CloudGuidance = "sign in to your cloud storage client so files are available locally, then run the scan again"

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatSize renders a byte count with a binary unit
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// StatusMessage returns the one-line human status for a scan outcome
func StatusMessage(results *models.ScanResults) string {
	switch results.Status {
	case models.KindSuccess:
		if len(results.Relocations) == 0 {
			return "Scan complete, no duplicates found"
		}
		return fmt.Sprintf("Scan complete, %d duplicate(s) moved to %s", len(results.Relocations), filesystem.QuarantineDirName)
	case models.KindNoTargetSelected:
		return "No directory selected, nothing was scanned"
	case models.KindInvalidTarget:
		return "Target is not an existing directory: " + results.ScanPath
	case models.KindCloudPlaceholderUnavailable:
		return "Scan stopped on a cloud placeholder file: " + CloudGuidance
	case models.KindMetadataError:
		return "Scan stopped, could not read file metadata: " + results.Error
	default:
		return "Scan stopped on an I/O error: " + results.Error
	}
}

// Generator generates scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator writing console output to stdout
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}
}

// SetOutput redirects console output
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate writes a report for results. With no format configured the
// summary goes to the console and the returned path is empty.
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	format := strings.ToLower(g.config.ReportFormat)
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(results)
		return "", nil
	}

	// Generate default filename if not specified
	if outputFile == "" {
		ext, err := extension(format)
		if err != nil {
			return "", err
		}
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("DEWABBIT-REPORT-%s.%s", timestamp, ext)
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(results, outputFile)
	case "txt", "text":
		err = g.generateText(results, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(results, outputFile)
	case "yaml", "yml":
		err = g.generateYAML(results, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	results.ReportPath = absPath
	return absPath, nil
}

func extension(format string) (string, error) {
	switch format {
	case "json":
		return "json", nil
	case "txt", "text":
		return "txt", nil
	case "md", "markdown":
		return "md", nil
	case "yaml", "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unknown report format: %s", format)
}

// printConsole prints results with colors
func (g *Generator) printConsole(results *models.ScanResults) {
	w := g.out
	fmt.Fprintln(w)

	if results.Succeeded() {
		fmt.Fprintf(w, "%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	} else {
		fmt.Fprintf(w, "%s%sSCAN STOPPED%s\n", colorBold, colorRed, colorReset)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %sPath:%s       %s\n", colorGray, colorReset, results.ScanPath)
	fmt.Fprintf(w, "  %sPolicy:%s     %s\n", colorGray, colorReset, results.Policy)
	fmt.Fprintf(w, "  %sEntries:%s    %d\n", colorGray, colorReset, results.TotalEntries)
	fmt.Fprintf(w, "  %sHashed:%s     %d\n", colorGray, colorReset, results.ScannedFiles)
	if results.SkippedDenied > 0 {
		fmt.Fprintf(w, "  %sDenied:%s     %s%d%s\n", colorGray, colorReset, colorYellow, results.SkippedDenied, colorReset)
	}
	fmt.Fprintf(w, "  %sDuration:%s   %s\n", colorGray, colorReset, FormatDuration(results.Duration))
	fmt.Fprintln(w)

	if len(results.Relocations) > 0 {
		fmt.Fprintf(w, "  %s%sDUPLICATES RELOCATED: %d (%s)%s\n", colorBold, colorOrange,
			len(results.Relocations), FormatSize(results.RelocatedSize), colorReset)
		fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
		for i, rel := range results.Relocations {
			fmt.Fprintf(w, "\n  %s[%d]%s %s -> %s%s%s\n", colorBold, i+1, colorReset, rel.Source, colorOrange, rel.Destination, colorReset)
			removed := rel.Removed
			if rel.ReferenceMissing {
				removed += " (already gone)"
			}
			fmt.Fprintf(w, "      %sRemoved:%s  %s\n", colorGray, colorReset, removed)
			fmt.Fprintf(w, "      %sDigest:%s   %s%s%s\n", colorGray, colorReset, colorDim, rel.Digest, colorReset)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
		fmt.Fprintln(w)
	}

	statusColor := colorGreen
	if !results.Succeeded() {
		statusColor = colorRed
	}
	fmt.Fprintf(w, "  %s%s%s%s\n", colorBold, statusColor, StatusMessage(results), colorReset)
	fmt.Fprintln(w)
}
