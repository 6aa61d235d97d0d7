package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/dewabbit/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(results *models.ScanResults, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString(fmt.Sprintf("  DEWABBIT DUPLICATE REPORT v%s\n", results.Version))
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", results.ScanPath))
	sb.WriteString(fmt.Sprintf("Policy:           %s\n", results.Policy))
	sb.WriteString(fmt.Sprintf("Status:           %s\n", results.Status))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", results.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(results.Duration)))
	sb.WriteString(fmt.Sprintf("Entries:          %d\n", results.TotalEntries))
	sb.WriteString(fmt.Sprintf("Hashed Files:     %d\n", results.ScannedFiles))
	sb.WriteString(fmt.Sprintf("Skipped Dirs:     %d\n", results.SkippedDirs))
	sb.WriteString(fmt.Sprintf("Access Denied:    %d\n", results.SkippedDenied))
	sb.WriteString(fmt.Sprintf("Unique Contents:  %d\n", results.UniqueDigests))
	sb.WriteString(fmt.Sprintf("RELOCATED:        %d (%s)\n", len(results.Relocations), FormatSize(results.RelocatedSize)))
	sb.WriteString("\n")
	sb.WriteString(StatusMessage(results) + "\n\n")

	if len(results.Relocations) > 0 {
		sb.WriteString("RELOCATIONS\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")

		for i, rel := range results.Relocations {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, rel.Source))
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			sb.WriteString(fmt.Sprintf("Copied To:   %s\n", rel.Destination))
			sb.WriteString(fmt.Sprintf("Removed:     %s\n", rel.Removed))
			if rel.ReferenceMissing {
				sb.WriteString("             (already removed earlier in this scan)\n")
			}
			if rel.Overwrote {
				sb.WriteString("Overwrote:   yes\n")
			}
			sb.WriteString(fmt.Sprintf("Size:        %s\n", FormatSize(rel.Size)))
			sb.WriteString(fmt.Sprintf("SHA-256:     %s\n", rel.Digest))
			sb.WriteString("\n")
		}
	}

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
