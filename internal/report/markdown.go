package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/dewabbit/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(results *models.ScanResults, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Dewabbit Duplicate Report v%s\n\n", results.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", results.ScanPath))
	sb.WriteString(fmt.Sprintf("| Policy | %s |\n", results.Policy))
	sb.WriteString(fmt.Sprintf("| Status | `%s` |\n", results.Status))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(results.Duration)))
	sb.WriteString(fmt.Sprintf("| Entries | %d |\n", results.TotalEntries))
	sb.WriteString(fmt.Sprintf("| Hashed Files | %d |\n", results.ScannedFiles))
	sb.WriteString(fmt.Sprintf("| Access Denied | %d |\n", results.SkippedDenied))
	sb.WriteString(fmt.Sprintf("| Unique Contents | %d |\n", results.UniqueDigests))
	sb.WriteString(fmt.Sprintf("| **Relocated** | **%d** (%s) |\n", len(results.Relocations), FormatSize(results.RelocatedSize)))
	sb.WriteString("\n")

	if !results.Succeeded() {
		sb.WriteString(fmt.Sprintf("> ❌ **%s**\n\n", StatusMessage(results)))
	} else if len(results.Relocations) == 0 {
		sb.WriteString("> ✅ **No duplicates found**\n\n")
	}

	if len(results.Relocations) > 0 {
		sb.WriteString("## Relocations\n\n")
		sb.WriteString("| # | Source | Quarantine | Removed | Size |\n")
		sb.WriteString("|---|--------|------------|---------|------|\n")
		for i, rel := range results.Relocations {
			removed := fmt.Sprintf("`%s`", rel.Removed)
			if rel.ReferenceMissing {
				removed += " (already gone)"
			}
			sb.WriteString(fmt.Sprintf("| %d | `%s` | `%s` | %s | %s |\n",
				i+1, rel.Source, rel.Destination, removed, FormatSize(rel.Size)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("*Generated by Dewabbit*\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
