package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/dewabbit/pkg/models"
)

// Document is the serialised form of a scan: the results plus the rendered
// status line
type Document struct {
	models.ScanResults `yaml:",inline"`
	Message            string `json:"message" yaml:"message"`
}

func newDocument(results *models.ScanResults) *Document {
	return &Document{
		ScanResults: *results,
		Message:     StatusMessage(results),
	}
}

// generateJSON generates a JSON report
func (g *Generator) generateJSON(results *models.ScanResults, outputFile string) error {
	data, err := json.MarshalIndent(newDocument(results), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
