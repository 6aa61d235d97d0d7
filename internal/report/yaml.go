package report

import (
	"os"

	"github.com/IvanShishkin/dewabbit/pkg/models"
	"gopkg.in/yaml.v3"
)

// generateYAML generates a YAML report with the same fields as the JSON one
func (g *Generator) generateYAML(results *models.ScanResults, outputFile string) error {
	data, err := yaml.Marshal(newDocument(results))
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
