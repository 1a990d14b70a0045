package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/jonathan/health-check/internal/schemas"
	"github.com/jonathan/health-check/internal/types"
)

// document is the on-disk catalog layout.
type document struct {
	Name      string           `json:"name"`
	Kind      Kind             `json:"kind"`
	Questions []types.Question `json:"questions"`
}

// Load decodes a YAML or JSON catalog, checks it against the catalog schema and
// builds a validated Catalog.
func Load(content []byte) (*Catalog, error) {
	jsonContent, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, &LoadError{
			Message: "failed to decode catalog document",
			Cause:   err,
		}
	}

	if err := schemas.ValidateCatalog(jsonContent); err != nil {
		return nil, &LoadError{
			Message: "catalog does not match schema",
			Cause:   err,
		}
	}

	var doc document
	if err := json.Unmarshal(jsonContent, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal catalog JSON",
			Cause:   err,
		}
	}

	return New(doc.Name, doc.Kind, doc.Questions)
}

// LoadFile loads a catalog from a YAML or JSON file
func LoadFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Load(content)
}
