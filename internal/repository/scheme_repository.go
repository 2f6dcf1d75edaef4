package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
)

type ISchemeRepository interface {
	LoadCatalog() (models.SchemeCatalog, error)
}

// SchemeRepository reads the scheme catalog from a JSON file. The file is
// re-read on every call so catalog edits take effect without a restart.
type SchemeRepository struct {
	catalogPath string
}

func NewSchemeRepository(catalogPath string) ISchemeRepository {
	return &SchemeRepository{catalogPath: catalogPath}
}

func (r *SchemeRepository) LoadCatalog() (models.SchemeCatalog, error) {
	var catalog models.SchemeCatalog

	data, err := os.ReadFile(r.catalogPath)
	if err != nil {
		return catalog, fmt.Errorf("failed to read scheme catalog: %w", err)
	}

	if err := json.Unmarshal(data, &catalog); err != nil {
		return catalog, fmt.Errorf("failed to parse scheme catalog: %w", err)
	}

	return catalog, nil
}
