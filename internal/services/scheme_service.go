package services

import (
	"log/slog"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/repository"
)

type ISchemeService interface {
	FindEligibleSchemes(query models.SchemeQuery) []models.SchemeResult
	GetCatalogMetadata() (models.SchemeCatalog, error)
}

// SchemeService glues the catalog repository to the matcher. A failed
// catalog load is not an error for the caller: the matcher's fallback
// ladder turns it into the helpline response.
type SchemeService struct {
	schemeRepo repository.ISchemeRepository
	matcher    *SchemeMatcher
}

func NewSchemeService(schemeRepo repository.ISchemeRepository) ISchemeService {
	return &SchemeService{
		schemeRepo: schemeRepo,
		matcher:    NewSchemeMatcher(),
	}
}

func (s *SchemeService) FindEligibleSchemes(query models.SchemeQuery) []models.SchemeResult {
	catalog, err := s.schemeRepo.LoadCatalog()
	if err != nil {
		slog.Error("scheme catalog load failed, matcher will use fallback ladder", "error", err)
		catalog = models.SchemeCatalog{}
	}
	return s.matcher.FindEligibleSchemes(catalog, query)
}

// GetCatalogMetadata returns the form metadata (crops, disaster types,
// states) the frontend renders on the disaster-help page.
func (s *SchemeService) GetCatalogMetadata() (models.SchemeCatalog, error) {
	catalog, err := s.schemeRepo.LoadCatalog()
	if err != nil {
		return models.SchemeCatalog{}, err
	}
	catalog.Schemes = nil
	return catalog, nil
}
