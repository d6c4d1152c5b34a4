package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"crafterscloset/internal/logger"
	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
	"crafterscloset/internal/repositories"
)

// SupplyService owns the shared supply catalog.
type SupplyService struct {
	repo repositories.SupplyRepository
}

// NewSupplyService creates a new SupplyService.
func NewSupplyService(repo repositories.SupplyRepository) *SupplyService {
	return &SupplyService{
		repo: repo,
	}
}

// GetAllSupplies retrieves the whole catalog.
func (s *SupplyService) GetAllSupplies() ([]models.SupplyDetail, error) {
	return s.repo.GetAll()
}

// GetSupplyByID retrieves a single catalog entry.
func (s *SupplyService) GetSupplyByID(id uint) (*models.SupplyDetail, error) {
	return s.repo.GetByID(id)
}

// FindMatchingSupply returns the lowest-id entry whose fields contain every
// non-empty field of m, ignoring case. Several candidates are not an error,
// but they are logged since the match may be the wrong supply.
func (s *SupplyService) FindMatchingSupply(m models.SupplyMatch) (*models.SupplyDetail, error) {
	m = trimMatch(m)
	if m.SupplyType == "" {
		return nil, models.NewValidationError("supply_type", "is required")
	}

	candidates, err := s.repo.FindMatching(m, 2)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no supply detail matching %q/%q/%q: %w", m.SupplyType, m.Brand, m.Color, models.ErrNotFound)
	}
	if len(candidates) > 1 {
		logger.Warn("ambiguous supply match",
			zap.String("supply_type", m.SupplyType),
			zap.String("brand", m.Brand),
			zap.String("color", m.Color),
			zap.Uint("chosen_id", candidates[0].ID),
			zap.Uint("other_id", candidates[1].ID))
	}
	return &candidates[0], nil
}

// GetOrCreateSupply resolves the input against the catalog and inserts a
// new entry only when nothing matches.
func (s *SupplyService) GetOrCreateSupply(in models.SupplyInput) (*models.SupplyDetail, error) {
	in = trimInput(in)
	if in.SupplyType == "" {
		return nil, models.NewValidationError("supply_type", "is required")
	}
	if in.Units == "" {
		return nil, models.NewValidationError("units", "is required")
	}

	sd, err := s.FindMatchingSupply(in.Match())
	if err == nil {
		return sd, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	sd = &models.SupplyDetail{
		SupplyType:  in.SupplyType,
		Brand:       models.NullableString(in.Brand),
		Color:       models.NullableString(in.Color),
		Units:       in.Units,
		PurchaseURL: models.NullableString(in.PurchaseURL),
	}
	if err := s.repo.Create(sd); err != nil {
		return nil, err
	}
	logger.Info("supply detail created", zap.Uint("supply_detail_id", sd.ID), zap.String("supply_type", sd.SupplyType))
	return sd, nil
}

// SupplyTypes lists distinct supply types.
func (s *SupplyService) SupplyTypes() ([]string, error) {
	return withCatalog(s, reconcile.SupplyTypes)
}

// Brands lists distinct brands.
func (s *SupplyService) Brands() ([]string, error) {
	return withCatalog(s, reconcile.Brands)
}

// Colors lists distinct colors.
func (s *SupplyService) Colors() ([]string, error) {
	return withCatalog(s, reconcile.Colors)
}

// Units lists distinct units of measure.
func (s *SupplyService) Units() ([]string, error) {
	return withCatalog(s, reconcile.Units)
}

// BrandsByType groups brands under their supply type.
func (s *SupplyService) BrandsByType() (map[string][]string, error) {
	return withCatalog(s, reconcile.BrandsByType)
}

// ColorsByType groups colors under their supply type.
func (s *SupplyService) ColorsByType() (map[string][]string, error) {
	return withCatalog(s, reconcile.ColorsByType)
}

// UnitsByType gives the unit of measure for each supply type.
func (s *SupplyService) UnitsByType() (map[string]string, error) {
	return withCatalog(s, reconcile.UnitsByType)
}

// ColorsByBrand groups colors under their brand.
func (s *SupplyService) ColorsByBrand() (map[string][]string, error) {
	return withCatalog(s, reconcile.ColorsByBrand)
}

// ColorsForBrand lists colors of every brand containing brand.
func (s *SupplyService) ColorsForBrand(brand string) ([]string, error) {
	brand = strings.TrimSpace(brand)
	return withCatalog(s, func(sds []models.SupplyDetail) []string {
		return reconcile.ColorsForBrand(sds, brand)
	})
}

func withCatalog[T any](s *SupplyService, fn func([]models.SupplyDetail) T) (T, error) {
	sds, err := s.repo.GetAll()
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(sds), nil
}

func trimMatch(m models.SupplyMatch) models.SupplyMatch {
	m.SupplyType = strings.TrimSpace(m.SupplyType)
	m.Brand = strings.TrimSpace(m.Brand)
	m.Color = strings.TrimSpace(m.Color)
	m.Units = strings.TrimSpace(m.Units)
	return m
}

func trimInput(in models.SupplyInput) models.SupplyInput {
	in.SupplyType = strings.TrimSpace(in.SupplyType)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Color = strings.TrimSpace(in.Color)
	in.Units = strings.TrimSpace(in.Units)
	in.PurchaseURL = strings.TrimSpace(in.PurchaseURL)
	return in
}
