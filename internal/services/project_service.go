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

// ProjectService handles projects and their shopping lists.
type ProjectService struct {
	projects repositories.ProjectRepository
	items    repositories.ItemRepository
	supplies *SupplyService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects repositories.ProjectRepository, items repositories.ItemRepository, supplies *SupplyService) *ProjectService {
	return &ProjectService{
		projects: projects,
		items:    items,
		supplies: supplies,
	}
}

// CreateProject stores a project for the user. Each listed supply is
// resolved against the catalog, creating entries as needed.
func (s *ProjectService) CreateProject(userID uint, in models.ProjectInput) (*models.Project, error) {
	title := reconcile.TitleCase(in.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "is required")
	}

	requirements := make([]models.ProjectSupply, 0, len(in.Supplies))
	for i, supply := range in.Supplies {
		if supply.Quantity <= 0 {
			return nil, models.NewValidationError(fmt.Sprintf("supplies[%d].quantity", i), "must be greater than zero")
		}
		sd, err := s.supplies.GetOrCreateSupply(supply.SupplyInput)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, models.ProjectSupply{
			SupplyDetailID: sd.ID,
			Quantity:       supply.Quantity,
		})
	}

	project := &models.Project{
		UserID:         userID,
		Title:          title,
		Description:    models.NullableString(strings.TrimSpace(in.Description)),
		InstructionURL: models.NullableString(strings.TrimSpace(in.InstructionURL)),
		ImageURL:       models.NullableString(strings.TrimSpace(in.ImageURL)),
	}
	if err := s.projects.Create(project, requirements); err != nil {
		return nil, err
	}
	logger.Info("project created",
		zap.Uint("project_id", project.ID),
		zap.Uint("user_id", userID),
		zap.Int("supplies", len(requirements)))
	return project, nil
}

// GetProject retrieves a single project.
func (s *ProjectService) GetProject(id uint) (*models.Project, error) {
	return s.projects.GetByID(id)
}

// ListProjects retrieves every project.
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	return s.projects.GetAll()
}

// ListUserProjects retrieves the projects a user authored.
func (s *ProjectService) ListUserProjects(userID uint) ([]models.Project, error) {
	return s.projects.ListByUser(userID)
}

// BuyList computes, for each supply the project requires, how much the user
// owns and how much more they need. userID 0 is an anonymous visitor who
// owns nothing.
func (s *ProjectService) BuyList(projectID, userID uint) ([]models.BuyListEntry, error) {
	if _, err := s.projects.GetByID(projectID); err != nil {
		return nil, err
	}

	requirements, err := s.projects.ListRequirements(projectID)
	if err != nil {
		return nil, err
	}

	owned := map[uint]int{}
	if userID != 0 && len(requirements) > 0 {
		ids := make([]uint, 0, len(requirements))
		for _, req := range requirements {
			ids = append(ids, req.SupplyDetailID)
		}
		owned, err = s.items.QuantitiesBySupply(userID, ids)
		if err != nil {
			return nil, err
		}
	}
	return reconcile.BuildBuyList(requirements, owned), nil
}

// SearchProjects finds projects whose title, description or supplies
// mention term.
func (s *ProjectService) SearchProjects(term string) ([]models.ProjectSearchResult, error) {
	results, err := s.projects.Search(strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return reconcile.SortSearchResults(results), nil
}
