package repositories

import "crafterscloset/internal/models"

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// Create stores a project and its required supplies together.
	Create(project *models.Project, supplies []models.ProjectSupply) error
	GetByID(id uint) (*models.Project, error)
	GetAll() ([]models.Project, error)
	ListByUser(userID uint) ([]models.Project, error)
	// ListRequirements returns the project's supplies ordered by supply detail id.
	ListRequirements(projectID uint) ([]models.RequirementRow, error)
	// Search matches term against titles, descriptions and supply descriptors.
	Search(term string) ([]models.ProjectSearchResult, error)
}
