package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crafterscloset/internal/models"
)

const requirementColumns = "project_supplies.id AS project_supply_id, project_supplies.supply_detail_id, " +
	"supply_details.supply_type, supply_details.brand, supply_details.color, supply_details.units, " +
	"supply_details.purchase_url, project_supplies.quantity AS quantity_required"

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// Create inserts the project and its requirements in one transaction.
func (r *GORMProjectRepository) Create(project *models.Project, supplies []models.ProjectSupply) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		if len(supplies) == 0 {
			return nil
		}
		for i := range supplies {
			supplies[i].ProjectID = project.ID
		}
		return tx.Omit(clause.Associations).Create(&supplies).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a single project by its ID.
func (r *GORMProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %d: %w", id, err)
	}
	return &project, nil
}

// GetAll retrieves every project ordered by id.
func (r *GORMProjectRepository) GetAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get all projects: %w", err)
	}
	return projects, nil
}

// ListByUser retrieves the projects a user authored.
func (r *GORMProjectRepository) ListByUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get projects for user %d: %w", userID, err)
	}
	return projects, nil
}

// ListRequirements joins the project's supplies with their catalog details.
func (r *GORMProjectRepository) ListRequirements(projectID uint) ([]models.RequirementRow, error) {
	rows := []models.RequirementRow{}
	err := r.db.Table("project_supplies").
		Select(requirementColumns).
		Joins("JOIN supply_details ON supply_details.id = project_supplies.supply_detail_id").
		Where("project_supplies.project_id = ?", projectID).
		Order("project_supplies.supply_detail_id ASC, project_supplies.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list supplies for project %d: %w", projectID, err)
	}
	return rows, nil
}

// Search is a case-insensitive substring match over project and supply
// columns. Projects without supplies are still searchable by title.
func (r *GORMProjectRepository) Search(term string) ([]models.ProjectSearchResult, error) {
	p := containsPattern(term)
	results := []models.ProjectSearchResult{}
	err := r.db.Table("projects").
		Distinct("projects.id", "projects.title", "projects.description").
		Joins("LEFT JOIN project_supplies ON project_supplies.project_id = projects.id").
		Joins("LEFT JOIN supply_details ON supply_details.id = project_supplies.supply_detail_id").
		Where("(LOWER(projects.title) LIKE ? ESCAPE '\\' OR "+
			"LOWER(projects.description) LIKE ? ESCAPE '\\' OR "+
			"LOWER(supply_details.supply_type) LIKE ? ESCAPE '\\' OR "+
			"LOWER(supply_details.brand) LIKE ? ESCAPE '\\' OR "+
			"LOWER(supply_details.color) LIKE ? ESCAPE '\\')", p, p, p, p, p).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search projects for %q: %w", term, err)
	}
	return results, nil
}
