package repositories

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
)

// MemoryProjectRepository is an in-memory implementation of ProjectRepository.
type MemoryProjectRepository struct {
	projects     map[uint]models.Project
	requirements map[uint][]models.ProjectSupply
	supplies     SupplyRepository
	nextID       uint
	nextSupplyID uint
	mu           sync.RWMutex
}

// NewMemoryProjectRepository creates a new instance of MemoryProjectRepository.
func NewMemoryProjectRepository(supplies SupplyRepository) *MemoryProjectRepository {
	return &MemoryProjectRepository{
		projects:     make(map[uint]models.Project),
		requirements: make(map[uint][]models.ProjectSupply),
		supplies:     supplies,
		nextID:       1,
		nextSupplyID: 1,
	}
}

// Create adds a project and its requirements.
func (r *MemoryProjectRepository) Create(project *models.Project, supplies []models.ProjectSupply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project.ID = r.nextID
	r.nextID++
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = *project

	stored := make([]models.ProjectSupply, 0, len(supplies))
	for i := range supplies {
		supplies[i].ID = r.nextSupplyID
		supplies[i].ProjectID = project.ID
		r.nextSupplyID++
		stored = append(stored, supplies[i])
	}
	r.requirements[project.ID] = stored
	return nil
}

// GetByID returns a project by its ID.
func (r *MemoryProjectRepository) GetByID(id uint) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project with ID %d: %w", id, models.ErrNotFound)
	}
	return &project, nil
}

// GetAll returns every project ordered by id.
func (r *MemoryProjectRepository) GetAll() ([]models.Project, error) {
	return r.list(func(models.Project) bool { return true }), nil
}

// ListByUser returns the projects a user authored.
func (r *MemoryProjectRepository) ListByUser(userID uint) ([]models.Project, error) {
	return r.list(func(p models.Project) bool { return p.UserID == userID }), nil
}

// ListRequirements joins the project's supplies with their catalog details.
func (r *MemoryProjectRepository) ListRequirements(projectID uint) ([]models.RequirementRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := []models.RequirementRow{}
	for _, ps := range r.requirements[projectID] {
		sd, err := r.supplies.GetByID(ps.SupplyDetailID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		rows = append(rows, models.RequirementRow{
			ProjectSupplyID:  ps.ID,
			SupplyDetailID:   sd.ID,
			SupplyType:       sd.SupplyType,
			Brand:            sd.Brand,
			Color:            sd.Color,
			Units:            sd.Units,
			PurchaseURL:      sd.PurchaseURL,
			QuantityRequired: ps.Quantity,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SupplyDetailID < rows[j].SupplyDetailID })
	return rows, nil
}

// Search matches term against titles, descriptions and supply descriptors.
func (r *MemoryProjectRepository) Search(term string) ([]models.ProjectSearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []models.ProjectSearchResult{}
	for id, p := range r.projects {
		hit := reconcile.ContainsFold(p.Title, term) ||
			(p.Description != nil && reconcile.ContainsFold(*p.Description, term))
		for _, ps := range r.requirements[id] {
			if hit {
				break
			}
			sd, err := r.supplies.GetByID(ps.SupplyDetailID)
			if err != nil {
				continue
			}
			hit = reconcile.ContainsFold(sd.SupplyType, term) ||
				(sd.Brand != nil && reconcile.ContainsFold(*sd.Brand, term)) ||
				(sd.Color != nil && reconcile.ContainsFold(*sd.Color, term))
		}
		if hit {
			results = append(results, models.ProjectSearchResult{ID: p.ID, Title: p.Title, Description: p.Description})
		}
	}
	return results, nil
}

func (r *MemoryProjectRepository) list(keep func(models.Project) bool) []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Project{}
	for _, p := range r.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
