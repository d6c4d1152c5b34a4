package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
)

// MemorySupplyRepository is an in-memory implementation of SupplyRepository.
type MemorySupplyRepository struct {
	supplies map[uint]models.SupplyDetail
	nextID   uint
	mu       sync.RWMutex
}

// NewMemorySupplyRepository creates a new instance of MemorySupplyRepository.
func NewMemorySupplyRepository() *MemorySupplyRepository {
	return &MemorySupplyRepository{
		supplies: make(map[uint]models.SupplyDetail),
		nextID:   1,
	}
}

// GetAll returns every catalog entry ordered by id.
func (r *MemorySupplyRepository) GetAll() ([]models.SupplyDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

// GetByID returns a catalog entry by its ID.
func (r *MemorySupplyRepository) GetByID(id uint) (*models.SupplyDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sd, ok := r.supplies[id]
	if !ok {
		return nil, fmt.Errorf("supply detail with ID %d: %w", id, models.ErrNotFound)
	}
	return &sd, nil
}

// FindMatching returns up to limit entries matching m, lowest id first.
func (r *MemorySupplyRepository) FindMatching(m models.SupplyMatch, limit int) ([]models.SupplyDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.SupplyDetail
	for _, sd := range r.sorted() {
		if !reconcile.MatchesSupply(sd, m) {
			continue
		}
		matches = append(matches, sd)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// Create adds a new catalog entry.
func (r *MemorySupplyRepository) Create(sd *models.SupplyDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sd.ID = r.nextID
	r.nextID++
	sd.CreatedAt = time.Now()
	r.supplies[sd.ID] = *sd
	return nil
}

func (r *MemorySupplyRepository) sorted() []models.SupplyDetail {
	out := make([]models.SupplyDetail, 0, len(r.supplies))
	for _, sd := range r.supplies {
		out = append(out, sd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
