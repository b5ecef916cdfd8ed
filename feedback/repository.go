package feedback

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/kbukum/voicefeedback/errors"
)

// Repository stores feedback records.
type Repository interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (*Record, error)
	// List returns records for predictionID, or all records when it is
	// empty, newest first.
	List(ctx context.Context, predictionID string) ([]Record, error)
}

// MemoryRepository keeps records for the lifetime of the process.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []Record
	byID    map[string]int
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]int)}
}

// Save implements Repository. Saving an existing ID replaces the record.
func (m *MemoryRepository) Save(_ context.Context, r Record) error {
	if r.ID == "" {
		return apperrors.MissingField("id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byID[r.ID]; ok {
		m.records[i] = r
		return nil
	}
	m.byID[r.ID] = len(m.records)
	m.records = append(m.records, r)
	return nil
}

// Get implements Repository.
func (m *MemoryRepository) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NotFound("voice feedback", id)
	}
	r := m.records[i]
	return &r, nil
}

// List implements Repository. Records saved in the same instant keep
// reverse insertion order.
func (m *MemoryRepository) List(_ context.Context, predictionID string) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		if predictionID == "" || m.records[i].PredictionID == predictionID {
			out = append(out, m.records[i])
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
