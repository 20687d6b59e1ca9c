package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

func (s *Store) CreateTheater(t models.Theater) (*models.Theater, error) {
	if err := s.checkStruct(t); err != nil {
		return nil, err
	}
	if t.Status == "" {
		t.Status = "active"
	}

	s.mu.Lock()
	s.theaterSeq++
	t.ID = s.theaterSeq
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	stored := t.Clone()
	s.theaters[stored.ID] = &stored
	out := stored.Clone()
	s.mu.Unlock()

	s.log.LogStore("CREATE", "theater", fmt.Sprintf("id=%d name=%q", out.ID, out.Name))
	s.publishChange(events.TypeCreated, "theater", out)
	return &out, nil
}

func (s *Store) GetTheater(id int64) *models.Theater {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.theaters[id]
	if !ok {
		return nil
	}
	out := t.Clone()
	return &out
}

func (s *Store) ListTheaters(filter models.TheaterFilter) []models.Theater {
	s.mu.RLock()
	all := make([]models.Theater, 0, len(s.theaters))
	for _, t := range s.theaters {
		all = append(all, t.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return lo.Filter(all, func(t models.Theater, _ int) bool {
		return filter.Status == "" || t.Status == filter.Status
	})
}

func (s *Store) UpdateTheater(id int64, patch models.TheaterPatch) (*models.Theater, error) {
	s.mu.Lock()
	t, ok := s.theaters[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("theater %d: %w", id, ErrNotFound)
	}
	patch.Apply(t)
	out := t.Clone()
	s.mu.Unlock()

	s.publishChange(events.TypeUpdated, "theater", out)
	return &out, nil
}

func (s *Store) DeleteTheater(id int64) bool {
	s.mu.Lock()
	t, ok := s.theaters[id]
	var out models.Theater
	if ok {
		out = t.Clone()
		delete(s.theaters, id)
	}
	s.mu.Unlock()

	if ok {
		s.publishChange(events.TypeDeleted, "theater", out)
	}
	return ok
}
