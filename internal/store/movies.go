package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

func (s *Store) CreateMovie(m models.Movie) (*models.Movie, error) {
	if err := s.checkStruct(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.movieSeq++
	m.ID = s.movieSeq
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	stored := m.Clone()
	s.movies[stored.ID] = &stored
	out := stored.Clone()
	s.mu.Unlock()

	s.log.LogStore("CREATE", "movie", fmt.Sprintf("id=%d title=%q", out.ID, out.Title))
	s.publishChange(events.TypeCreated, "movie", out)
	return &out, nil
}

// GetMovie returns nil when no movie has the given ID.
func (s *Store) GetMovie(id int64) *models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil
	}
	out := m.Clone()
	return &out
}

// ListMovies returns matching movies in insertion order. The slice and its
// records are copies; mutating them does not touch store state.
func (s *Store) ListMovies(filter models.MovieFilter) []models.Movie {
	s.mu.RLock()
	all := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		all = append(all, m.Clone())
	}
	s.mu.RUnlock()

	// IDs are assigned monotonically, so ID order is insertion order.
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return lo.Filter(all, func(m models.Movie, _ int) bool {
		if filter.Genre != "" && !lo.Contains(m.Genres, filter.Genre) {
			return false
		}
		if filter.Status != "" && m.Status != filter.Status {
			return false
		}
		return true
	})
}

func (s *Store) UpdateMovie(id int64, patch models.MoviePatch) (*models.Movie, error) {
	s.mu.Lock()
	m, ok := s.movies[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	patch.Apply(m)
	out := m.Clone()
	s.mu.Unlock()

	s.publishChange(events.TypeUpdated, "movie", out)
	return &out, nil
}

// DeleteMovie reports whether a movie was removed. Deleting a missing ID is
// not an error.
func (s *Store) DeleteMovie(id int64) bool {
	s.mu.Lock()
	m, ok := s.movies[id]
	var out models.Movie
	if ok {
		out = m.Clone()
		delete(s.movies, id)
	}
	s.mu.Unlock()

	if ok {
		s.publishChange(events.TypeDeleted, "movie", out)
	}
	return ok
}
