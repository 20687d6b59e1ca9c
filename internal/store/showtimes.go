package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

func (s *Store) CreateShowtime(st models.Showtime) (*models.Showtime, error) {
	if err := s.checkStruct(st); err != nil {
		return nil, err
	}
	if st.Status == "" {
		st.Status = "scheduled"
	}

	s.mu.Lock()
	if _, ok := s.movies[st.MovieID]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: movie %d does not exist", ErrValidation, st.MovieID)
	}
	if _, ok := s.theaters[st.TheaterID]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: theater %d does not exist", ErrValidation, st.TheaterID)
	}

	s.showtimeSeq++
	st.ID = s.showtimeSeq
	st.AvailableSeats = st.TotalSeats
	st.BookedSeats = 0
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	stored := st.Clone()
	s.showtimes[stored.ID] = &stored
	out := stored.Clone()
	s.mu.Unlock()

	s.log.LogStore("CREATE", "showtime", fmt.Sprintf("id=%d movie=%d theater=%d seats=%d", out.ID, out.MovieID, out.TheaterID, out.TotalSeats))
	s.publishChange(events.TypeCreated, "showtime", out)
	return &out, nil
}

func (s *Store) GetShowtime(id int64) *models.Showtime {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.showtimes[id]
	if !ok {
		return nil
	}
	out := st.Clone()
	return &out
}

func (s *Store) ListShowtimes(filter models.ShowtimeFilter) []models.Showtime {
	s.mu.RLock()
	all := make([]models.Showtime, 0, len(s.showtimes))
	for _, st := range s.showtimes {
		all = append(all, st.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return lo.Filter(all, func(st models.Showtime, _ int) bool {
		if filter.MovieID != 0 && st.MovieID != filter.MovieID {
			return false
		}
		if filter.TheaterID != 0 && st.TheaterID != filter.TheaterID {
			return false
		}
		if filter.Date != "" && st.Date != filter.Date {
			return false
		}
		return true
	})
}

func (s *Store) UpdateShowtime(id int64, patch models.ShowtimePatch) (*models.Showtime, error) {
	s.mu.Lock()
	st, ok := s.showtimes[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("showtime %d: %w", id, ErrNotFound)
	}
	patch.Apply(st)
	out := st.Clone()
	s.mu.Unlock()

	s.publishChange(events.TypeUpdated, "showtime", out)
	return &out, nil
}

func (s *Store) DeleteShowtime(id int64) bool {
	s.mu.Lock()
	st, ok := s.showtimes[id]
	var out models.Showtime
	if ok {
		out = st.Clone()
		delete(s.showtimes, id)
		delete(s.seats, id)
	}
	s.mu.Unlock()

	if ok {
		s.publishChange(events.TypeDeleted, "showtime", out)
	}
	return ok
}

// reserveSeats moves n seats from available to booked. Caller must hold s.mu.
func (s *Store) reserveSeats(st *models.Showtime, n int) error {
	if st.AvailableSeats < n {
		return fmt.Errorf("showtime %d has %d seats left, requested %d: %w",
			st.ID, st.AvailableSeats, n, ErrInsufficientSeats)
	}
	st.AvailableSeats -= n
	st.BookedSeats += n
	return nil
}

// releaseSeats is the cancellation inverse. A booked count that would go
// negative means the ledger is corrupt; that is a programming error, not a
// user-facing condition.
func (s *Store) releaseSeats(st *models.Showtime, n int) {
	if st.BookedSeats < n {
		s.log.Fatal("STORE", fmt.Sprintf("seat ledger corrupt: showtime %d booked=%d release=%d",
			st.ID, st.BookedSeats, n))
		return
	}
	st.AvailableSeats += n
	st.BookedSeats -= n
}
