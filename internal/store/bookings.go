package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

// qrPayload is what gets encrypted into the booking's check-in code.
type qrPayload struct {
	BookingID  int64    `json:"booking_id"`
	ShowtimeID int64    `json:"showtime_id"`
	Seats      []string `json:"seats"`
	IssuedAt   string   `json:"issued_at"`
}

// CreateBooking validates the request, checks the requested seat labels for
// conflicts, reserves them on the showtime's ledger, and inserts the booking
// — all in one critical section, so a booking can never exist whose seats
// were not reserved.
func (s *Store) CreateBooking(b models.Booking) (*models.Booking, error) {
	if err := s.checkStruct(b); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(b.SeatLabels))
	for _, label := range b.SeatLabels {
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: seat %s listed twice", ErrValidation, label)
		}
		seen[label] = struct{}{}
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}
	if b.Status == "" {
		b.Status = models.BookingConfirmed
	}

	s.mu.Lock()
	sh, ok := s.showtimes[b.ShowtimeID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: showtime %d does not exist", ErrValidation, b.ShowtimeID)
	}
	if _, ok := s.users[b.UserID]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: user %d does not exist", ErrValidation, b.UserID)
	}

	claimed := s.seats[b.ShowtimeID]
	for _, label := range b.SeatLabels {
		if owner, taken := claimed[label]; taken {
			s.mu.Unlock()
			return nil, fmt.Errorf("seat %s taken by booking %d: %w", label, owner, ErrSeatConflict)
		}
	}

	if err := s.reserveSeats(sh, len(b.SeatLabels)); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.bookingSeq++
	b.ID = s.bookingSeq
	b.MovieID = sh.MovieID
	b.TheaterID = sh.TheaterID
	b.ShowDate = sh.Date
	b.ShowTime = sh.Time
	if mv, ok := s.movies[sh.MovieID]; ok {
		b.MovieTitle = mv.Title
	}
	if th, ok := s.theaters[sh.TheaterID]; ok {
		b.TheaterName = th.Name
	}
	if b.TotalAmount == 0 {
		b.TotalAmount = float64(len(b.SeatLabels)) * sh.PriceRegular
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	if s.qr != nil {
		code, err := s.qr.Generate(qrPayload{
			BookingID:  b.ID,
			ShowtimeID: b.ShowtimeID,
			Seats:      b.SeatLabels,
			IssuedAt:   b.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			s.log.Warn("STORE", fmt.Sprintf("booking %d: QR generation failed: %v", b.ID, err))
		} else {
			b.QRCode = code
		}
	}

	if claimed == nil {
		claimed = make(map[string]int64, len(b.SeatLabels))
		s.seats[b.ShowtimeID] = claimed
	}
	for _, label := range b.SeatLabels {
		claimed[label] = b.ID
	}

	stored := b.Clone()
	s.bookings[stored.ID] = &stored
	out := stored.Clone()
	s.mu.Unlock()

	s.log.LogStore("CREATE", "booking", fmt.Sprintf("id=%d showtime=%d seats=%v", out.ID, out.ShowtimeID, out.SeatLabels))
	s.publishChange(events.TypeCreated, "booking", out)
	return &out, nil
}

func (s *Store) GetBooking(id int64) *models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	out := b.Clone()
	return &out
}

func (s *Store) ListBookings(filter models.BookingFilter) []models.Booking {
	s.mu.RLock()
	all := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		all = append(all, b.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return lo.Filter(all, func(b models.Booking, _ int) bool {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			return false
		}
		if filter.Status != "" && b.Status != filter.Status {
			return false
		}
		if filter.Date != "" && b.ShowDate != filter.Date {
			return false
		}
		return true
	})
}

// UpdateBooking merges the patch. Setting status to cancelled releases the
// booking's seats back to the showtime ledger and frees its seat labels.
// Reinstating a cancelled booking is rejected: its seats may have been
// resold in the meantime.
func (s *Store) UpdateBooking(id int64, patch models.BookingPatch) (*models.Booking, error) {
	s.mu.Lock()
	b, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}

	wasCancelled := b.Status == models.BookingCancelled
	if wasCancelled && patch.Status != nil && *patch.Status != models.BookingCancelled {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cancelled bookings cannot be reinstated", ErrValidation)
	}

	patch.Apply(b)

	if b.Status == models.BookingCancelled && !wasCancelled {
		if sh, ok := s.showtimes[b.ShowtimeID]; ok {
			s.releaseSeats(sh, len(b.SeatLabels))
		}
		if claimed, ok := s.seats[b.ShowtimeID]; ok {
			for _, label := range b.SeatLabels {
				if claimed[label] == b.ID {
					delete(claimed, label)
				}
			}
		}
	}

	out := b.Clone()
	s.mu.Unlock()

	s.publishChange(events.TypeUpdated, "booking", out)
	return &out, nil
}
