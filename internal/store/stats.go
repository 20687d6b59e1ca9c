package store

import (
	"github.com/samber/lo"

	"cinefront/internal/models"
)

// Stats recomputes everything from the live tables on every call. There is
// no cached counter to drift out of sync. Revenue counts bookings that are
// paid and not cancelled; pending, failed and refunded amounts are excluded.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revenue := lo.SumBy(lo.Values(s.bookings), func(b *models.Booking) float64 {
		if b.PaymentStatus == models.PaymentPaid && b.Status != models.BookingCancelled {
			return b.TotalAmount
		}
		return 0
	})

	return models.Stats{
		TotalMovies:    len(s.movies),
		TotalTheaters:  len(s.theaters),
		TotalShowtimes: len(s.showtimes),
		TotalBookings:  len(s.bookings),
		TotalUsers:     len(s.users),
		TotalRevenue:   revenue,
	}
}
