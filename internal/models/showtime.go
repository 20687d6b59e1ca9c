package models

import "time"

// Showtime schedules a movie screening at a theater. The seat counters form
// the seat ledger: available + booked == total holds at all times, and the
// store only ever moves seats between available and booked under its lock.
type Showtime struct {
	ID             int64     `json:"id"`
	MovieID        int64     `json:"movie_id" validate:"required"`
	TheaterID      int64     `json:"theater_id" validate:"required"`
	Date           string    `json:"date" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	PriceRegular   float64   `json:"price_regular" validate:"required,gt=0"`
	PriceVIP       float64   `json:"price_vip" validate:"required,gt=0"`
	TotalSeats     int       `json:"total_seats" validate:"required,gt=0"`
	AvailableSeats int       `json:"available_seats"`
	BookedSeats    int       `json:"booked_seats"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s Showtime) Clone() Showtime {
	return s
}

// ShowtimePatch deliberately excludes the seat counters: the ledger is only
// mutated through booking creation and cancellation.
type ShowtimePatch struct {
	Date         *string  `json:"date"`
	Time         *string  `json:"time"`
	PriceRegular *float64 `json:"price_regular"`
	PriceVIP     *float64 `json:"price_vip"`
	Status       *string  `json:"status"`
}

func (p ShowtimePatch) Apply(s *Showtime) {
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Time != nil {
		s.Time = *p.Time
	}
	if p.PriceRegular != nil {
		s.PriceRegular = *p.PriceRegular
	}
	if p.PriceVIP != nil {
		s.PriceVIP = *p.PriceVIP
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

type ShowtimeFilter struct {
	MovieID   int64
	TheaterID int64
	Date      string
}
