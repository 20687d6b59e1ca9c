package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"

	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking captures a seat purchase. The movie/theater fields are snapshots
// taken at creation time so the booking history stays accurate even if the
// movie or theater record changes later.
type Booking struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"user_id" validate:"required"`
	ShowtimeID  int64 `json:"showtime_id" validate:"required"`
	MovieID     int64 `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
	TheaterID   int64  `json:"theater_id"`
	TheaterName string `json:"theater_name"`
	ShowDate    string `json:"show_date"`
	ShowTime    string `json:"show_time"`

	SeatLabels  []string `json:"seats" validate:"required,min=1,dive,required"`
	TotalAmount float64  `json:"total_amount"`

	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`

	QRCode    []byte    `json:"qr_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (b Booking) Clone() Booking {
	c := b
	c.SeatLabels = append([]string(nil), b.SeatLabels...)
	c.QRCode = append([]byte(nil), b.QRCode...)
	return c
}

type BookingPatch struct {
	PaymentMethod *string `json:"payment_method"`
	PaymentStatus *string `json:"payment_status"`
	Status        *string `json:"status"`
}

func (p BookingPatch) Apply(b *Booking) {
	if p.PaymentMethod != nil {
		b.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
}

type BookingFilter struct {
	UserID int64
	Status string
	Date   string
}
