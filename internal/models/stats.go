package models

// Stats is derived from the live tables on every call, never cached.
type Stats struct {
	TotalMovies    int     `json:"total_movies"`
	TotalTheaters  int     `json:"total_theaters"`
	TotalShowtimes int     `json:"total_showtimes"`
	TotalBookings  int     `json:"total_bookings"`
	TotalUsers     int     `json:"total_users"`
	TotalRevenue   float64 `json:"total_revenue"`
}
