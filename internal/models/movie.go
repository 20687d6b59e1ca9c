package models

import "time"

type Movie struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title" validate:"required"`
	Synopsis       string    `json:"synopsis"`
	Genres         []string  `json:"genres"`
	PosterURL      string    `json:"poster_url"`
	RuntimeMinutes int       `json:"runtime_minutes" validate:"gte=0"`
	Rating         string    `json:"rating"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a deep copy so callers can never mutate store state through
// a returned record.
func (m Movie) Clone() Movie {
	c := m
	c.Genres = append([]string(nil), m.Genres...)
	return c
}

// MoviePatch carries a partial update. Nil fields are "omitted" and keep the
// existing value; non-nil fields overwrite, even with an empty value.
type MoviePatch struct {
	Title          *string   `json:"title"`
	Synopsis       *string   `json:"synopsis"`
	Genres         *[]string `json:"genres"`
	PosterURL      *string   `json:"poster_url"`
	RuntimeMinutes *int      `json:"runtime_minutes"`
	Rating         *string   `json:"rating"`
	Status         *string   `json:"status"`
}

func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Synopsis != nil {
		m.Synopsis = *p.Synopsis
	}
	if p.Genres != nil {
		m.Genres = append([]string(nil), *p.Genres...)
	}
	if p.PosterURL != nil {
		m.PosterURL = *p.PosterURL
	}
	if p.RuntimeMinutes != nil {
		m.RuntimeMinutes = *p.RuntimeMinutes
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}

// MovieFilter narrows ListMovies. Empty fields match everything; set fields
// are ANDed together.
type MovieFilter struct {
	Genre  string
	Status string
}
