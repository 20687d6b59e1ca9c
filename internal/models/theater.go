package models

import "time"

type Theater struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required"`
	Location   string    `json:"location" validate:"required"`
	Capacity   int       `json:"capacity" validate:"gte=0"`
	Facilities []string  `json:"facilities"`
	LogoURL    string    `json:"logo_url"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t Theater) Clone() Theater {
	c := t
	c.Facilities = append([]string(nil), t.Facilities...)
	return c
}

type TheaterPatch struct {
	Name       *string   `json:"name"`
	Location   *string   `json:"location"`
	Capacity   *int      `json:"capacity"`
	Facilities *[]string `json:"facilities"`
	LogoURL    *string   `json:"logo_url"`
	Status     *string   `json:"status"`
}

func (p TheaterPatch) Apply(t *Theater) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Facilities != nil {
		t.Facilities = append([]string(nil), *p.Facilities...)
	}
	if p.LogoURL != nil {
		t.LogoURL = *p.LogoURL
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

type TheaterFilter struct {
	Status string
}
