package models

// SiteSettings is the second bridge-mirrored singleton, same contract as
// ContactInfo.
type SiteSettings struct {
	SiteName        string  `json:"site_name"`
	Currency        string  `json:"currency"`
	BookingFee      float64 `json:"booking_fee"`
	MaintenanceMode bool    `json:"maintenance_mode"`
}

type SiteSettingsPatch struct {
	SiteName        *string  `json:"site_name"`
	Currency        *string  `json:"currency"`
	BookingFee      *float64 `json:"booking_fee"`
	MaintenanceMode *bool    `json:"maintenance_mode"`
}

func (p SiteSettingsPatch) Apply(s *SiteSettings) {
	if p.SiteName != nil {
		s.SiteName = *p.SiteName
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.BookingFee != nil {
		s.BookingFee = *p.BookingFee
	}
	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}
}
