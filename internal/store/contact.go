package store

import (
	"fmt"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

func (s *Store) ContactInfo() models.ContactInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contact
}

// UpdateContactInfo merges the patch into the singleton. Phone, email and
// address must be non-empty after the merge. On success the new value is
// published and handed to the Persistence Bridge.
func (s *Store) UpdateContactInfo(patch models.ContactInfoPatch) (*models.ContactInfo, error) {
	s.mu.Lock()
	merged := s.contact
	patch.Apply(&merged)
	if merged.Phone == "" || merged.Email == "" || merged.Address == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: phone, email and address are required", ErrValidation)
	}
	s.contact = merged
	s.mu.Unlock()

	s.publish(events.TypeContactUpdated, merged)
	s.mirror(KindContactInfo, merged)
	return &merged, nil
}

// RestoreContactInfo seeds the singleton from the durable mirror at boot.
// No event, no bridge call.
func (s *Store) RestoreContactInfo(ci models.ContactInfo) {
	s.mu.Lock()
	s.contact = ci
	s.mu.Unlock()
}

func (s *Store) SiteSettings() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) UpdateSiteSettings(patch models.SiteSettingsPatch) (*models.SiteSettings, error) {
	s.mu.Lock()
	merged := s.settings
	patch.Apply(&merged)
	if merged.SiteName == "" || merged.Currency == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: site name and currency are required", ErrValidation)
	}
	s.settings = merged
	s.mu.Unlock()

	s.publish(events.TypeSettingsUpdated, merged)
	s.mirror(KindSiteSettings, merged)
	return &merged, nil
}

func (s *Store) RestoreSiteSettings(st models.SiteSettings) {
	s.mu.Lock()
	s.settings = st
	s.mu.Unlock()
}
