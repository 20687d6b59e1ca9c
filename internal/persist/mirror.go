// Package persist implements the store's Persistence Bridge on sqlite via
// bun. It holds a durable mirror of the singleton records only; the live
// copy stays in the store.
package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"cinefront/internal/logger"
	"cinefront/internal/models"
	"cinefront/internal/store"
)

type contactRow struct {
	bun.BaseModel `bun:"table:contact_info"`

	ID          int64     `bun:"id,pk"`
	Phone       string    `bun:"phone"`
	Email       string    `bun:"email"`
	Address     string    `bun:"address"`
	Facebook    string    `bun:"facebook"`
	Instagram   string    `bun:"instagram"`
	Twitter     string    `bun:"twitter"`
	Description string    `bun:"description"`
	UpdatedAt   time.Time `bun:"updated_at"`
}

type settingsRow struct {
	bun.BaseModel `bun:"table:site_settings"`

	ID              int64     `bun:"id,pk"`
	SiteName        string    `bun:"site_name"`
	Currency        string    `bun:"currency"`
	BookingFee      float64   `bun:"booking_fee"`
	MaintenanceMode bool      `bun:"maintenance_mode"`
	UpdatedAt       time.Time `bun:"updated_at"`
}

// Both tables hold exactly one row.
const singletonID = 1

type Mirror struct {
	db  *bun.DB
	log *logger.Logger
}

func NewMirror(db *bun.DB, log *logger.Logger) *Mirror {
	return &Mirror{db: db, log: log}
}

func (m *Mirror) Init(ctx context.Context) error {
	if _, err := m.db.NewCreateTable().Model((*contactRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create contact_info table: %w", err)
	}
	if _, err := m.db.NewCreateTable().Model((*settingsRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create site_settings table: %w", err)
	}
	return nil
}

// Save mirrors the given singleton. Errors are logged here and returned;
// the store treats them as best-effort and never rolls back.
func (m *Mirror) Save(kind string, value any) error {
	ctx := context.Background()

	var err error
	switch kind {
	case store.KindContactInfo:
		ci, ok := value.(models.ContactInfo)
		if !ok {
			err = fmt.Errorf("unexpected value type %T for kind %s", value, kind)
			break
		}
		row := contactRow{
			ID:          singletonID,
			Phone:       ci.Phone,
			Email:       ci.Email,
			Address:     ci.Address,
			Facebook:    ci.Facebook,
			Instagram:   ci.Instagram,
			Twitter:     ci.Twitter,
			Description: ci.Description,
			UpdatedAt:   time.Now().UTC(),
		}
		_, err = m.db.NewInsert().Model(&row).
			On("CONFLICT (id) DO UPDATE").
			Set("phone = EXCLUDED.phone").
			Set("email = EXCLUDED.email").
			Set("address = EXCLUDED.address").
			Set("facebook = EXCLUDED.facebook").
			Set("instagram = EXCLUDED.instagram").
			Set("twitter = EXCLUDED.twitter").
			Set("description = EXCLUDED.description").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)

	case store.KindSiteSettings:
		st, ok := value.(models.SiteSettings)
		if !ok {
			err = fmt.Errorf("unexpected value type %T for kind %s", value, kind)
			break
		}
		row := settingsRow{
			ID:              singletonID,
			SiteName:        st.SiteName,
			Currency:        st.Currency,
			BookingFee:      st.BookingFee,
			MaintenanceMode: st.MaintenanceMode,
			UpdatedAt:       time.Now().UTC(),
		}
		_, err = m.db.NewInsert().Model(&row).
			On("CONFLICT (id) DO UPDATE").
			Set("site_name = EXCLUDED.site_name").
			Set("currency = EXCLUDED.currency").
			Set("booking_fee = EXCLUDED.booking_fee").
			Set("maintenance_mode = EXCLUDED.maintenance_mode").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)

	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}

	if err != nil {
		m.log.Error("BRIDGE", fmt.Sprintf("save %s: %v", kind, err))
		return err
	}
	m.log.LogBridge(kind, "mirrored to sqlite")
	return nil
}

// LoadContact returns the mirrored contact info, or nil when nothing has
// been saved yet.
func (m *Mirror) LoadContact(ctx context.Context) (*models.ContactInfo, error) {
	var row contactRow
	err := m.db.NewSelect().Model(&row).Where("id = ?", singletonID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.ContactInfo{
		Phone:       row.Phone,
		Email:       row.Email,
		Address:     row.Address,
		Facebook:    row.Facebook,
		Instagram:   row.Instagram,
		Twitter:     row.Twitter,
		Description: row.Description,
	}, nil
}

func (m *Mirror) LoadSettings(ctx context.Context) (*models.SiteSettings, error) {
	var row settingsRow
	err := m.db.NewSelect().Model(&row).Where("id = ?", singletonID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.SiteSettings{
		SiteName:        row.SiteName,
		Currency:        row.Currency,
		BookingFee:      row.BookingFee,
		MaintenanceMode: row.MaintenanceMode,
	}, nil
}
