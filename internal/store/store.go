// Package store is the in-process data store backing every storefront
// screen. It owns the entity tables, enforces seat-availability and booking
// invariants under a single lock, and publishes a typed event after each
// successful mutation — always after the lock is released, so a slow viewer
// connection can never stall a mutation.
package store

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"cinefront/internal/events"
	"cinefront/internal/logger"
	"cinefront/internal/models"
	"cinefront/internal/qr"
)

// Kinds handed to the Persistence Bridge.
const (
	KindContactInfo  = "contactInfo"
	KindSiteSettings = "siteSettings"
)

// Publisher receives an event after every successful mutation.
type Publisher interface {
	Publish(evt events.Event)
}

// Bridge mirrors singleton records to durable storage. Calls are best
// effort: a failure is logged and never rolls back the in-memory mutation.
type Bridge interface {
	Save(kind string, value any) error
}

type Options struct {
	Publisher Publisher
	Bridge    Bridge
	Logger    *logger.Logger
	QR        *qr.Generator // optional; bookings get no QR code when nil
}

// Store holds all entity tables. One RWMutex guards them: booking creation
// must touch the bookings table and the showtime ledger in a single critical
// section, so coarser-than-per-entity locking is the correct granularity.
type Store struct {
	mu        sync.RWMutex
	movies    map[int64]*models.Movie
	theaters  map[int64]*models.Theater
	showtimes map[int64]*models.Showtime
	bookings  map[int64]*models.Booking
	users     map[int64]*models.User

	// usernames maps lowercased username to user ID for case-consistent
	// lookup and uniqueness checks.
	usernames map[string]int64

	// seats maps showtime ID -> seat label -> owning booking ID, so two
	// bookings can never claim the same label.
	seats map[int64]map[string]int64

	contact  models.ContactInfo
	settings models.SiteSettings

	// Sequences are monotonically increasing and never reused after delete.
	movieSeq    int64
	theaterSeq  int64
	showtimeSeq int64
	bookingSeq  int64
	userSeq     int64

	publisher Publisher
	bridge    Bridge
	log       *logger.Logger
	qr        *qr.Generator
	validate  *validator.Validate
}

func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		movies:    make(map[int64]*models.Movie),
		theaters:  make(map[int64]*models.Theater),
		showtimes: make(map[int64]*models.Showtime),
		bookings:  make(map[int64]*models.Booking),
		users:     make(map[int64]*models.User),
		usernames: make(map[string]int64),
		seats:     make(map[int64]map[string]int64),
		publisher: opts.Publisher,
		bridge:    opts.Bridge,
		log:       log,
		qr:        opts.QR,
		validate:  validator.New(),
	}
}

// publishChange emits an entity mutation event. Callers must not hold s.mu.
func (s *Store) publishChange(evtType, entity string, record any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{
		Type: evtType,
		Data: events.EntityChange{Entity: entity, Record: record},
	})
}

// publish emits a non-entity event such as contactUpdated.
func (s *Store) publish(evtType string, data any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: evtType, Data: data})
}

// mirror hands a singleton to the Persistence Bridge. The in-memory copy is
// the source of truth for the running process, so a bridge failure is only
// logged.
func (s *Store) mirror(kind string, value any) {
	if s.bridge == nil {
		return
	}
	if err := s.bridge.Save(kind, value); err != nil {
		s.log.Error("BRIDGE", fmt.Sprintf("save %s failed, in-memory copy unaffected: %v", kind, err))
	}
}

func (s *Store) checkStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
