package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"cinefront/internal/events"
	"cinefront/internal/models"
	"cinefront/internal/qr"
	"cinefront/internal/store"
)

func testQRGenerator() *qr.Generator {
	return qr.NewGenerator("test-secret")
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(evt events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) all() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func (p *recordingPublisher) byType(evtType string) []events.Event {
	return lo.Filter(p.all(), func(e events.Event, _ int) bool { return e.Type == evtType })
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type bridgeSave struct {
	kind  string
	value any
}

// recordingBridge captures Save calls and can be told to fail.
type recordingBridge struct {
	mu       sync.Mutex
	saves    []bridgeSave
	failWith error
}

func (b *recordingBridge) Save(kind string, value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.saves = append(b.saves, bridgeSave{kind: kind, value: value})
	return nil
}

func (b *recordingBridge) all() []bridgeSave {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]bridgeSave(nil), b.saves...)
}

func newTestStore(t *testing.T) (*store.Store, *recordingPublisher, *recordingBridge) {
	t.Helper()
	pub := &recordingPublisher{}
	bridge := &recordingBridge{}
	st := store.New(store.Options{Publisher: pub, Bridge: bridge})
	return st, pub, bridge
}

func seedMovie(t *testing.T, st *store.Store) *models.Movie {
	t.Helper()
	m, err := st.CreateMovie(models.Movie{
		Title:          "Interstellar",
		Genres:         []string{"sci-fi", "drama"},
		RuntimeMinutes: 169,
		Status:         "now_showing",
	})
	require.NoError(t, err)
	return m
}

func seedTheater(t *testing.T, st *store.Store) *models.Theater {
	t.Helper()
	th, err := st.CreateTheater(models.Theater{
		Name:     "Grand Hall",
		Location: "Downtown",
		Capacity: 120,
	})
	require.NoError(t, err)
	return th
}

func seedShowtime(t *testing.T, st *store.Store, totalSeats int) *models.Showtime {
	t.Helper()
	mv := seedMovie(t, st)
	th := seedTheater(t, st)
	sh, err := st.CreateShowtime(models.Showtime{
		MovieID:      mv.ID,
		TheaterID:    th.ID,
		Date:         "2026-09-01",
		Time:         "19:30",
		PriceRegular: 10,
		PriceVIP:     18,
		TotalSeats:   totalSeats,
	})
	require.NoError(t, err)
	return sh
}

func seedUser(t *testing.T, st *store.Store, username string) *models.User {
	t.Helper()
	u, err := st.CreateUser(models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test User",
	})
	require.NoError(t, err)
	return u
}

func bookingFor(user *models.User, showtimeID int64, seats ...string) models.Booking {
	return models.Booking{
		UserID:        user.ID,
		ShowtimeID:    showtimeID,
		SeatLabels:    seats,
		CustomerName:  "Jamie Doe",
		CustomerEmail: "jamie@example.com",
		CustomerPhone: "555-0101",
		PaymentMethod: "card",
	}
}

func requireIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "expected %v, got %v", target, err)
}
