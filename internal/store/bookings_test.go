package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinefront/internal/events"
	"cinefront/internal/models"
	"cinefront/internal/store"
)

func TestCreateBookingSnapshotsMovieAndTheater(t *testing.T) {
	st, pub, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")
	pub.reset()

	b, err := st.CreateBooking(bookingFor(user, sh.ID, "A1", "A2"))
	require.NoError(t, err)

	assert.Equal(t, sh.MovieID, b.MovieID)
	assert.Equal(t, "Interstellar", b.MovieTitle)
	assert.Equal(t, "Grand Hall", b.TheaterName)
	assert.Equal(t, "2026-09-01", b.ShowDate)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Equal(t, 20.0, b.TotalAmount, "defaults to regular price per seat")

	created := pub.byType(events.TypeCreated)
	require.Len(t, created, 1)

	// Renaming the movie later must not rewrite booking history.
	newTitle := "Renamed"
	_, err = st.UpdateMovie(sh.MovieID, models.MoviePatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", st.GetBooking(b.ID).MovieTitle)
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	st, _, _ := newTestStore(t)
	user := seedUser(t, st, "jamie")

	_, err := st.CreateBooking(bookingFor(user, 999, "A1"))
	requireIs(t, err, store.ErrValidation)
}

func TestCreateBookingRequiresCustomerInfo(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	b := bookingFor(user, sh.ID, "A1")
	b.CustomerEmail = ""
	_, err := st.CreateBooking(b)
	requireIs(t, err, store.ErrValidation)

	// Failed create must not leak reserved seats.
	assert.Equal(t, 10, st.GetShowtime(sh.ID).AvailableSeats)
}

func TestCreateBookingRejectsDuplicateLabelsWithinBooking(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	_, err := st.CreateBooking(bookingFor(user, sh.ID, "A1", "A1"))
	requireIs(t, err, store.ErrValidation)
}

func TestCreateBookingSeatConflict(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")
	other := seedUser(t, st, "sam")

	_, err := st.CreateBooking(bookingFor(user, sh.ID, "A1", "A2"))
	require.NoError(t, err)

	_, err = st.CreateBooking(bookingFor(other, sh.ID, "A2", "A3"))
	requireIs(t, err, store.ErrSeatConflict)

	// The conflicting attempt must not have reserved anything.
	after := st.GetShowtime(sh.ID)
	assert.Equal(t, 8, after.AvailableSeats)
	assert.Equal(t, 2, after.BookedSeats)
}

func TestCancellationFreesSeatLabels(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	b, err := st.CreateBooking(bookingFor(user, sh.ID, "A1"))
	require.NoError(t, err)

	cancelled := models.BookingCancelled
	_, err = st.UpdateBooking(b.ID, models.BookingPatch{Status: &cancelled})
	require.NoError(t, err)

	// The label is free again for someone else.
	_, err = st.CreateBooking(bookingFor(user, sh.ID, "A1"))
	require.NoError(t, err)
}

func TestCancelledBookingCannotBeReinstated(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	b, err := st.CreateBooking(bookingFor(user, sh.ID, "A1"))
	require.NoError(t, err)

	cancelled := models.BookingCancelled
	_, err = st.UpdateBooking(b.ID, models.BookingPatch{Status: &cancelled})
	require.NoError(t, err)

	confirmed := models.BookingConfirmed
	_, err = st.UpdateBooking(b.ID, models.BookingPatch{Status: &confirmed})
	requireIs(t, err, store.ErrValidation)
}

func TestUpdateBookingPaymentStatusOnly(t *testing.T) {
	st, pub, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	b, err := st.CreateBooking(bookingFor(user, sh.ID, "A1"))
	require.NoError(t, err)
	pub.reset()

	paid := models.PaymentPaid
	updated, err := st.UpdateBooking(b.ID, models.BookingPatch{PaymentStatus: &paid})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, updated.Status, "untouched fields preserved")
	assert.Len(t, pub.byType(events.TypeUpdated), 1)

	// Ledger untouched by a payment-status change.
	assert.Equal(t, 9, st.GetShowtime(sh.ID).AvailableSeats)
}

func TestListBookingsFilters(t *testing.T) {
	st, _, _ := newTestStore(t)
	sh := seedShowtime(t, st, 10)
	jamie := seedUser(t, st, "jamie")
	sam := seedUser(t, st, "sam")

	_, err := st.CreateBooking(bookingFor(jamie, sh.ID, "A1"))
	require.NoError(t, err)
	b2, err := st.CreateBooking(bookingFor(sam, sh.ID, "A2"))
	require.NoError(t, err)

	cancelled := models.BookingCancelled
	_, err = st.UpdateBooking(b2.ID, models.BookingPatch{Status: &cancelled})
	require.NoError(t, err)

	got := st.ListBookings(models.BookingFilter{UserID: sam.ID, Status: models.BookingCancelled})
	require.Len(t, got, 1)
	assert.Equal(t, b2.ID, got[0].ID)

	assert.Empty(t, st.ListBookings(models.BookingFilter{UserID: jamie.ID, Status: models.BookingCancelled}))
	assert.Len(t, st.ListBookings(models.BookingFilter{Date: "2026-09-01"}), 2)
}

func TestCreateBookingAttachesQRCode(t *testing.T) {
	pub := &recordingPublisher{}
	st := store.New(store.Options{Publisher: pub, QR: testQRGenerator()})
	sh := seedShowtime(t, st, 10)
	user := seedUser(t, st, "jamie")

	b, err := st.CreateBooking(bookingFor(user, sh.ID, "A1"))
	require.NoError(t, err)
	assert.NotEmpty(t, b.QRCode)
}
