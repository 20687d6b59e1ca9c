// Package api is the thin HTTP surface over the store. It parses requests,
// translates store errors to status codes, and shapes JSON responses; all
// invariants live in the store.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinefront/internal/logger"
	"cinefront/internal/models"
	"cinefront/internal/store"
)

type Handler struct {
	Store  *store.Store
	Logger *logger.Logger
}

func NewHandler(st *store.Store, log *logger.Logger) *Handler {
	return &Handler{Store: st, Logger: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrValidation),
		errors.Is(err, store.ErrInsufficientSeats),
		errors.Is(err, store.ErrDuplicateUsername),
		errors.Is(err, store.ErrSeatConflict):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("API", err.Error())
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", store.ErrValidation, param)
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", store.ErrValidation, err)
	}
	return nil
}

// ---------------- MOVIES ----------------

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "movieId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	m := h.Store.GetMovie(id)
	if m == nil {
		h.writeError(w, fmt.Errorf("movie %d: %w", id, store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	filter := models.MovieFilter{
		Genre:  r.URL.Query().Get("genre"),
		Status: r.URL.Query().Get("status"),
	}
	writeJSON(w, http.StatusOK, h.Store.ListMovies(filter))
}

func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var m models.Movie
	if err := decode(r, &m); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Store.CreateMovie(m)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "movieId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var patch models.MoviePatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateMovie(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "movieId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Deleting a missing ID is "nothing to delete", not an error.
	h.Store.DeleteMovie(id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- THEATERS ----------------

func (h *Handler) ListTheaters(w http.ResponseWriter, r *http.Request) {
	filter := models.TheaterFilter{Status: r.URL.Query().Get("status")}
	writeJSON(w, http.StatusOK, h.Store.ListTheaters(filter))
}

func (h *Handler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var t models.Theater
	if err := decode(r, &t); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Store.CreateTheater(t)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "theaterId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var patch models.TheaterPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateTheater(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "theaterId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Store.DeleteTheater(id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- SHOWTIMES ----------------

func (h *Handler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "showtimeId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	st := h.Store.GetShowtime(id)
	if st == nil {
		h.writeError(w, fmt.Errorf("showtime %d: %w", id, store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ShowtimeFilter{Date: q.Get("date")}
	if v := q.Get("movie_id"); v != "" {
		filter.MovieID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := q.Get("theater_id"); v != "" {
		filter.TheaterID, _ = strconv.ParseInt(v, 10, 64)
	}
	writeJSON(w, http.StatusOK, h.Store.ListShowtimes(filter))
}

func (h *Handler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var st models.Showtime
	if err := decode(r, &st); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Store.CreateShowtime(st)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "showtimeId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var patch models.ShowtimePatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateShowtime(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ---------------- BOOKINGS ----------------

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "bookingId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	b := h.Store.GetBooking(id)
	if b == nil {
		h.writeError(w, fmt.Errorf("booking %d: %w", id, store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BookingFilter{
		Status: q.Get("status"),
		Date:   q.Get("date"),
	}
	if v := q.Get("user_id"); v != "" {
		filter.UserID, _ = strconv.ParseInt(v, 10, 64)
	}
	writeJSON(w, http.StatusOK, h.Store.ListBookings(filter))
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var b models.Booking
	if err := decode(r, &b); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Store.CreateBooking(b)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "bookingId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var patch models.BookingPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateBooking(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ---------------- USERS ----------------

func (h *Handler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	u := h.Store.GetUserByUsername(username)
	if u == nil {
		h.writeError(w, fmt.Errorf("user %q: %w", username, store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.UserFilter{
		Role:   q.Get("role"),
		Status: q.Get("status"),
	}
	writeJSON(w, http.StatusOK, h.Store.ListUsers(filter))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := decode(r, &u); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Store.CreateUser(u)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ---------------- CONTACT / SETTINGS / STATS ----------------

func (h *Handler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ContactInfo())
}

func (h *Handler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	var patch models.ContactInfoPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateContactInfo(patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.SiteSettings())
}

func (h *Handler) UpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SiteSettingsPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Store.UpdateSiteSettings(patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Stats())
}
