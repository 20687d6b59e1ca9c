package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"cinefront/internal/api"
	"cinefront/internal/config"
	"cinefront/internal/events"
	"cinefront/internal/logger"
	"cinefront/internal/persist"
	"cinefront/internal/qr"
	"cinefront/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New()
	defer log.Close()

	ctx := context.Background()

	// --- SQLite mirror (Persistence Bridge) ---
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Mirror.SQLitePath)
	if err != nil {
		log.Fatal("MAIN", fmt.Sprintf("failed to open sqlite mirror: %v", err))
	}
	defer sqldb.Close()

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	mirror := persist.NewMirror(bunDB, log)
	if err := mirror.Init(ctx); err != nil {
		log.Fatal("MAIN", fmt.Sprintf("failed to init sqlite mirror: %v", err))
	}

	// --- Event bus ---
	bus := events.NewBus(cfg.Events.HeartbeatInterval, cfg.Events.BufferSize, log)
	defer bus.Close()

	// --- Store ---
	var qrGen *qr.Generator
	if cfg.QR.Enabled {
		qrGen = qr.NewGenerator(cfg.QR.Secret)
	}
	st := store.New(store.Options{
		Publisher: bus,
		Bridge:    mirror,
		Logger:    log,
		QR:        qrGen,
	})

	// Warm boot: reload the mirrored singletons into the live store.
	if ci, err := mirror.LoadContact(ctx); err != nil {
		log.Warn("MAIN", fmt.Sprintf("could not load mirrored contact info: %v", err))
	} else if ci != nil {
		st.RestoreContactInfo(*ci)
	}
	if settings, err := mirror.LoadSettings(ctx); err != nil {
		log.Warn("MAIN", fmt.Sprintf("could not load mirrored settings: %v", err))
	} else if settings != nil {
		st.RestoreSiteSettings(*settings)
	}

	// --- HTTP surface ---
	handler := api.NewHandler(st, log)
	sseHandler := api.NewSSEHandler(bus, log)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/movies", handler.ListMovies)
		r.Post("/movies", handler.CreateMovie)
		r.Get("/movies/{movieId}", handler.GetMovie)
		r.Put("/movies/{movieId}", handler.UpdateMovie)
		r.Delete("/movies/{movieId}", handler.DeleteMovie)

		r.Get("/theaters", handler.ListTheaters)
		r.Post("/theaters", handler.CreateTheater)
		r.Put("/theaters/{theaterId}", handler.UpdateTheater)
		r.Delete("/theaters/{theaterId}", handler.DeleteTheater)

		r.Get("/showtimes", handler.ListShowtimes)
		r.Post("/showtimes", handler.CreateShowtime)
		r.Get("/showtimes/{showtimeId}", handler.GetShowtime)
		r.Put("/showtimes/{showtimeId}", handler.UpdateShowtime)

		r.Get("/bookings", handler.ListBookings)
		r.Post("/bookings", handler.CreateBooking)
		r.Get("/bookings/{bookingId}", handler.GetBooking)
		r.Put("/bookings/{bookingId}", handler.UpdateBooking)

		r.Get("/users", handler.ListUsers)
		r.Post("/users", handler.CreateUser)
		r.Get("/users/{username}", handler.GetUserByUsername)

		r.Get("/contact", handler.GetContactInfo)
		r.Put("/contact", handler.UpdateContactInfo)
		r.Get("/settings", handler.GetSiteSettings)
		r.Put("/settings", handler.UpdateSiteSettings)

		r.Get("/stats", handler.GetStats)
		r.Get("/events/stream", sseHandler.HandleStream)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("MAIN", fmt.Sprintf("🚀 Storefront service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("MAIN", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("MAIN", "📦 shutdown signal received, cleaning up")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("MAIN", fmt.Sprintf("server forced to shutdown: %v", err))
	}
	log.Info("MAIN", "✅ server exited gracefully")
}
