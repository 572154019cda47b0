package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinetick-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestSession)

	r.Get("/health", app.GetHealth)

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{movieId}/showtimes", app.GetMovieShowtimes)

	r.Route("/showtimes/{showtimeId}", func(r chi.Router) {
		r.Get("/seats", app.GetSeatMapByShowtime)

		r.Route("/selection", func(r chi.Router) {
			r.Post("/", app.StartSelection)
			r.Get("/", app.GetSelection)
			r.Delete("/", app.CancelSelection)
			r.Post("/seats", app.ToggleSeat)
		})

		r.Post("/checkout", app.Checkout)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", app.GetUserBookings)
		r.Get("/{bookingId}", app.GetUserBookingById)
		r.Delete("/{bookingId}", app.CancelBooking)
	})

	return r
}
