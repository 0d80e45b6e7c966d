package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jogoraa/Woliso-Rentals/internal/admin"
	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/auth"
	"github.com/Jogoraa/Woliso-Rentals/internal/booking"
	"github.com/Jogoraa/Woliso-Rentals/internal/catalog"
	"github.com/Jogoraa/Woliso-Rentals/internal/feedback"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
	"github.com/Jogoraa/Woliso-Rentals/internal/payment"
	"github.com/Jogoraa/Woliso-Rentals/internal/saved"
	"github.com/Jogoraa/Woliso-Rentals/internal/user"
	"github.com/Jogoraa/Woliso-Rentals/pkg/chapa"
	"github.com/Jogoraa/Woliso-Rentals/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	housesRepo := house.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)
	feedbacksRepo := feedback.NewRepository(deps.DB)
	savedRepo := saved.NewRepository(deps.DB)
	catalogRepo := catalog.NewRepository(deps.DB)
	paymentsRepo := payment.NewRepository(deps.DB)

	tokens := auth.NewTokenManager(deps.Cfg.JWTSecret)
	gateway := chapa.Client{
		BaseURL:   deps.Cfg.Chapa.BaseURL,
		SecretKey: deps.Cfg.Chapa.SecretKey,
	}

	authHandlers := auth.Handlers{Users: usersRepo, Tokens: tokens}
	houseHandlers := house.Handlers{Houses: housesRepo}
	bookingHandlers := booking.Handlers{DB: deps.DB, Bookings: bookingsRepo}
	feedbackHandlers := feedback.Handlers{Feedbacks: feedbacksRepo, Houses: housesRepo}
	savedHandlers := saved.Handlers{Saved: savedRepo, Houses: housesRepo}
	catalogHandlers := catalog.Handlers{Catalog: catalogRepo}
	paymentHandlers := payment.Handlers{Cfg: deps.Cfg, DB: deps.DB, Gateway: gateway, Payments: paymentsRepo}
	adminHandlers := admin.Handlers{DB: deps.DB, Users: usersRepo, Houses: housesRepo, Bookings: bookingsRepo}

	r.Route("/api", func(r chi.Router) {
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAgeSeconds:  600,
		}))

		// Public
		r.Post("/auth/register", authHandlers.Register)
		r.Post("/auth/login", authHandlers.Login)
		// Optional auth: admins may filter by non-public statuses.
		r.With(api.OptionalAuth(tokens, usersRepo)).Get("/houses", houseHandlers.List)
		r.Get("/houses/{id}", houseHandlers.Get)
		r.Get("/houses/{id}/feedback", feedbackHandlers.ListForHouse)
		r.Get("/catalog/houses", catalogHandlers.List)

		// Authenticated (any role)
		r.Group(func(r chi.Router) {
			r.Use(api.BearerAuth(tokens, usersRepo))

			r.Get("/auth/me", authHandlers.Me)
			r.Get("/payment/verify/{tx_ref}", paymentHandlers.Verify)

			// Tenant
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleTenant))

				r.Post("/bookings", bookingHandlers.Create)
				r.Get("/bookings/my-requests", bookingHandlers.MyRequests)
				r.Post("/feedback", feedbackHandlers.Create)
				r.Post("/payment/initialize", paymentHandlers.Initialize)
				r.Post("/tenant/save-house/{id}", savedHandlers.Toggle)
				r.Get("/tenant/saved-houses", savedHandlers.List)
			})

			// Landlord
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleLandlord))

				r.Post("/houses", houseHandlers.Create)
				r.Put("/houses/{id}", houseHandlers.Update)
				r.Delete("/houses/{id}", houseHandlers.Delete)
				r.Post("/houses/{id}/photos", houseHandlers.AddPhotos)
				r.Get("/my-houses", houseHandlers.MyHouses)
				r.Get("/bookings/received", bookingHandlers.Received)
				r.Put("/bookings/{id}", bookingHandlers.Decide)
			})

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleAdmin))

				r.Get("/stats", adminHandlers.Stats)
				r.Get("/pending-houses", adminHandlers.PendingHouses)
				r.Put("/houses/{id}/status", adminHandlers.SetHouseStatus)
				r.Get("/users", adminHandlers.ListUsers)
			})
		})
	})

	return r
}
