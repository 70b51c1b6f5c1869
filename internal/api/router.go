package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devsync-backend/internal/api/handlers"
	"devsync-backend/internal/auth"
	"devsync-backend/internal/metrics"
	"devsync-backend/internal/services"
	"devsync-backend/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	graphService services.GraphServiceProvider,
	postService services.PostServiceProvider,
	activityService services.ActivityServiceProvider,
	m *metrics.Metrics,
	corsOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, graphService, m)
	postHandler := handlers.NewPostHandler(postService, m)
	activityHandler := handlers.NewActivityHandler(activityService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a verified identity
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/ws", wsHandler.Serve)
			r.Get("/activity", activityHandler.GetRecent)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/me", userHandler.GetMe)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Put("/connect/{id}", userHandler.Connect)
				r.Put("/disconnect/{id}", userHandler.Disconnect)
				r.Get("/{id}", userHandler.Get)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postHandler.GetAll)
				r.Post("/", postHandler.Create)
				r.Put("/like/{id}", postHandler.Like)
				r.Put("/unlike/{id}", postHandler.Unlike)
				r.Post("/comment/{id}", postHandler.AddComment)
				r.Delete("/comment/{id}/{commentId}", postHandler.DeleteComment)
				r.Get("/{id}", postHandler.Get)
				r.Delete("/{id}", postHandler.Delete)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
