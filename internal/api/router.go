package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/internhq/internhub-be/internal/api/handlers"
	"github.com/internhq/internhub-be/internal/auth"
	"github.com/internhq/internhub-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenService,
	uploadDir string,
	userService services.UserServiceProvider,
	internService services.InternServiceProvider,
	taskService services.TaskServiceProvider,
	notificationService services.NotificationServiceProvider,
	analyticsService services.AnalyticsServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	internHandler := handlers.NewInternHandler(internService)
	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Uploaded avatars are served as static files.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", userHandler.Login)
		r.Post("/auth/register", userHandler.Register)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware(userService))

			r.Route("/interns", func(r chi.Router) {
				r.Get("/", internHandler.List)
				r.Post("/", internHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", internHandler.Get)
					r.Put("/", internHandler.Update)
					r.Delete("/", internHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/intern/{internID}", taskHandler.ListForIntern)
				r.Post("/", taskHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Put("/", taskHandler.Update)
					r.Delete("/", taskHandler.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.GetAll)
				r.Get("/profile", userHandler.GetProfile)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Post("/profile/avatar", userHandler.UploadAvatar)
				r.Get("/{id}", userHandler.Get)
				r.Delete("/{id}", userHandler.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.Stats)
				r.Get("/departments", dashboardHandler.Departments)
				r.Get("/recent-activities", dashboardHandler.RecentActivities)
				r.Get("/top-performers", dashboardHandler.TopPerformers)
			})

			r.Get("/analytics", analyticsHandler.Get)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.GetAll)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Put("/mark-all-read", notificationHandler.MarkAllRead)
				r.Put("/{id}/read", notificationHandler.MarkRead)
			})
		})
	})

	return r
}
