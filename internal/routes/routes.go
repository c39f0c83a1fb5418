package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"BLOG_BACK-END/internal/config"
	"BLOG_BACK-END/internal/dto"
	"BLOG_BACK-END/internal/handlers"
	"BLOG_BACK-END/internal/logger"
	"BLOG_BACK-END/internal/middleware"
	"BLOG_BACK-END/internal/utils"
)

// Setup configures all application routes
func Setup(
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	healthHandler *handlers.HealthHandler,
	jwtCfg *config.JWTConfig,
	log *logger.Logger,
) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recover(log))
	router.Use(middleware.Logging(log))

	// Root route
	router.Get("/", rootHandler)

	// Health check routes
	router.Get("/healthz", healthHandler.HealthCheck)
	router.Get("/livez", healthHandler.LivenessCheck)
	router.Get("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtCfg))
			r.Post("/signout", authHandler.SignOut)
			r.Get("/profile", authHandler.Profile)
		})
	})

	// Post routes
	router.Route("/api/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Get("/{id}", postHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtCfg))
			r.Post("/", postHandler.Create)
			r.Put("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
		})
	})

	// Swagger UI
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Route not found", "")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	return router
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.RootResponse{
		Message:   "API is running",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
