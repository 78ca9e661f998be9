package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/postbox-app/postbox-be/internal/api/handlers"
	"github.com/postbox-app/postbox-be/internal/auth"
	"github.com/postbox-app/postbox-be/internal/cache"
	"github.com/postbox-app/postbox-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	eventService services.AuthEventServiceProvider,
	tokenService *auth.TokenService,
	postCache *cache.PostCache,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, eventService, tokenService)
	postHandler := handlers.NewPostHandler(postService, postCache)

	// Public endpoints
	r.Post("/signup/", authHandler.Signup)
	r.Post("/login/", authHandler.Login)

	// Endpoints requiring a bearer token
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(tokenService, userService))

		r.Post("/addPost/", postHandler.AddPost)
		r.Get("/getPosts/", postHandler.GetPosts)
		r.Delete("/deletePost/", postHandler.DeletePost)
	})

	return r
}
