package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes mounts every JSON endpoint. When requireAuth is set the
// profile and project mutations go behind the token middleware;
// login/register stay open either way.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, requireAuth bool) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.check())

		// Auth endpoints
		r.Post("/api/login", handlers.authHandler.login())
		r.Post("/api/register", handlers.authHandler.register())

		// Student endpoints
		r.Get("/api/students/search", handlers.studentHandler.searchStudents())
		r.Get("/api/profile/{userID}", handlers.studentHandler.getProfile())
		r.Get("/api/institutes", handlers.studentHandler.getInstitutes())
		r.Get("/api/skills/search", handlers.studentHandler.searchSkills())
		r.Get("/api/branches", handlers.studentHandler.getBranches())
		r.Get("/api/users/search", handlers.studentHandler.searchUsers())

		// Project endpoints
		r.Get("/api/projects", handlers.projectHandler.getProjects())
		r.Get("/api/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/api/tools/search", handlers.projectHandler.searchTools())
		r.Get("/api/projects/search", handlers.projectHandler.searchProjects())

		// Mutations, token-protected when enabled
		r.Group(func(r chi.Router) {
			if requireAuth {
				r.Use(authMiddleware.authenticate)
			}
			r.Post("/api/profile/{userID}", handlers.studentHandler.updateProfile())
			r.Post("/api/projects/create", handlers.projectHandler.createProject())
		})
	})
}

// setupStaticRoutes serves the front-end assets. The root path serves
// the login page; everything not matched by an API route falls through
// to the file server.
func setupStaticRoutes(r chi.Router, staticDir string) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(staticDir, "login.html"))
	})
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))
}
