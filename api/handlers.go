package api

import (
	"time"

	"github.com/rpupo63/student-directory-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, jwtSecret []byte, tokenTTL time.Duration, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(db, jwtSecret, tokenTTL),
		studentHandler: newStudentHandler(db),
		projectHandler: newProjectHandler(db),
		healthHandler:  newHealthHandler(startupTime),
	}
}
