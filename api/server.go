package api

import (
	"github.com/gin-gonic/gin"

	"reelforge/jobs"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(m *jobs.Manager) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterJobRoutes(r, m)
	return r
}
