package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/tinci/internal/api/middleware"
	"github.com/palemoky/tinci/internal/api/rest/handler"
	"github.com/palemoky/tinci/internal/config"
	"github.com/palemoky/tinci/internal/database"
	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/tools"
)

// SetupRouter sets up the Gin router with all routes. db and repo are nil
// unless the corpus was loaded from a SQLite snapshot.
func SetupRouter(cfg *config.Config, svc *tools.Service, db *database.DB, repo database.RepositoryInterface) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	log := logger.Named("api")
	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	// CORS middleware
	router.Use(middleware.CORS())

	// Rate limiting middleware
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware())
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.HealthHandler(svc, db))
		if repo != nil {
			v1.GET("/stats", handler.StatsHandler(repo))
		}

		lookup := handler.NewLookupHandler(svc)
		v1.GET("/jyutping", lookup.Jyutping)
		v1.GET("/tone-pattern", lookup.TonePattern)
		v1.GET("/rhymes", lookup.Rhymes)
		v1.GET("/finals", lookup.Finals)
		v1.GET("/finals/:final", lookup.CharactersByFinal)
		v1.GET("/tone-systems", lookup.ToneSystems)

		toolsHandler := handler.NewToolsHandler(svc)
		v1.GET("/tools", toolsHandler.List)
		v1.POST("/tools/:name", toolsHandler.Call)
	}

	router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, errNoRoute)
	})

	return router
}

var errNoRoute = apperr.NotFound("route")
