package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/tinci/internal/database"
	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/tools"
)

// HealthHandler reports the loaded corpus size. When db is not nil the
// snapshot connection is checked as well.
func HealthHandler(svc *tools.Service, db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB.DB()
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "failed to get database connection",
				})
				return
			}

			if err := sqlDB.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "database connection failed",
				})
				return
			}
		}

		finals, entries := svc.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"finals":  finals,
			"entries": entries,
		})
	}
}

// StatsHandler returns snapshot statistics
func StatsHandler(repo database.RepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.GetStatistics()
		if err != nil {
			respondError(c, apperr.Internal("failed to get statistics"))
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
