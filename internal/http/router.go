package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.POST("/reservations", handler.createReservation)
		protected.GET("/reservations/mine", handler.listMyReservations)
		protected.PUT("/reservations/:id/cancel", handler.cancelReservation)
		protected.PUT("/reservations/:id/reject", handler.rejectReservation)

		protected.GET("/dispatch/queue", handler.listQueue)
		protected.GET("/dispatch/queue/:id/candidates", handler.listCandidates)
		protected.POST("/dispatch/assignments", handler.commitAssignment)
		protected.GET("/dispatch/assignments", handler.listAssigned)
		protected.PUT("/dispatch/assignments/:id/complete", handler.completeDispatch)
		protected.PUT("/dispatch/assignments/:id/cancel", handler.cancelDispatch)
		protected.GET("/dispatch/drivers/schedule", handler.listDriverSchedules)
	}

	return router
}
