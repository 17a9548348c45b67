package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200
// @Router       /ping [get]
func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
