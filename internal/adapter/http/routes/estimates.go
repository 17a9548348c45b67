package routes

import (
	"furniture_estimates/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathAdmin     = "/admin"
)

type Handlers struct {
	Estimates *handlers.EstimateHandler
	Payments  *handlers.EstimatePaymentHandler
	Events    *handlers.EventsHandler
}

func addEstimateRoutes(rg *gin.RouterGroup, h Handlers) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", h.Estimates.CreateEstimate)
		estimates.GET("", h.Estimates.ListMine)
		estimates.GET("/:id", h.Estimates.GetByID)
		estimates.POST("/:id/payments", h.Payments.CreateDeposit)
		estimates.GET("/:id/payments", h.Payments.ListByEstimate)
	}
}

func addEventRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.GET(PathEstimates+"/events", h.Events.Stream)
}

func addAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", h.Estimates.AdminList)
		estimates.PATCH("/:id", h.Estimates.AdminUpdateStatus)
	}
}
