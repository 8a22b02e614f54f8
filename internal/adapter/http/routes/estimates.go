package routes

import (
	"evergreen_estimator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, voiceHandler *handlers.VoiceHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PATCH("/:id", estimateHandler.UpdateDetails)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

		estimates.PATCH("/:id/scope", estimateHandler.UpdateScope)

		estimates.POST("/:id/line-items", estimateHandler.AddLineItem)
		estimates.PATCH("/:id/line-items/:itemID", estimateHandler.UpdateLineItem)
		estimates.DELETE("/:id/line-items/:itemID", estimateHandler.DeleteLineItem)

		estimates.POST("/:id/allocations", estimateHandler.AddAllocation)
		estimates.PATCH("/:id/allocations/:allocationID", estimateHandler.UpdateAllocation)
		estimates.DELETE("/:id/allocations/:allocationID", estimateHandler.DeleteAllocation)

		estimates.GET("/:id/validation", estimateHandler.GetValidation)
		estimates.GET("/:id/export", estimateHandler.ExportPDF)

		estimates.POST("/:id/voice", voiceHandler.ProcessClip)
	}
}
