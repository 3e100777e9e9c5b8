package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/services"
	"smarttravel/pkg/utils"
)

type FlightController struct {
	flightService services.FlightServiceInterface
}

func NewFlightController(flightService services.FlightServiceInterface) *FlightController {
	return &FlightController{
		flightService: flightService,
	}
}

func (f *FlightController) SearchFlights(c *gin.Context) {
	var req request_models.FlightSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from, to and date are required")
		return
	}

	result, err := f.flightService.SearchFlights(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Flights fetched successfully")
}
