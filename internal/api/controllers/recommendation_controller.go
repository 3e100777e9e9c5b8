package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
	"smarttravel/internal/services"
	"smarttravel/pkg/utils"
)

type RecommendationController struct {
	itineraryService services.ItineraryServiceInterface
	now              func() time.Time
}

func NewRecommendationController(itineraryService services.ItineraryServiceInterface) *RecommendationController {
	return &RecommendationController{
		itineraryService: itineraryService,
		now:              time.Now,
	}
}

func (r *RecommendationController) CreateRecommendation(c *gin.Context) {
	req := request_models.NewTripRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	req.FillEmptyLists()

	if req.UserID == "" {
		req.UserID = c.GetString("user_id")
	}

	tour, err := r.itineraryService.GenerateTour(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Tour generated successfully"
	if tour.GeneratedBy == response_models.GeneratedByFallback {
		message = "Tour generated from fallback itinerary"
	}
	data := response_models.NewRecommendationData(tour, req.CurrentDay, r.now().Format("2006-01-02 15:04:05"))
	utils.RespondSuccess(c, data, message)
}
