package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
	"smarttravel/pkg/logger"
	"smarttravel/pkg/metrics"
	"smarttravel/pkg/utils"
)

type pipelineStage string

const (
	stageNormalizing pipelineStage = "normalizing"
	stagePrompting   pipelineStage = "prompting"
	stageGenerating  pipelineStage = "generating"
	stageParsing     pipelineStage = "parsing"
	stageEnforcing   pipelineStage = "enforcing"
	stageDone        pipelineStage = "done"
	stageFallback    pipelineStage = "fallback"
	stageFailed      pipelineStage = "failed"
)

const outcomeFailed = "failed"

type ItineraryServiceInterface interface {
	GenerateTour(ctx context.Context, req request_models.TripRequest) (response_models.TourResult, error)
}

type ItineraryService struct {
	generator utils.GenerationClientInterface
	enforcer  *TransportEnforcer
	log       *zap.Logger
	now       func() time.Time
}

func NewItineraryService(
	generator utils.GenerationClientInterface,
	enforcer *TransportEnforcer,
	log *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		generator: generator,
		enforcer:  enforcer,
		log:       log,
		now:       time.Now,
	}
}

// GenerateTour runs the itinerary pipeline. Only missing trip data
// (ErrPrecondition) and unexpected panics (ErrUnhandled) are returned as
// errors; generation and parse failures produce the fallback tour.
func (s *ItineraryService) GenerateTour(ctx context.Context, req request_models.TripRequest) (tour response_models.TourResult, err error) {
	log := logger.For(ctx, s.log)
	stage := stageNormalizing

	defer func() {
		if r := recover(); r != nil {
			log.Error("itinerary pipeline panicked", zap.String("stage", string(stage)), zap.Any("panic", r))
			metrics.RecordItineraryOutcome(outcomeFailed)
			tour, err = response_models.TourResult{}, fmt.Errorf("%w: %v", utils.ErrUnhandled, r)
		}
	}()

	destination := req.DestinationName()
	if destination == "" {
		return s.fail(log, fmt.Errorf("%w: destination_city_name is required", utils.ErrPrecondition))
	}
	if !req.HasCandidates() {
		return s.fail(log, fmt.Errorf("%w: provide at least one of activities, restaurants or hotels", utils.ErrPrecondition))
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = "web_user_" + s.now().Format("20060102_150405")
	}
	trip := tripContext{
		userID:      userID,
		destination: destination,
		days:        max(req.DurationDays, 1),
		guests:      max(req.GuestCount, 1),
		budget:      req.TargetBudget,
	}

	candidates, prefs := NormalizeRequest(req)
	log.Info("itinerary stage",
		zap.String("stage", string(stage)),
		zap.String("destination", destination),
		zap.Int("activities", len(candidates.Activities)),
		zap.Int("restaurants", len(candidates.Restaurants)),
		zap.Int("hotels", len(candidates.Hotels)),
	)

	stage = stagePrompting
	prompt := BuildItineraryPrompt(PromptInput{
		Destination: destination,
		Days:        trip.days,
		Guests:      trip.guests,
		Budget:      trip.budget,
		Candidates:  candidates,
		Preferences: prefs,
	})
	log.Debug("itinerary stage", zap.String("stage", string(stage)), zap.Int("prompt_bytes", len(prompt)))

	stage = stageGenerating
	log.Info("itinerary stage", zap.String("stage", string(stage)), zap.String("provider", s.generator.Provider()))
	started := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	metrics.ObserveGeneration(started, err)
	if err != nil {
		return s.fallback(log, stage, trip, err), nil
	}

	stage = stageParsing
	parsed, err := ParseGeneratedItinerary(text)
	if err != nil {
		return s.fallback(log, stage, trip, err), nil
	}
	if len(parsed.Days) == 0 {
		return s.fallback(log, stage, trip, fmt.Errorf("%w: no days in generated itinerary", utils.ErrParse)), nil
	}

	stage = stageEnforcing
	schedule := s.enforcer.Enforce(parsed.Days, prefs, candidates)
	log.Info("itinerary stage", zap.String("stage", string(stage)), zap.Int("days", len(schedule)))

	tour = response_models.TourResult{
		TourID:             TourID(response_models.GeneratedByModel, trip.userID, trip.destination, trip.days),
		UserID:             trip.userID,
		StartCity:          trip.destination,
		DestinationCity:    trip.destination,
		DurationDays:       trip.days,
		GuestCount:         trip.guests,
		Budget:             trip.budget,
		TotalEstimatedCost: estimatedTotal(parsed, schedule),
		Schedule:           schedule,
		GeneratedBy:        response_models.GeneratedByModel,
		WithinBudget:       parsed.WithinBudget,
		CostBreakdown:      reconciledBreakdown(parsed, schedule),
	}
	if tour.WithinBudget == nil {
		within := trip.budget <= 0 || tour.TotalEstimatedCost <= trip.budget
		tour.WithinBudget = &within
	}

	stage = stageDone
	metrics.RecordItineraryOutcome(response_models.GeneratedByModel)
	log.Info("itinerary stage",
		zap.String("stage", string(stage)),
		zap.String("tour_id", tour.TourID),
		zap.Int("activities", tour.ActivityCount()),
		zap.Float64("total_estimated_cost", tour.TotalEstimatedCost),
	)
	return tour, nil
}

type tripContext struct {
	userID      string
	destination string
	days        int
	guests      int
	budget      float64
}

func (s *ItineraryService) fail(log *zap.Logger, err error) (response_models.TourResult, error) {
	log.Warn("itinerary stage", zap.String("stage", string(stageFailed)), zap.Error(err))
	metrics.RecordItineraryOutcome(outcomeFailed)
	return response_models.TourResult{}, err
}

func (s *ItineraryService) fallback(log *zap.Logger, from pipelineStage, trip tripContext, cause error) response_models.TourResult {
	log.Warn("itinerary stage",
		zap.String("stage", string(stageFallback)),
		zap.String("failed_stage", string(from)),
		zap.Error(cause),
	)
	metrics.RecordItineraryOutcome(response_models.GeneratedByFallback)
	return BuildFallbackTour(FallbackInput{
		UserID:      trip.userID,
		Destination: trip.destination,
		Days:        trip.days,
		Guests:      trip.guests,
		Budget:      trip.budget,
	})
}

// TourID is <source>_<user>_<destination>_<n>days, where source is "gemini"
// for model output and "fallback" otherwise.
func TourID(generatedBy, userID, destination string, days int) string {
	source := generatedBy
	if generatedBy == response_models.GeneratedByModel {
		source = "gemini"
	}
	return fmt.Sprintf("%s_%s_%s_%ddays", source, userID, destination, days)
}

// estimatedTotal prefers the model's total_cost and falls back to summing the
// corrected entry costs. The model total is shifted by however much transfer
// repricing changed, so it stays consistent with the returned schedule.
func estimatedTotal(parsed response_models.GeneratedItinerary, schedule []response_models.DaySchedule) float64 {
	if parsed.TotalCost > 0 {
		return roundTo(max(parsed.TotalCost+transferCostDelta(parsed.Days, schedule), 0), 2)
	}
	sum := 0.0
	for _, d := range schedule {
		for _, a := range d.Activities {
			sum += a.Cost
		}
	}
	return roundTo(sum, 2)
}

// transferCostDelta is the change in summed transfer cost between the model's
// days and the enforced schedule.
func transferCostDelta(before, after []response_models.DaySchedule) float64 {
	return transferCost(after) - transferCost(before)
}

func transferCost(days []response_models.DaySchedule) float64 {
	sum := 0.0
	for _, d := range days {
		for _, a := range d.Activities {
			if a.IsTransfer() {
				sum += a.Cost
			}
		}
	}
	return sum
}

func reconciledBreakdown(parsed response_models.GeneratedItinerary, schedule []response_models.DaySchedule) *response_models.CostBreakdown {
	b := parsed.CostBreakdown
	b.TransportEstimate = roundTo(max(b.TransportEstimate+transferCostDelta(parsed.Days, schedule), 0), 2)
	return &b
}
