package metrics

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	itineraryOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarttravel_itinerary_outcomes_total",
			Help: "Itinerary pipeline runs by outcome (gemini_ai, fallback, failed)",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smarttravel_generation_duration_seconds",
			Help:    "Latency of the text generation call",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)

	flightSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarttravel_flight_searches_total",
			Help: "Flight searches by source (provider, mock, error)",
		},
		[]string{"source"},
	)

	registerOnce sync.Once
)

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		_ = prometheus.Register(itineraryOutcomes)
		_ = prometheus.Register(generationDuration)
		_ = prometheus.Register(flightSearches)
	})
}

func RecordItineraryOutcome(outcome string) {
	itineraryOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveGeneration(start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	generationDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

func RecordFlightSearch(source string) {
	flightSearches.WithLabelValues(source).Inc()
}

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	Register()
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
