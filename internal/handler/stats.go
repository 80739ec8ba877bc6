package handler

import (
	"context"
	"net/http"

	"listinggen/internal/repository"

	"github.com/gin-gonic/gin"
)

// OutcomeCounter reports how many generations ended in each outcome
type OutcomeCounter interface {
	CountByOutcome(ctx context.Context) (map[string]int, error)
}

var _ OutcomeCounter = (*repository.PostgresRepository)(nil)

// StatsHandler serves audit log counters
type StatsHandler struct {
	counter OutcomeCounter
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(counter OutcomeCounter) *StatsHandler {
	return &StatsHandler{
		counter: counter,
	}
}

// StatsResponse is the body of GET /api/v1/stats
type StatsResponse struct {
	Total    int            `json:"total"`
	Outcomes map[string]int `json:"outcomes"`
}

// RegisterRoutes wires the stats endpoint onto the router
func (h *StatsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/v1/stats", h.Get)
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(c *gin.Context) {
	counts, err := h.counter.CountByOutcome(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats: " + err.Error()})
		return
	}

	// Always report every outcome, even ones with no events yet
	outcomes := map[string]int{
		repository.OutcomeSuccess:         0,
		repository.OutcomeValidationError: 0,
		repository.OutcomeProviderError:   0,
	}
	total := 0
	for outcome, n := range counts {
		outcomes[outcome] = n
		total += n
	}

	c.JSON(http.StatusOK, StatsResponse{
		Total:    total,
		Outcomes: outcomes,
	})
}
