package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"listinggen/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) CountByOutcome(ctx context.Context) (map[string]int, error) {
	return f.counts, f.err
}

func newStatsRouter(counter OutcomeCounter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStatsHandler(counter).RegisterRoutes(router)
	return router
}

func TestStats(t *testing.T) {
	router := newStatsRouter(&fakeCounter{counts: map[string]int{
		repository.OutcomeSuccess:       4,
		repository.OutcomeProviderError: 1,
	}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 4, resp.Outcomes[repository.OutcomeSuccess])
	assert.Equal(t, 1, resp.Outcomes[repository.OutcomeProviderError])
	assert.Contains(t, resp.Outcomes, repository.OutcomeValidationError)
	assert.Equal(t, 0, resp.Outcomes[repository.OutcomeValidationError])
}

func TestStats_Error(t *testing.T) {
	router := newStatsRouter(&fakeCounter{err: errors.New("connection refused")})

	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
