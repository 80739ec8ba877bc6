package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"listinggen/internal/model"
	"listinggen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (p *stubProvider) Complete(ctx context.Context, req service.CompletionRequest) (*service.CompletionResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &service.CompletionResult{Candidates: []string{p.text}}, nil
}

func (p *stubProvider) IsEnabled() bool { return p.err != service.ErrProviderDisabled }

// blockingProvider holds every call until release is closed
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) Complete(ctx context.Context, req service.CompletionRequest) (*service.CompletionResult, error) {
	p.started <- struct{}{}
	<-p.release
	return &service.CompletionResult{Candidates: []string{"Finished listing."}}, nil
}

func (p *blockingProvider) IsEnabled() bool { return true }

func newTestRouter(provider service.CompletionProvider, limiter *RateLimiter) (*gin.Engine, *service.Session) {
	gin.SetMode(gin.TestMode)
	session := service.NewSession(service.NewPromptComposer(false), provider, nil)
	router := gin.New()
	RegisterRoutes(router, NewSessionHandler(session), limiter)
	return router, session
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validForm() model.FormInput {
	return model.NewFormInput().
		WithStories("2").
		WithSquareFootage("1800").
		WithGarageCount("2").
		WithBedrooms("3").
		WithBathrooms("2").
		WithAmenity(model.AmenityPool, true)
}

func TestSubmit_OK(t *testing.T) {
	provider := &stubProvider{text: "Gorgeous family home."}
	router, _ := newTestRouter(provider, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Listing model.GeneratedListing `json:"listing"`
		Status  model.Status           `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Gorgeous family home.", resp.Listing.Text)
	assert.Equal(t,
		"Write a listing about a 2 house that is 1800 square feet 2 car garage and has 3 bedrooms and 2 bathrooms It also has a pool .",
		resp.Listing.Prompt)
	assert.True(t, resp.Status.ResultVisible)
	assert.Equal(t, 1, provider.calls)
}

func TestSubmit_UsesStoredFormWithoutBody(t *testing.T) {
	provider := &stubProvider{text: "Stored form listing."}
	router, session := newTestRouter(provider, nil)
	session.SetForm(validForm())

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, provider.calls)
}

func TestSubmit_MissingFields(t *testing.T) {
	provider := &stubProvider{text: "unused"}
	router, _ := newTestRouter(provider, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm().WithBedrooms(""))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.MessageMissingFields, resp.Error)
	assert.Equal(t, []string{model.FieldBedrooms}, resp.Fields)
	assert.Equal(t, 0, provider.calls)
}

func TestSubmit_ProviderFailure(t *testing.T) {
	router, session := newTestRouter(&stubProvider{err: errors.New("boom")}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, model.StateFailed, session.Status().State)
}

func TestSubmit_ProviderDisabled(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{err: service.ErrProviderDisabled}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmit_BadPropertyType(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/submit", bytes.NewBufferString(`{"property_type":"castle"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_RateLimited(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	defer limiter.Stop()
	router, _ := newTestRouter(&stubProvider{text: "ok"}, limiter)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestEditField(t *testing.T) {
	router, session := newTestRouter(&stubProvider{}, nil)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/session/form", FieldEditRequest{Field: "stories", Value: "3"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", session.Form().Stories)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/session/form", FieldEditRequest{Field: "gas_cooking", Value: "true"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, session.Form().Amenities.GasCooking)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/session/form", FieldEditRequest{Field: "moat", Value: "true"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "3", session.Form().Stories)
}

func TestReplaceFormAndGet(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	w := doJSON(t, router, http.MethodPut, "/api/v1/session/form", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view model.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, validForm(), view.Form)
	assert.Equal(t, model.StateIdle, view.Status.State)
	assert.Nil(t, view.Listing)
}

func TestDismiss(t *testing.T) {
	router, session := newTestRouter(&stubProvider{text: "A home."}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, session.Status().ResultVisible)

	w = doJSON(t, router, http.MethodPost, "/api/v1/session/dismiss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, session.Status().ResultVisible)
	assert.Equal(t, validForm(), session.Form())
}

func TestSubmit_InFlightConflictKeepsForm(t *testing.T) {
	provider := &blockingProvider{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	router, session := newTestRouter(provider, nil)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm())
	}()

	select {
	case <-provider.started:
	case <-time.After(2 * time.Second):
		t.Fatal("provider was not called")
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/session/submit", validForm().WithBedrooms("7"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "3", session.Form().Bedrooms)

	close(provider.release)
	select {
	case w = <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission did not finish")
	}
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", session.Form().Bedrooms)
}
