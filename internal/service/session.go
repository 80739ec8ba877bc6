package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"listinggen/internal/model"
	"listinggen/internal/repository"
	"listinggen/internal/utils"

	"github.com/google/uuid"
)

// ErrSubmissionInProgress is returned when submit is called while a provider call is in flight
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

const auditTimeout = 5 * time.Second

// Session holds the form, display status and latest listing for one page session.
//
// Submit runs the state machine idle|failed -> submitting -> idle|failed. The
// provider call happens without holding the lock, so the form stays editable
// while a listing is generated; the prompt is built from the snapshot taken
// when the submission started.
type Session struct {
	mu      sync.Mutex
	form    model.FormInput
	status  model.Status
	listing *model.GeneratedListing

	composer *PromptComposer
	provider CompletionProvider
	audit    repository.GenerationLogger
	pending  sync.WaitGroup
}

// NewSession creates a session with a fresh form. audit may be nil.
func NewSession(composer *PromptComposer, provider CompletionProvider, audit repository.GenerationLogger) *Session {
	return &Session{
		form:     model.NewFormInput(),
		status:   model.IdleStatus(),
		composer: composer,
		provider: provider,
		audit:    audit,
	}
}

// Form returns the current form snapshot
func (s *Session) Form() model.FormInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the form snapshot
func (s *Session) SetForm(form model.FormInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// Edit applies fn to the current snapshot and stores the result
func (s *Session) Edit(fn func(model.FormInput) model.FormInput) model.FormInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = fn(s.form)
	return s.form
}

// Status returns the current display flags
func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Listing returns the latest generated listing, or nil
func (s *Session) Listing() *model.GeneratedListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyListing(s.listing)
}

// View returns form, status and listing read under one lock
func (s *Session) View() model.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SessionView{
		Form:    s.form,
		Status:  s.status,
		Listing: copyListing(s.listing),
	}
}

// Dismiss hides the result. The form and the stored listing are left alone.
func (s *Session) Dismiss() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.ResultVisible = false
	return s.status
}

// Submit validates the current form, calls the provider once and stores the result.
// It is a no-op returning ErrSubmissionInProgress while another submission is in flight.
func (s *Session) Submit(ctx context.Context) (*model.GeneratedListing, error) {
	return s.submit(ctx, nil)
}

// SubmitForm replaces the form and submits it. While another submission is in
// flight it returns ErrSubmissionInProgress and the stored form is left untouched.
func (s *Session) SubmitForm(ctx context.Context, form model.FormInput) (*model.GeneratedListing, error) {
	return s.submit(ctx, &form)
}

func (s *Session) submit(ctx context.Context, replace *model.FormInput) (*model.GeneratedListing, error) {
	start := time.Now()

	s.mu.Lock()
	if s.status.Submitting() {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}

	if replace != nil {
		s.form = *replace
	}
	id := uuid.NewString()
	form := s.form
	s.status.Error = nil
	s.status.ResultVisible = false

	prompt, err := s.composer.Compose(form)
	if err != nil {
		var missing *MissingFieldsError
		var fields []string
		if errors.As(err, &missing) {
			fields = missing.Fields
		}
		s.status.State = model.StateIdle
		s.status.Error = &model.StatusError{
			Kind:    model.ErrorKindValidation,
			Message: model.MessageMissingFields,
			Fields:  fields,
		}
		s.mu.Unlock()

		log.Printf("[VALIDATION] Submission %s rejected: %v", id, err)
		s.record(id, form, "", repository.OutcomeValidationError, err, start)
		return nil, err
	}

	s.status.State = model.StateSubmitting
	s.mu.Unlock()

	log.Printf("[DEBUG] Submission %s prompt: %s", id, prompt)

	result, err := s.provider.Complete(ctx, CompletionRequest{
		Prompt:      prompt,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	var text string
	if err == nil {
		var ok bool
		if text, ok = result.First(); !ok {
			err = ErrNoCandidates
		}
	}

	s.mu.Lock()
	if err != nil {
		s.status.State = model.StateFailed
		s.status.Error = &model.StatusError{
			Kind:    model.ErrorKindProvider,
			Message: model.MessageProviderFailed,
		}
		s.mu.Unlock()

		log.Printf("[PROVIDER] Submission %s failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		s.record(id, form, prompt, repository.OutcomeProviderError, err, start)
		return nil, fmt.Errorf("failed to generate listing: %w", err)
	}

	listing := &model.GeneratedListing{
		ID:        id,
		Text:      utils.CleanCompletion(text),
		Prompt:    prompt,
		Model:     result.Model,
		CreatedAt: time.Now(),
	}
	s.listing = listing
	s.status.State = model.StateIdle
	s.status.ResultVisible = true
	s.mu.Unlock()

	s.record(id, form, prompt, repository.OutcomeSuccess, nil, start)
	return copyListing(listing), nil
}

// Wait blocks until pending audit writes have finished
func (s *Session) Wait() {
	s.pending.Wait()
}

// record writes the audit event without blocking the caller
func (s *Session) record(id string, form model.FormInput, prompt, outcome string, cause error, start time.Time) {
	if s.audit == nil {
		return
	}

	event := &repository.GenerationEvent{
		ID:        id,
		Form:      form,
		Prompt:    prompt,
		Outcome:   outcome,
		LatencyMs: time.Since(start).Milliseconds(),
		CreatedAt: start,
	}
	if cause != nil {
		event.ErrorDetail = cause.Error()
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := s.audit.LogGeneration(ctx, event); err != nil {
			log.Printf("[AUDIT] Failed to record submission %s: %v", id, err)
		}
	}()
}

func copyListing(l *model.GeneratedListing) *model.GeneratedListing {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
