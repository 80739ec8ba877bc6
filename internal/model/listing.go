package model

import "time"

// GeneratedListing is the provider output for the latest successful submission
type GeneratedListing struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Prompt    string    `json:"prompt"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionState is the state of the submit state machine
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateFailed     SubmissionState = "failed"
)

// ErrorKind distinguishes validation errors from provider failures
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindProvider   ErrorKind = "provider"
)

// User facing messages
const (
	MessageMissingFields  = "Please fill out all required fields."
	MessageProviderFailed = "Something went wrong while generating your listing. Please try again."
)

// StatusError is the inline error shown under the form
type StatusError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Fields  []string  `json:"fields,omitempty"`
}

// Status holds the transient display flags for the page
type Status struct {
	State         SubmissionState `json:"state"`
	Error         *StatusError    `json:"error,omitempty"`
	ResultVisible bool            `json:"result_visible"`
}

// IdleStatus is the status of a fresh session
func IdleStatus() Status {
	return Status{State: StateIdle}
}

// Submitting reports whether a provider call is in flight
func (s Status) Submitting() bool {
	return s.State == StateSubmitting
}

// ErrorPresent reports whether an inline error should be shown
func (s Status) ErrorPresent() bool {
	return s.Error != nil
}

// SessionView is what the page renders from
type SessionView struct {
	Form    FormInput         `json:"form"`
	Status  Status            `json:"status"`
	Listing *GeneratedListing `json:"listing,omitempty"`
}
