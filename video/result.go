// Package video holds the result model and its state machine.
package video

import (
	"fmt"
	"strings"
)

// FailedMessage is recorded when a retrieval fails without a message.
const FailedMessage = "Failed to fetch transcript."

// Source is a grounding citation.
type Source struct {
	Title string `json:"title" jsonschema:"description=Display title of the cited page"`
	URI   string `json:"uri" jsonschema:"description=Link to the cited page or # when unknown"`
}

// Placeholders for citations with missing fields.
const (
	SourceTitleFallback = "Source"
	SourceURIFallback   = "#"
)

// NewSource builds a Source, replacing blank fields with their placeholders.
func NewSource(title, uri string) Source {
	if strings.TrimSpace(title) == "" {
		title = SourceTitleFallback
	}
	if strings.TrimSpace(uri) == "" {
		uri = SourceURIFallback
	}
	return Source{Title: title, URI: uri}
}

// Linked reports whether the source carries a real link.
func (s Source) Linked() bool {
	return s.URI != SourceURIFallback
}

// Transcript is what a retriever returns on success.
type Transcript struct {
	Title             string   `json:"title"`
	FullTranscription string   `json:"fullTranscription"`
	Sources           []Source `json:"sources,omitempty"`
}

// Result is one entry per submitted link.
type Result struct {
	ID            string   `json:"id" jsonschema:"format=uuid"`
	URL           string   `json:"url"`
	Title         string   `json:"title,omitempty"`
	Transcription string   `json:"transcription,omitempty"`
	Status        Status   `json:"status" jsonschema:"enum=pending,enum=processing,enum=completed,enum=error"`
	Error         string   `json:"error,omitempty"`
	Sources       []Source `json:"sources,omitempty"`
}

// NewPending creates a placeholder for url.
func NewPending(id, url string) Result {
	return Result{ID: id, URL: url, Status: StatusPending}
}

// Start moves a pending result to processing.
func (r *Result) Start() error {
	return r.transition(StatusProcessing)
}

// Complete records a successful retrieval.
func (r *Result) Complete(t Transcript) error {
	if err := r.transition(StatusCompleted); err != nil {
		return err
	}
	r.Title = t.Title
	r.Transcription = t.FullTranscription
	r.Sources = append([]Source(nil), t.Sources...)
	return nil
}

// Fail records a failed retrieval. A nil or message-less error gets FailedMessage.
func (r *Result) Fail(cause error) error {
	if err := r.transition(StatusError); err != nil {
		return err
	}
	r.Error = FailedMessage
	if cause != nil && cause.Error() != "" {
		r.Error = cause.Error()
	}
	return nil
}

func (r *Result) transition(next Status) error {
	if !r.Status.CanBecome(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	return nil
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	r.Sources = append([]Source(nil), r.Sources...)
	return r
}
