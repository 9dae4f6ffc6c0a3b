// Package batch owns the result list and drives each submitted link through retrieval, one at a time.
package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/intake"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/video"
)

// ErrBusy is returned by Submit while a batch is being processed.
var ErrBusy = errors.New("a batch is already being processed")

// Retriever fetches the title and transcription of a single video.
type Retriever interface {
	Retrieve(ctx context.Context, url string) (*video.Transcript, error)
}

// RetrieverFunc adapts a function to Retriever.
type RetrieverFunc func(ctx context.Context, url string) (*video.Transcript, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, url string) (*video.Transcript, error) {
	return f(ctx, url)
}

// Batch is the group of placeholders created by one submission.
type Batch struct {
	ID      string         `json:"id"`
	Results []video.Result `json:"results"`
}

// IDs returns the result ids in creation order.
func (b *Batch) IDs() []string {
	return lo.Map(b.Results, func(r video.Result, _ int) string { return r.ID })
}

// Summary counts the outcomes of a finished batch.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	// Dropped counts entries cleared from the list before they finished.
	Dropped int `json:"dropped"`
}

// Option configures a Store.
type Option func(*Store)

// WithHosts overrides the accepted link hosts.
func WithHosts(hosts []string) Option {
	return func(s *Store) {
		s.hosts = hosts
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Store is the single owner of the result list and the processing flag.
type Store struct {
	mu         sync.RWMutex
	results    []video.Result
	processing bool
	active     string

	retriever Retriever
	hosts     []string
	newID     func() string
	logger    log.Entry

	subsMu  sync.Mutex
	subs    map[int]*subscriber
	nextSub int
}

// NewStore creates an empty store backed by retriever.
func NewStore(retriever Retriever, opts ...Option) *Store {
	s := &Store{
		retriever: retriever,
		hosts:     intake.DefaultHosts,
		newID:     uuid.NewString,
		logger:    log.With(log.Fields{"component": "batch"}),
		subs:      make(map[int]*subscriber),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit validates text and, if any link is accepted and no batch is
// running, prepends one pending placeholder per link and marks the store
// as processing. On error nothing changes.
func (s *Store) Submit(text string) (*Batch, error) {
	links, err := intake.Validate(text, s.hosts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	b := &Batch{
		ID: s.newID(),
		Results: lo.Map(links, func(link string, _ int) video.Result {
			return video.NewPending(s.newID(), link)
		}),
	}

	s.results = append(cloneAll(b.Results), s.results...)
	s.processing = true
	s.active = b.ID
	s.mu.Unlock()

	s.logger.With(log.Fields{"batch": b.ID, "links": len(links)}).Info("batch submitted")
	s.publish(Event{Type: EventBatchStarted, BatchID: b.ID, Results: cloneAll(b.Results)})

	return b, nil
}

// Run drives every entry of b to a terminal state, strictly one at a time
// and in creation order. A failing entry never stops the batch. ctx is only
// forwarded to the retriever.
func (s *Store) Run(ctx context.Context, b *Batch) Summary {
	summary := Summary{Total: len(b.Results)}

	for _, placeholder := range b.Results {
		id, url := placeholder.ID, placeholder.URL
		logger := s.logger.With(log.Fields{"batch": b.ID, "id": id, "url": url})

		if _, err := s.update(id, (*video.Result).Start); err != nil {
			logger.WithError(err).Warn("entry skipped")
			summary.Dropped++
			continue
		}
		logger.With(log.Fields{"status": video.StatusProcessing}).Debug("retrieving")

		transcript, err := s.retriever.Retrieve(ctx, url)

		var updated *video.Result
		if err == nil && transcript != nil {
			updated, err = s.update(id, func(r *video.Result) error { return r.Complete(*transcript) })
		} else {
			if err == nil {
				err = errors.New(video.FailedMessage)
			}
			cause := err
			updated, err = s.update(id, func(r *video.Result) error { return r.Fail(cause) })
		}

		switch {
		case err != nil:
			logger.WithError(err).Warn("entry update dropped")
			summary.Dropped++
		case updated.Status == video.StatusCompleted:
			logger.With(log.Fields{"status": updated.Status}).Info("retrieved")
			summary.Completed++
		default:
			logger.With(log.Fields{"status": updated.Status, "error": updated.Error}).Warn("retrieval failed")
			summary.Failed++
		}
	}

	s.mu.Lock()
	if s.active == b.ID {
		s.processing = false
		s.active = ""
	}
	s.mu.Unlock()

	s.logger.With(log.Fields{
		"batch":     b.ID,
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"dropped":   summary.Dropped,
	}).Info("batch finished")
	s.publish(Event{Type: EventBatchFinished, BatchID: b.ID, Summary: &summary})

	return summary
}

// Process submits text and runs the resulting batch to completion.
func (s *Store) Process(ctx context.Context, text string) (*Batch, Summary, error) {
	b, err := s.Submit(text)
	if err != nil {
		return nil, Summary{}, err
	}
	return b, s.Run(ctx, b), nil
}

// Results returns a copy of the result list, newest batch first.
func (s *Store) Results() []video.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.results)
}

// Get returns a copy of the result with the given id.
func (s *Store) Get(id string) (video.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := lo.Find(s.results, func(r video.Result) bool { return r.ID == id })
	if !ok {
		return video.Result{}, false
	}
	return r.Clone(), true
}

// Processing reports whether a batch is running.
func (s *Store) Processing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

// Clear empties the result list. A running batch keeps going; its
// remaining updates are dropped.
func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.results)
	s.results = nil
	s.mu.Unlock()

	s.logger.With(log.Fields{"removed": n}).Info("results cleared")
	s.publish(Event{Type: EventResultsCleared})
}

// ErrNotFound is returned when an update targets an id that is no longer in the list.
var ErrNotFound = errors.New("result not found")

func (s *Store) update(id string, mutate func(*video.Result) error) (*video.Result, error) {
	s.mu.Lock()
	_, idx, ok := lo.FindIndexOf(s.results, func(r video.Result) bool { return r.ID == id })
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	candidate := s.results[idx].Clone()
	if err := mutate(&candidate); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.results[idx] = candidate
	s.mu.Unlock()

	published := candidate.Clone()
	s.publish(Event{Type: EventResultUpdated, Result: &published})

	updated := candidate.Clone()
	return &updated, nil
}

func cloneAll(results []video.Result) []video.Result {
	return lo.Map(results, func(r video.Result, _ int) video.Result { return r.Clone() })
}
