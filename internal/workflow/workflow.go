// Package workflow exposes one extraction run as a small state machine:
// idle → processing → validating-entities → complete | error, with Reset
// returning to idle from anywhere.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
)

// ErrInvalidTransition is returned when an operation is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// Processor runs the sequential extraction stages.
type Processor interface {
	Process(ctx context.Context, doc entity.DocumentText, opts pipeline.Options) (entity.ExtractionOutcome, error)
	ProcessFile(ctx context.Context, path string, opts pipeline.Options) (entity.ExtractionOutcome, error)
}

// Transition describes one state change. Settled is set when the run reached
// a state the caller should snapshot (validating-entities, complete, error).
type Transition struct {
	From    constants.WorkflowState
	To      constants.WorkflowState
	RunID   string
	Settled bool
}

// Observer is called synchronously for every transition, including the
// intermediate idle → processing step that Submit does not return.
type Observer func(Transition)

type Workflow struct {
	mu       sync.Mutex
	state    constants.WorkflowState
	runID    string
	outcome  *entity.ExtractionOutcome
	err      error
	accepted *entity.ClientRef

	proc     Processor
	observer Observer
	logger   *slog.Logger
}

type Option func(*Workflow)

// WithObserver registers a transition callback.
func WithObserver(o Observer) Option {
	return func(w *Workflow) { w.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

func New(proc Processor, opts ...Option) *Workflow {
	w := &Workflow{state: constants.StateIdle, proc: proc, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit runs the pipeline on doc. Only allowed from idle. A pipeline failure
// is not returned as an error: it moves the workflow to error, see Err.
func (w *Workflow) Submit(ctx context.Context, doc entity.DocumentText, opts pipeline.Options) (Transition, error) {
	return w.run(ctx, func(ctx context.Context) (entity.ExtractionOutcome, error) {
		return w.proc.Process(ctx, doc, opts)
	})
}

// SubmitFile is Submit for a file on disk; text extraction is part of the run.
func (w *Workflow) SubmitFile(ctx context.Context, path string, opts pipeline.Options) (Transition, error) {
	return w.run(ctx, func(ctx context.Context) (entity.ExtractionOutcome, error) {
		return w.proc.ProcessFile(ctx, path, opts)
	})
}

func (w *Workflow) run(ctx context.Context, fn func(context.Context) (entity.ExtractionOutcome, error)) (Transition, error) {
	w.mu.Lock()
	if w.state != constants.StateIdle {
		state := w.state
		w.mu.Unlock()
		return Transition{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, state)
	}
	runID := uuid.New().String()
	w.runID = runID
	t := w.setLocked(constants.StateProcessing)
	w.mu.Unlock()
	w.notify(t)

	out, err := fn(pipeline.WithRunID(ctx, runID))

	w.mu.Lock()
	if w.runID != runID || w.state != constants.StateProcessing {
		// reset while processing; the result belongs to nobody
		w.mu.Unlock()
		w.logger.Info("workflow.run.discarded", "run_id", runID)
		return Transition{}, fmt.Errorf("%w: run %s was reset", ErrInvalidTransition, runID)
	}
	if err != nil {
		w.err = err
		t = w.setLocked(constants.StateError)
	} else {
		w.outcome = &out
		t = w.setLocked(constants.StateValidatingEntities)
	}
	w.mu.Unlock()
	w.notify(t)

	if err != nil {
		w.logger.Error("workflow.run.failed", "run_id", runID, "error", err)
	} else {
		w.logger.Info("workflow.run.validating", "run_id", runID, "method", out.Method)
	}
	return t, nil
}

// Accept records the client the caller accepted or created for this run and
// completes it. Only allowed from validating-entities.
func (w *Workflow) Accept(client entity.ClientRef) (Transition, error) {
	w.mu.Lock()
	if w.state != constants.StateValidatingEntities {
		state := w.state
		w.mu.Unlock()
		return Transition{}, fmt.Errorf("%w: accept from %s", ErrInvalidTransition, state)
	}
	w.accepted = &client
	t := w.setLocked(constants.StateComplete)
	w.mu.Unlock()
	w.notify(t)
	return t, nil
}

// Reset returns to idle from any state and drops the outcome and error.
func (w *Workflow) Reset() Transition {
	w.mu.Lock()
	w.outcome = nil
	w.err = nil
	w.accepted = nil
	t := w.setLocked(constants.StateIdle)
	w.runID = ""
	w.mu.Unlock()
	w.notify(t)
	return t
}

func (w *Workflow) State() constants.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Outcome returns a copy of the current outcome, or nil before validating-entities.
func (w *Workflow) Outcome() *entity.ExtractionOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.outcome == nil {
		return nil
	}
	out := *w.outcome
	return &out
}

// Err is the failure that moved the run to error.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Workflow) AcceptedClient() *entity.ClientRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.accepted == nil {
		return nil
	}
	c := *w.accepted
	return &c
}

func (w *Workflow) setLocked(to constants.WorkflowState) Transition {
	t := Transition{From: w.state, To: to, RunID: w.runID, Settled: settled(to)}
	w.state = to
	w.logger.Debug("workflow.transition", "from", t.From, "to", t.To, "run_id", t.RunID)
	return t
}

func (w *Workflow) notify(t Transition) {
	if w.observer != nil {
		w.observer(t)
	}
}

func settled(s constants.WorkflowState) bool {
	switch s {
	case constants.StateValidatingEntities, constants.StateComplete, constants.StateError:
		return true
	default:
		return false
	}
}
