package scaffold

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/newrepo/internal/log"
)

// Step is one named unit of the scaffold pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
	Undo func(ctx context.Context) error // nil when the step cannot be reverted

	// UndoPartial also runs Undo when Run itself failed, for steps that can
	// leave partial results behind.
	UndoPartial bool
}

// StepError reports which step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline runs steps in order and stops at the first failure.
type Pipeline struct {
	Steps            []Step
	CleanupOnFailure bool

	completed []string
}

// Plan returns the step names in execution order.
func (p *Pipeline) Plan() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name
	}
	return names
}

// Completed returns the names of the steps that finished successfully
// during the last Run.
func (p *Pipeline) Completed() []string {
	return p.completed
}

// Run executes all steps. The returned error is a *StepError for the failed
// step, joined with any undo failures when CleanupOnFailure is set.
func (p *Pipeline) Run(ctx context.Context) error {
	l := log.FromContext(ctx)
	p.completed = nil

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return p.fail(ctx, i, false, &StepError{Step: step.Name, Err: err})
		}
		l.Debug("running step", "step", step.Name)
		if err := step.Run(ctx); err != nil {
			return p.fail(ctx, i, step.UndoPartial, &StepError{Step: step.Name, Err: err})
		}
		p.completed = append(p.completed, step.Name)
	}
	return nil
}

// fail undoes the steps before failed in reverse order if cleanup is enabled.
// With partial set the failed step is undone first.
func (p *Pipeline) fail(ctx context.Context, failed int, partial bool, stepErr *StepError) error {
	if !p.CleanupOnFailure {
		return stepErr
	}

	l := log.FromContext(ctx)
	// undo must still run after an interrupt
	undoCtx := context.WithoutCancel(ctx)

	errs := []error{stepErr}
	last := failed - 1
	if partial {
		last = failed
	}
	for i := last; i >= 0; i-- {
		step := p.Steps[i]
		if step.Undo == nil {
			continue
		}
		l.Debug("undoing step", "step", step.Name)
		if err := step.Undo(undoCtx); err != nil {
			l.Warn("failed to undo %s: %v", step.Name, err)
			errs = append(errs, fmt.Errorf("undo %s: %w", step.Name, err))
		}
	}

	if len(errs) == 1 {
		return stepErr
	}
	return errors.Join(errs...)
}
