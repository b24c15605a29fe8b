package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Step is one named analysis in the run.
type Step struct {
	Name        string
	Description string
	Run         func(ctx context.Context) error
}

// Outcome records how a step finished.
type Outcome struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Recorder observes step outcomes, e.g. for metrics.
type Recorder interface {
	ObserveAnalysis(name string, duration time.Duration, err error)
}

// Runner executes steps one after another. A failing or panicking step is
// logged and recorded, and the next step still runs.
type Runner struct {
	log      logrus.FieldLogger
	recorder Recorder
}

// NewRunner creates a Runner. recorder may be nil.
func NewRunner(log logrus.FieldLogger, recorder Recorder) *Runner {
	return &Runner{log: log, recorder: recorder}
}

// Run executes steps in order and returns one Outcome per step that ran.
// It stops early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, steps []Step) []Outcome {
	outcomes := make([]Outcome, 0, len(steps))
	for _, step := range steps {
		if ctx.Err() != nil {
			r.log.WithError(ctx.Err()).Warn("Run cancelled")
			break
		}

		log := r.log.WithField("analysis", step.Name)
		log.Debug("Starting analysis")

		start := time.Now()
		err := runStep(ctx, step)
		outcome := Outcome{Name: step.Name, Duration: time.Since(start), Err: err}
		outcomes = append(outcomes, outcome)

		if r.recorder != nil {
			r.recorder.ObserveAnalysis(step.Name, outcome.Duration, err)
		}
		if err != nil {
			log.WithError(err).Error("Analysis failed")
			continue
		}
		log.WithField("duration", outcome.Duration).Info("Analysis completed")
	}
	return outcomes
}

func runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in %s: %v", step.Name, p)
		}
	}()
	return step.Run(ctx)
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
