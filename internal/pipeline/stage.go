package pipeline

import (
	"fmt"
	"time"

	"github.com/iconidentify/blogsmith/internal/metrics"
)

// Stage is a state of a generation run.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageEnhancing Stage = "enhancing"
	StageDrafting  Stage = "drafting"
	StageAnalyzing Stage = "analyzing"
	StageMerging   Stage = "merging"
	StageDone      Stage = "done"
	StageFailed    Stage = "failed"
)

func (s Stage) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// transitions lists the stages reachable from each stage. Runs are strictly
// sequential; failed is only reachable from the stages whose failures are
// not absorbed by default.
var transitions = map[Stage][]Stage{
	StageIdle:      {StageEnhancing},
	StageEnhancing: {StageDrafting},
	StageDrafting:  {StageAnalyzing, StageFailed},
	StageAnalyzing: {StageMerging},
	StageMerging:   {StageDone, StageFailed},
}

// CanTransition reports whether to is reachable from from.
func CanTransition(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Observer receives stage changes of a run.
type Observer interface {
	StageChanged(stage Stage)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(stage Stage)

// StageChanged implements Observer.
func (f ObserverFunc) StageChanged(stage Stage) {
	f(stage)
}

// run tracks the stage machine of one generation and times each stage.
type run struct {
	stage    Stage
	entered  time.Time
	observer Observer
}

func newRun(observer Observer) *run {
	return &run{stage: StageIdle, entered: time.Now(), observer: observer}
}

// enter moves the run to next. A stage whose policy was flipped to
// propagate may fail outside the default table, so failure is always
// accepted from a non-terminal stage.
func (r *run) enter(next Stage) error {
	if !CanTransition(r.stage, next) && !(next == StageFailed && !r.stage.IsTerminal()) {
		return fmt.Errorf("invalid stage transition %s -> %s", r.stage, next)
	}

	if r.stage != StageIdle {
		metrics.ObserveStage(r.stage.String(), time.Since(r.entered))
	}

	r.stage = next
	r.entered = time.Now()
	if r.observer != nil {
		r.observer.StageChanged(next)
	}
	return nil
}
