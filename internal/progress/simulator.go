// Package progress simulates staged backend progress for a long-running
// analysis call. The backend exposes no streaming progress channel, so the
// visible stages are client-synthesized from known approximate phase
// durations. The simulator and the real call run independently; only
// completion or failure of the real call is authoritative, joined to the
// simulator through ForceComplete and Fail.
package progress

import (
	"math/rand"
	"time"
)

// Phase is a coarse grouping of stages, one per aggregate progress bar.
type Phase string

const (
	PhaseInitial   Phase = "initial"
	PhaseMeta      Phase = "meta"
	PhaseSynthesis Phase = "synthesis"
)

// Stage is one named unit of simulated backend work.
type Stage struct {
	Name     string
	Phase    Phase
	Duration time.Duration
}

// DefaultStages returns the stage list calibrated against observed run
// timings. Phase order must stay consistent with the status-step catalog.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "Dispatching query to models", Phase: PhaseInitial, Duration: 2 * time.Second},
		{Name: "Models drafting initial responses", Phase: PhaseInitial, Duration: 8 * time.Second},
		{Name: "Collecting initial drafts", Phase: PhaseInitial, Duration: 2 * time.Second},
		{Name: "Sharing drafts for cross-review", Phase: PhaseMeta, Duration: 3 * time.Second},
		{Name: "Models critiquing each other", Phase: PhaseMeta, Duration: 8 * time.Second},
		{Name: "Collecting meta reviews", Phase: PhaseMeta, Duration: 2 * time.Second},
		{Name: "Synthesizing ultra response", Phase: PhaseSynthesis, Duration: 6 * time.Second},
		{Name: "Formatting final output", Phase: PhaseSynthesis, Duration: 2 * time.Second},
	}
}

// Timing tunables. Jitter keeps the advancement timer from looking
// metronomic; the stall emulates an occasional provider rate-limit pause.
const (
	jitterFraction = 0.20
	stallChance    = 0.05
	stallDelay     = 2 * time.Second
	latencyBuffer  = 1500 * time.Millisecond
)

// Simulator advances through the stage list. Stage transitions are strictly
// monotonic; a simulator is never reset, only discarded.
type Simulator struct {
	stages       []Stage
	current      int
	stageStarted time.Time
	completed    bool
	errored      bool
	erroredAt    time.Time
	rng          *rand.Rand
}

// New creates a simulator over the given stages with the given randomness
// source (injected for deterministic tests).
func New(stages []Stage, rng *rand.Rand) *Simulator {
	return &Simulator{stages: stages, rng: rng}
}

// Start begins the first stage at the given instant.
func (s *Simulator) Start(now time.Time) {
	s.stageStarted = now
}

// Current returns the current stage index.
func (s *Simulator) Current() int { return s.current }

// CurrentStage returns the current stage.
func (s *Simulator) CurrentStage() Stage { return s.stages[s.current] }

// Stages returns the stage list.
func (s *Simulator) Stages() []Stage { return s.stages }

// Completed reports whether the real call resolved successfully.
func (s *Simulator) Completed() bool { return s.completed }

// Errored reports whether the real call rejected.
func (s *Simulator) Errored() bool { return s.errored }

// Done reports whether stage i has fully finished.
func (s *Simulator) Done(i int) bool {
	if s.completed {
		return true
	}
	return i < s.current
}

// NextAdvanceIn returns the jittered wall-clock delay before the current
// stage's advancement timer fires: nominal duration ± up to 20%, with a
// small chance of an added fixed stall.
func (s *Simulator) NextAdvanceIn() time.Duration {
	d := s.stages[s.current].Duration
	jittered := time.Duration(float64(d) * (1 - jitterFraction + 2*jitterFraction*s.rng.Float64()))
	if s.rng.Float64() < stallChance {
		jittered += stallDelay
	}
	return jittered
}

// Advance moves to the next stage. No-op at the last stage (only
// ForceComplete finishes the run) and after completion or error.
func (s *Simulator) Advance(now time.Time) {
	if s.completed || s.errored {
		return
	}
	if s.current >= len(s.stages)-1 {
		return
	}
	s.current++
	s.stageStarted = now
}

// StageFraction returns the current stage's elapsed fraction in [0, 1].
// It climbs over the nominal duration regardless of the jittered timer, so
// the visible bar may top out slightly before or after the real
// advancement. Frozen at its failure-time value once errored.
func (s *Simulator) StageFraction(now time.Time) float64 {
	if s.completed {
		return 1
	}
	if s.errored && now.After(s.erroredAt) {
		now = s.erroredAt
	}
	d := s.stages[s.current].Duration
	if d <= 0 {
		return 1
	}
	frac := float64(now.Sub(s.stageStarted)) / float64(d)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// PhaseProgress returns the aggregate progress of one phase in [0, 1]:
// fully-done stages plus the current stage's fraction when it belongs to
// the phase, over the phase's stage count.
func (s *Simulator) PhaseProgress(phase Phase, now time.Time) float64 {
	var total, done float64
	for i, st := range s.stages {
		if st.Phase != phase {
			continue
		}
		total++
		switch {
		case s.Done(i):
			done++
		case i == s.current && !s.completed:
			done += s.StageFraction(now)
		}
	}
	if total == 0 {
		return 0
	}
	return done / total
}

// ETA returns the estimated time remaining: the nominal durations of all
// stages strictly after the current one plus a fixed network latency
// buffer. Purely additive and advisory; the simulator has no ground truth
// to regress toward.
func (s *Simulator) ETA(now time.Time) time.Duration {
	if s.completed {
		return 0
	}
	var remaining time.Duration
	for i := s.current + 1; i < len(s.stages); i++ {
		remaining += s.stages[i].Duration
	}
	return remaining + latencyBuffer
}

// ForceComplete jumps to the last stage and marks every stage done. Called
// when the real call resolves, wherever the simulator had reached.
func (s *Simulator) ForceComplete() {
	if s.errored {
		return
	}
	s.current = len(s.stages) - 1
	s.completed = true
}

// Fail freezes the simulator at the stage active when the real call
// rejected, so the UI can show where it failed.
func (s *Simulator) Fail(now time.Time) {
	if s.completed || s.errored {
		return
	}
	s.errored = true
	s.erroredAt = now
}
