package app

import (
	"context"
	"sync"
	"time"

	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/reading"
)

// State is the lifecycle of a session's most recent analysis.
type State int

const (
	StateIdle State = iota
	StateDetecting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Source says whether features came from real landmarks or the mock record.
type Source string

const (
	SourceDetected  Source = "detected"
	SourceSimulated Source = "simulated"
)

// Step is one entry of the human-readable detection log.
type Step struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
}

// Input is a single analysis request.
type Input struct {
	Image       []byte
	ContentType string
	Context     reading.UserContext
	// OnStep, when set, is called for every step as it is recorded.
	OnStep func(Step)
}

// Result is a completed analysis.
type Result struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Context   reading.UserContext `json:"context"`
	Source    Source              `json:"source"`
	Fallback  string              `json:"fallback,omitempty"`
	Features  palm.Features       `json:"features"`
	Reading   reading.Set         `json:"reading"`
	Steps     []Step              `json:"detectionSteps"`
	Thumbnail []byte              `json:"-"`
}

// Session serializes analyses for one client. A second Analyze while one is
// in flight fails fast with ErrConcurrentRequest instead of queuing.
type Session struct {
	analyzer *Analyzer

	mu       sync.Mutex
	state    State
	last     *Result
	steps    []Step
	lastUsed time.Time
}

// NewSession creates an idle session bound to the analyzer.
func (a *Analyzer) NewSession() *Session {
	return &Session{analyzer: a, lastUsed: time.Now()}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Last returns the most recent successful result, or nil.
func (s *Session) Last() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Steps returns a copy of the detection log of the current or last analysis.
func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Analyze runs one analysis. Invalid context and non-image content types are
// rejected before the session changes state. Once accepted, detection
// failures degrade to simulated features; only cancellation of ctx fails.
func (s *Session) Analyze(ctx context.Context, in Input) (*Result, error) {
	if err := in.Context.Validate(); err != nil {
		return nil, err
	}
	if err := capture.CheckType(in.ContentType); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateDetecting {
		s.mu.Unlock()
		return nil, ErrConcurrentRequest
	}
	s.state = StateDetecting
	s.steps = nil
	s.lastUsed = time.Now()
	s.mu.Unlock()

	res, err := s.analyzer.run(ctx, in, func(desc string) {
		s.record(desc, in.OnStep)
	})

	if err == nil {
		res.Steps = s.Steps()
		s.analyzer.save(ctx, res)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	if err != nil {
		s.state = StateFailed
		return nil, err
	}
	s.state = StateDone
	s.last = res
	return res, nil
}

func (s *Session) record(desc string, observer func(Step)) {
	step := Step{Time: time.Now().UTC(), Description: desc}

	s.mu.Lock()
	s.steps = append(s.steps, step)
	s.mu.Unlock()

	s.analyzer.log.WithField("step", desc).Debug("detection step")
	if observer != nil {
		observer(step)
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDetecting {
		return 0, false
	}
	return now.Sub(s.lastUsed), true
}
