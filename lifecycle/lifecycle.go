package lifecycle

// Package lifecycle tracks per-test phase outcomes and drives registered
// hooks when a test finishes. A test execution goes through three phases
// (setup, call, teardown); a completion hook fires exactly once per test,
// after all three phases have reported.

// Phase is one of the three stages of a single test execution.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// Phases returns the three phases in execution order.
func Phases() []Phase {
	return []Phase{PhaseSetup, PhaseCall, PhaseTeardown}
}

// Outcome is the terminal result of one phase. The zero value means the
// phase has not reported yet.
type Outcome string

const (
	OutcomePending Outcome = ""
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// PhaseResult pairs a phase with its outcome.
type PhaseResult struct {
	Phase   Phase
	Outcome Outcome
}

// Report holds the outcome of each phase of one test execution. It is a
// value type: hooks receive a copy and cannot mutate observer state.
type Report struct {
	Test     string
	Setup    Outcome
	Call     Outcome
	Teardown Outcome
}

// Outcome returns the recorded outcome for the given phase.
func (r Report) Outcome(phase Phase) Outcome {
	switch phase {
	case PhaseSetup:
		return r.Setup
	case PhaseCall:
		return r.Call
	case PhaseTeardown:
		return r.Teardown
	}
	return OutcomePending
}

func (r *Report) record(phase Phase, outcome Outcome) {
	switch phase {
	case PhaseSetup:
		r.Setup = outcome
	case PhaseCall:
		r.Call = outcome
	case PhaseTeardown:
		r.Teardown = outcome
	}
}

// Failed reports whether any phase failed.
func (r Report) Failed() bool {
	return r.Setup == OutcomeFailed || r.Call == OutcomeFailed || r.Teardown == OutcomeFailed
}

// Complete reports whether all three phases have a terminal outcome.
func (r Report) Complete() bool {
	return r.Setup != OutcomePending && r.Call != OutcomePending && r.Teardown != OutcomePending
}

// Observer receives phase results from a test runner and fires registered
// hooks. Hooks are explicit registrations: there is no global registry.
type Observer struct {
	before    []func(test string, phase Phase)
	after     []func(test string, result PhaseResult)
	completed []func(Report)

	reports map[string]*Report
	fired   map[string]bool
}

// NewObserver creates an empty observer.
func NewObserver() *Observer {
	return &Observer{
		reports: make(map[string]*Report),
		fired:   make(map[string]bool),
	}
}

// BeforePhase registers a hook invoked when a phase begins.
func (o *Observer) BeforePhase(fn func(test string, phase Phase)) {
	o.before = append(o.before, fn)
}

// AfterPhase registers a hook invoked when a phase reports its outcome.
func (o *Observer) AfterPhase(fn func(test string, result PhaseResult)) {
	o.after = append(o.after, fn)
}

// OnComplete registers a hook invoked exactly once per test, after all three
// phases have reported. The report is passed by value.
func (o *Observer) OnComplete(fn func(Report)) {
	o.completed = append(o.completed, fn)
}

// Begin signals that a phase is starting for the named test.
func (o *Observer) Begin(test string, phase Phase) {
	for _, fn := range o.before {
		fn(test, phase)
	}
}

// Finish records a phase outcome for the named test. When the third phase
// reports, the completion hooks fire; later re-reports for the same test are
// recorded but never re-fire them.
func (o *Observer) Finish(test string, phase Phase, outcome Outcome) {
	rep, ok := o.reports[test]
	if !ok {
		rep = &Report{Test: test}
		o.reports[test] = rep
	}
	rep.record(phase, outcome)

	for _, fn := range o.after {
		fn(test, PhaseResult{Phase: phase, Outcome: outcome})
	}

	if rep.Complete() && !o.fired[test] {
		o.fired[test] = true
		for _, fn := range o.completed {
			fn(*rep)
		}
	}
}

// Report returns a copy of the named test's report and whether any phase of
// it has reported yet.
func (o *Observer) Report(test string) (Report, bool) {
	rep, ok := o.reports[test]
	if !ok {
		return Report{}, false
	}
	return *rep, true
}
