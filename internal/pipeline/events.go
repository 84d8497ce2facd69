package pipeline

import "time"

// Event is published on the Bus while a pass runs.
type Event interface{ Name() string }

// Event names.
const (
	EventPassStarted    = "PassStarted"
	EventCorpusScanned  = "CorpusScanned"
	EventPhaseCompleted = "PhaseCompleted"
	EventPassCompleted  = "PassCompleted"
	EventPassFailed     = "PassFailed"
)

// Phase names, in execution order.
const (
	PhaseRegistry = "registry"
	PhaseClassify = "classify"
	PhaseAllocate = "allocate"
	PhaseResolve  = "resolve"
	PhaseGenerate = "generate"
)

// Phases lists every phase of a pass in order.
var Phases = []string{PhaseRegistry, PhaseClassify, PhaseAllocate, PhaseResolve, PhaseGenerate}

type PassStarted struct {
	PassID string
	Items  int
}

func (PassStarted) Name() string { return EventPassStarted }

// CorpusScanned is published once the classifier has seen the corpus.
type CorpusScanned struct {
	PassID string
	Items  int
}

func (CorpusScanned) Name() string { return EventCorpusScanned }

type PhaseCompleted struct {
	PassID   string
	Phase    string
	Duration time.Duration
	// Count is what the phase produced: definitions, classifications,
	// allocated paths or tasks. Zero for the resolve phase.
	Count int
}

func (PhaseCompleted) Name() string { return EventPhaseCompleted }

type PassCompleted struct {
	PassID   string
	Tasks    int
	Duration time.Duration
}

func (PassCompleted) Name() string { return EventPassCompleted }

type PassFailed struct {
	PassID string
	Phase  string
	Err    error
}

func (PassFailed) Name() string { return EventPassFailed }
