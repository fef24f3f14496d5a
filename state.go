package dawmark

import (
	"context"
	"fmt"
	"log/slog"
)

// State is a step of the export state machine.
type State string

const (
	StateStart    State = "start"
	StateSniff    State = "sniff"
	StateEmbed    State = "embed"
	StateConvert  State = "convert"
	StateTextOnly State = "text-only"
	StateFallback State = "fallback"
	StatePackage  State = "package"
	StateDone     State = "done"
	StateFailed   State = "failed"
)

// IsTerminal reports whether the state ends an export.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// Transition records one step of an export and why it was taken.
type Transition struct {
	From   State
	To     State
	Reason string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (%s)", t.From, t.To, t.Reason)
}

// isAllowedTransition encodes
// start → sniff → {embed | convert | text-only | fallback} → package → done.
// convert may fall back; failed is reachable from any non-terminal state.
func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return !from.IsTerminal()
	}
	switch from {
	case StateStart:
		return to == StateSniff
	case StateSniff:
		return to == StateEmbed || to == StateConvert || to == StateTextOnly || to == StateFallback
	case StateConvert:
		return to == StatePackage || to == StateFallback
	case StateEmbed, StateTextOnly, StateFallback:
		return to == StatePackage
	case StatePackage:
		return to == StateDone
	default:
		return false
	}
}

// machine tracks one export's state and its trace.
type machine struct {
	logger *slog.Logger
	target Target
	state  State
	trace  []Transition
}

func newMachine(logger *slog.Logger, target Target) *machine {
	return &machine{logger: logger, target: target, state: StateStart}
}

// to moves the machine to next. A disallowed transition is a bug in the
// orchestrator and panics.
func (m *machine) to(ctx context.Context, next State, reason string) {
	if !isAllowedTransition(m.state, next) {
		panic(fmt.Sprintf("dawmark: disallowed transition %s -> %s", m.state, next))
	}
	t := Transition{From: m.state, To: next, Reason: reason}
	m.trace = append(m.trace, t)
	m.state = next

	level := slog.LevelDebug
	if next == StateFallback || next == StateFailed {
		level = slog.LevelWarn
	}
	m.logger.Log(ctx, level, "export transition",
		"target", m.target,
		"from", t.From,
		"to", t.To,
		"reason", reason,
	)
}

// fail moves to StateFailed and returns err.
func (m *machine) fail(ctx context.Context, err error) error {
	m.to(ctx, StateFailed, err.Error())
	return err
}
