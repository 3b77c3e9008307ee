// Package playbook drives a simulation from a timed list of commands.
package playbook

import (
	"math"

	"mc-lattice/internal/core"
	"mc-lattice/pkg/geom"
)

// Never is returned when no further command is due.
const Never = math.MaxInt

// Target is the set of public mutators a playbook can call.
type Target interface {
	SoftReset()
	ToggleBoundaryCondition()
	TogglePause()
	CycleShapeAt(p geom.Vec2)
	CycleAll()
	SetMaterialAt(p geom.Vec2, pin core.PinType)
	AddParticles(p geom.Vec2, n int)
	SetSource(p geom.Vec2)
	ClearSource()
}

// Command is one playbook action.
type Command interface {
	Execute(t Target)
	String() string
}

type entry struct {
	after int
	cmd   Command
}

// Step describes one scheduled command.
type Step struct {
	After   int
	Command string
}

// Playbook is an ordered, cyclic list of commands, each preceded by a number
// of tics to wait.
type Playbook struct {
	entries []entry
	next    int
	stop    int
}

// New returns an empty playbook.
func New() *Playbook {
	return &Playbook{stop: -1}
}

// Default adds 200 particles near the upper right of the standard assembly.
func Default() *Playbook {
	p := New()
	p.Add(0, addParticles{at: geom.V(8.5, 8.5), n: 200})
	return p
}

// Add appends a command to run after the given number of tics.
func (p *Playbook) Add(after int, cmd Command) {
	if _, ok := cmd.(halt); ok && p.stop < 0 {
		p.stop = len(p.entries)
	}
	p.entries = append(p.entries, entry{after: after, cmd: cmd})
}

// Len returns the number of scheduled commands.
func (p *Playbook) Len() int { return len(p.entries) }

// Steps describes the schedule for logging.
func (p *Playbook) Steps() []Step {
	out := make([]Step, len(p.entries))
	for i, e := range p.entries {
		out[i] = Step{After: e.after, Command: e.cmd.String()}
	}
	return out
}

// Halted reports whether the playbook reached its first halt command.
func (p *Playbook) Halted() bool {
	return p.stop >= 0 && p.next == p.stop
}

// ExecuteNext runs commands until the next one needs a non-zero wait or the
// cycle wraps around, and returns the tics until that command. It returns
// Never once the first halt is reached.
func (p *Playbook) ExecuteNext(t Target) int {
	if len(p.entries) == 0 {
		return Never
	}
	start := p.next
	for {
		if p.Halted() {
			return Never
		}
		p.entries[p.next].cmd.Execute(t)
		p.next = (p.next + 1) % len(p.entries)

		if p.next == start {
			break
		}
		if p.entries[p.next].after > 0 {
			break
		}
	}
	if p.Halted() && p.entries[p.next].after == 0 {
		return Never
	}
	return p.entries[p.next].after
}

// TicsToNext returns the wait before the next command.
func (p *Playbook) TicsToNext() int {
	if len(p.entries) == 0 || p.Halted() {
		return Never
	}
	return p.entries[p.next].after
}

// Reset rewinds to the first command.
func (p *Playbook) Reset() {
	p.next = 0
}
