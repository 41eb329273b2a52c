package schema

import "fmt"

// Priority limits; lower priorities are built first.
const (
	MinPriority = 0
	MaxPriority = 128
)

// JoinType selects how a transition binds to build slots of its target.
type JoinType int

const (
	JoinNew JoinType = iota
	JoinExisting
	JoinAuto
)

func (j JoinType) String() string {
	switch j {
	case JoinNew:
		return "new"
	case JoinExisting:
		return "existing"
	case JoinAuto:
		return "auto"
	default:
		return "join(?)"
	}
}

// ParseJoin maps a lower-case name back to its JoinType.
func ParseJoin(name string) (JoinType, error) {
	switch name {
	case "", "new":
		return JoinNew, nil
	case "existing":
		return JoinExisting, nil
	case "auto":
		return JoinAuto, nil
	}

	return JoinNew, fmt.Errorf("%w: %q", ErrBadJoin, name)
}

// Transition is a directed edge toward Next.
type Transition struct {
	Next     *Node
	Priority int
	Join     JoinType
}

// New returns a JoinNew transition.
func New(next *Node, priority int) Transition {
	return Transition{Next: next, Priority: priority, Join: JoinNew}
}

// Existing returns a JoinExisting transition.
func Existing(next *Node, priority int) Transition {
	return Transition{Next: next, Priority: priority, Join: JoinExisting}
}

// Auto returns a JoinAuto transition.
func Auto(next *Node, priority int) Transition {
	return Transition{Next: next, Priority: priority, Join: JoinAuto}
}

func (t Transition) validate() error {
	if t.Next == nil {
		return ErrNilNode
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPriorityRange, t.Priority, MinPriority, MaxPriority)
	}
	if t.Join < JoinNew || t.Join > JoinAuto {
		return fmt.Errorf("%w: %d", ErrBadJoin, int(t.Join))
	}

	return nil
}

// Group is an ordered set of transitions fired atomically.
type Group struct {
	transitions []Transition
}

// Len returns the number of transitions.
func (g Group) Len() int { return len(g.transitions) }

// At returns the i-th transition.
func (g Group) At(i int) Transition { return g.transitions[i] }

// Transitions returns a copy of the transitions.
func (g Group) Transitions() []Transition {
	out := make([]Transition, len(g.transitions))
	copy(out, g.transitions)

	return out
}

func newGroup(ts []Transition) (Group, error) {
	if len(ts) == 0 {
		return Group{}, ErrEmptyGroup
	}
	seen := make(map[*Node]struct{}, len(ts))
	for i, t := range ts {
		if err := t.validate(); err != nil {
			return Group{}, fmt.Errorf("transition %d: %w", i, err)
		}
		if _, dup := seen[t.Next]; dup {
			return Group{}, fmt.Errorf("%w: %s", ErrDuplicateTarget, t.Next)
		}
		seen[t.Next] = struct{}{}
	}
	cp := make([]Transition, len(ts))
	copy(cp, ts)

	return Group{transitions: cp}, nil
}
