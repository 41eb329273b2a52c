package schema

import (
	"fmt"
	"strconv"
)

// Schema is the validated template: start nodes receive the compile inputs,
// end nodes must all be reached.
type Schema struct {
	starts []*Node
	ends   []*Node
	nodes  []*Node
	isEnd  map[*Node]bool
	keys   map[*Node]string
	byKey  map[string]*Node
}

// NewSchema validates the start and end lists and assigns a key to every
// node reachable from the starts. Keys are the node name when unique among
// reachable nodes, otherwise "n<ordinal>" in breadth-first discovery order.
// Keys belong to the Schema: nodes shared with other schemas are not
// modified and may carry a different key there.
//
// Errors:
//   - ErrNoStarts, ErrNoEnds: an empty list.
//   - ErrNilNode: a nil entry.
//   - ErrEndHasTransitions: an end node with transition groups.
func NewSchema(starts, ends []*Node) (*Schema, error) {
	s := &Schema{
		starts: append([]*Node(nil), starts...),
		ends:   append([]*Node(nil), ends...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.isEnd = make(map[*Node]bool, len(s.ends))
	for _, e := range s.ends {
		s.isEnd[e] = true
	}
	s.nodes = reachable(s.starts, s.ends)
	s.keys = assignKeys(s.nodes)
	s.byKey = make(map[string]*Node, len(s.keys))
	for n, k := range s.keys {
		s.byKey[k] = n
	}

	return s, nil
}

// Validate re-checks the structural rules. Groups added to end nodes after
// construction are caught here.
func (s *Schema) Validate() error {
	if len(s.starts) == 0 {
		return ErrNoStarts
	}
	if len(s.ends) == 0 {
		return ErrNoEnds
	}
	for i, n := range s.starts {
		if n == nil {
			return fmt.Errorf("start %d: %w", i, ErrNilNode)
		}
	}
	for i, n := range s.ends {
		if n == nil {
			return fmt.Errorf("end %d: %w", i, ErrNilNode)
		}
		if len(n.groups) > 0 {
			return fmt.Errorf("%w: %s", ErrEndHasTransitions, n)
		}
	}

	return nil
}

// Starts returns a copy of the start nodes.
func (s *Schema) Starts() []*Node { return append([]*Node(nil), s.starts...) }

// Ends returns a copy of the end nodes.
func (s *Schema) Ends() []*Node { return append([]*Node(nil), s.ends...) }

// Nodes returns every node reachable from the starts, plus unreachable ends,
// in discovery order.
func (s *Schema) Nodes() []*Node { return append([]*Node(nil), s.nodes...) }

// IsEnd reports whether n is an end node.
func (s *Schema) IsEnd(n *Node) bool { return s.isEnd[n] }

// Key returns n's key in this schema, or "" when n is not part of it.
func (s *Schema) Key(n *Node) string { return s.keys[n] }

// Lookup returns the node with the given key.
func (s *Schema) Lookup(key string) (*Node, bool) {
	n, ok := s.byKey[key]
	return n, ok
}

// reachable walks transitions breadth-first from the starts.
func reachable(starts, ends []*Node) []*Node {
	seen := make(map[*Node]bool)
	var order []*Node
	queue := make([]*Node, 0, len(starts))
	visit := func(n *Node) {
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
			queue = append(queue, n)
		}
	}
	for _, n := range starts {
		visit(n)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, g := range n.groups {
			for _, t := range g.transitions {
				visit(t.Next)
			}
		}
	}
	for _, n := range ends {
		visit(n)
	}

	return order
}

// assignKeys keys nodes by unique name, else by ordinal. An ordinal key
// that collides with a node name is skipped to the next free ordinal.
func assignKeys(nodes []*Node) map[*Node]string {
	names := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if n.name != "" {
			names[n.name]++
		}
	}
	keys := make(map[*Node]string, len(nodes))
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.name != "" && names[n.name] == 1 {
			keys[n] = n.name
			taken[n.name] = true
		}
	}
	next := 0
	for i, n := range nodes {
		if _, ok := keys[n]; ok {
			continue
		}
		next = max(next, i)
		k := "n" + strconv.Itoa(next)
		for taken[k] {
			next++
			k = "n" + strconv.Itoa(next)
		}
		keys[n] = k
		taken[k] = true
	}

	return keys
}
