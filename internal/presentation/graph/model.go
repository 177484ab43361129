package graph

// NodeKind classifies a diagram node.
type NodeKind string

const (
	NodeKindState  NodeKind = "state"
	NodeKindInput  NodeKind = "input"  // decoration: the inputs that fire a transition
	NodeKindOutput NodeKind = "output" // decoration: the action a transition runs
)

// Model is the intermediate representation shared by the DOT and Mermaid renderers.
type Model struct {
	Title   string
	Initial string
	Legend  bool
	Nodes   []*Node // first-use order
	Edges   []Edge  // deduplicated, first-occurrence order
	Ranks   [][]string
}

// Node is a state or a decoration node.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// Edge is one rendered connection. From and To always follow the logical
// direction of the transition, even for back edges.
type Edge struct {
	From  string
	To    string
	Label string
	Style string
	Color string

	// Arrow is false for the inner hops of a decorated chain.
	Arrow bool
	// Back marks an edge into a state declared earlier; renderers swap the
	// endpoints and reverse the arrow so ranking stays left to right.
	Back bool
	// SameRank marks self-loops.
	SameRank bool
	MinLen   int
}

// NodeByID returns the node with the given ID, or nil.
func (m *Model) NodeByID(id string) *Node {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
