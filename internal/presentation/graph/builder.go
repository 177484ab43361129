package graph

import (
	"io"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// DefaultGridThreshold is the largest label list kept on a single line.
const DefaultGridThreshold = 3

// lineStyle is one entry of the round-robin edge palette.
type lineStyle struct {
	name  string
	color string
}

var lineStyles = []lineStyle{
	{"solid", "#1f77b4"},
	{"dashed", "#ff7f0e"},
	{"dotted", "#2ca02c"},
	{"bold", "#d62728"},
}

type options struct {
	logger        *slog.Logger
	legend        bool
	gridThreshold int
}

// Option configures Build.
type Option func(*options)

// WithLogger sets a logger that observes the build at debug level.
// It never influences the produced model.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLegend toggles the legend cluster (default: on).
func WithLegend(enabled bool) Option {
	return func(o *options) {
		o.legend = enabled
	}
}

// WithGridThreshold sets how many labels fit on one line before they are
// wrapped into a grid. Values below 1 are ignored.
func WithGridThreshold(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.gridThreshold = n
		}
	}
}

// groupKey identifies a transition group inside one FromState.
type groupKey struct {
	output string
	final  string
}

type edgeKey struct {
	from string
	to   string
}

// accumulator is the state threaded through a single Build pass.
type accumulator struct {
	opts   options
	seen   map[string]bool // states already declared as a source
	nodes  *orderedmap.OrderedMap[string, *Node]
	edges  *orderedmap.OrderedMap[edgeKey, Edge]
	ranks  [][]string
	styles int
}

// Build turns a state machine into a diagram model. It is total over any
// StateMachineDef and deterministic: grouping, dedup and style cycling all
// follow first-occurrence order.
func Build(def *domain.StateMachineDef, opts ...Option) *Model {
	o := options{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		legend:        true,
		gridThreshold: DefaultGridThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	acc := &accumulator{
		opts:  o,
		seen:  make(map[string]bool),
		nodes: orderedmap.New[string, *Node](),
		edges: orderedmap.New[edgeKey, Edge](),
	}

	acc.addNode(def.InitialState, def.InitialState, NodeKindState)
	for _, from := range def.Transitions {
		acc.addFromState(from)
	}

	model := &Model{
		Title:   def.Name,
		Initial: def.InitialState,
		Legend:  o.legend,
		Nodes:   make([]*Node, 0, acc.nodes.Len()),
		Edges:   make([]Edge, 0, acc.edges.Len()),
		Ranks:   acc.ranks,
	}
	for pair := acc.nodes.Oldest(); pair != nil; pair = pair.Next() {
		model.Nodes = append(model.Nodes, pair.Value)
	}
	for pair := acc.edges.Oldest(); pair != nil; pair = pair.Next() {
		model.Edges = append(model.Edges, pair.Value)
	}

	o.logger.Debug("Diagram model built",
		"machine", def.Name,
		"nodes", len(model.Nodes),
		"edges", len(model.Edges))
	return model
}

func (a *accumulator) addNode(id, label string, kind NodeKind) {
	if _, ok := a.nodes.Get(id); ok {
		return
	}
	a.nodes.Set(id, &Node{ID: id, Label: label, Kind: kind})
}

// addEdge keeps the first edge for each logical (from, to) pair.
func (a *accumulator) addEdge(e Edge) bool {
	key := edgeKey{from: e.From, to: e.To}
	if _, ok := a.edges.Get(key); ok {
		a.opts.logger.Debug("Duplicate edge dropped", "from", e.From, "to", e.To)
		return false
	}
	a.edges.Set(key, e)
	return true
}

func (a *accumulator) addFromState(from domain.FromState) {
	source := from.InitialState
	a.seen[source] = true
	a.addNode(source, source, NodeKindState)

	groups := orderedmap.New[groupKey, []string]()
	for _, t := range from.Transitions {
		key := groupKey{output: t.Output, final: t.FinalState}
		inputs, _ := groups.Get(key)
		groups.Set(key, append(inputs, t.InputValue))
	}

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		a.addGroup(source, pair.Key, pair.Value)
	}
}

func (a *accumulator) addGroup(source string, key groupKey, inputs []string) {
	target := key.final
	style := lineStyles[a.styles%len(lineStyles)]
	selfLoop := target == source
	back := !selfLoop && a.seen[target]
	label := formatLabels(inputs, a.opts.gridThreshold)

	a.opts.logger.Debug("Transition group",
		"from", source,
		"to", target,
		"output", key.output,
		"inputs", inputs,
		"back", back,
		"same_rank", selfLoop)

	a.addNode(target, target, NodeKindState)

	edge := func(from, to string) Edge {
		return Edge{
			From:     from,
			To:       to,
			Style:    style.name,
			Color:    style.color,
			Back:     back,
			SameRank: selfLoop,
		}
	}

	var added bool
	if key.output == "" {
		e := edge(source, target)
		e.Label = label
		e.Arrow = true
		e.MinLen = 2
		added = a.addEdge(e)
	} else {
		inputID := "in:" + source + ":" + key.output + ":" + target
		outputID := "out:" + key.output + ":" + target
		a.addNode(inputID, label, NodeKindInput)
		a.addNode(outputID, key.output, NodeKindOutput)

		hops := []Edge{edge(source, inputID), edge(inputID, outputID), edge(outputID, target)}
		hops[2].Arrow = true
		for _, hop := range hops {
			if a.addEdge(hop) {
				added = true
			}
		}
		if selfLoop && added {
			a.ranks = append(a.ranks, []string{source, inputID, outputID})
		}
	}

	if added {
		a.styles++
	}
}
