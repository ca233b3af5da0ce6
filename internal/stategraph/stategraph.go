// Package stategraph provides a conditional state-graph engine.
//
// A Graph owns a set of states connected by directed edges. Each edge carries
// a boolean condition. Exactly one state is current at a time; every tick the
// current state updates and then its outgoing edges are evaluated in
// declaration order. The first edge whose condition holds fires a transition.
// Cycles are legal: battle flow legitimately loops (combat and time-freeze
// hand control back and forth, combat re-enters card selection).
//
// Conditions must be pure queries against already-mutated shared state.
// Side effects belong in OnStart and OnEnd. This is a documented invariant,
// not something the graph enforces at runtime.
package stategraph

import "github.com/samdwyer/netbattle/internal/frametime"

// Surface is the opaque render target handed to states during draw.
// The graph never inspects it; states assert it to whatever renderer the
// session runs with.
type Surface any

// State is a single node's behavior. Lifecycle hooks receive the neighboring
// state involved in a transition, or nil at graph start and teardown.
type State interface {
	OnStart(prev State)
	OnUpdate(elapsed frametime.FrameTime)
	OnEnd(next State)
	OnDraw(surface Surface)
}

// Handle addresses a state registered with a Graph. Handles stay valid for
// the life of the graph; states live in an arena and are never copied or
// individually freed.
type Handle int

type edge struct {
	to   Handle
	cond func() bool
}

// Graph is a directed graph of states with condition-guarded edges.
type Graph struct {
	states  []State
	edges   [][]edge
	current Handle
	started bool
	done    bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{current: -1}
}

// Node is a registered state plus the owning graph, for fluent edge
// declaration. Chained ChangeOnEvent calls preserve declaration order, which
// is the edge priority order.
type Node struct {
	graph  *Graph
	handle Handle
}

// Handle returns the node's stable handle.
func (n Node) Handle() Handle { return n.handle }

// State returns the underlying state.
func (n Node) State() State { return n.graph.states[n.handle] }

// ChangeOnEvent links this node to next, guarded by cond, and returns the
// node so further edges can be chained. Earlier-declared edges win when
// several conditions are simultaneously true.
func (n Node) ChangeOnEvent(next Node, cond func() bool) Node {
	n.graph.Link(n.handle, next.handle, cond)
	return n
}

// Add registers a state and returns its node. The graph owns the state for
// the remainder of the session.
func (g *Graph) Add(s State) Node {
	g.states = append(g.states, s)
	g.edges = append(g.edges, nil)
	return Node{graph: g, handle: Handle(len(g.states) - 1)}
}

// Link registers a directed edge from -> to. Multiple edges from the same
// node are allowed; they are tried in insertion order every tick.
func (g *Graph) Link(from, to Handle, cond func() bool) {
	g.edges[from] = append(g.edges[from], edge{to: to, cond: cond})
}

// Start sets the initial state and invokes its OnStart with no predecessor.
func (g *Graph) Start(initial Handle) {
	g.current = initial
	g.started = true
	g.done = false
	g.states[initial].OnStart(nil)
}

// Running reports whether the graph has started and has not been torn down.
func (g *Graph) Running() bool { return g.started && !g.done }

// Current returns the current state, or nil before Start or after Quit.
func (g *Graph) Current() State {
	if !g.Running() {
		return nil
	}
	return g.states[g.current]
}

// CurrentHandle returns the current node's handle, or -1 when not running.
func (g *Graph) CurrentHandle() Handle {
	if !g.Running() {
		return -1
	}
	return g.current
}

// Tick updates the current state, then fires at most one transition: the
// first outgoing edge, in declaration order, whose condition is true.
// Limiting the graph to one transition per tick bounds per-frame state churn
// and keeps a chain of simultaneously-true conditions from cascading inside
// a single update. Returns true if a transition fired.
func (g *Graph) Tick(elapsed frametime.FrameTime) bool {
	if !g.Running() {
		return false
	}

	cur := g.states[g.current]
	cur.OnUpdate(elapsed)

	for _, e := range g.edges[g.current] {
		if !e.cond() {
			continue
		}
		next := g.states[e.to]
		cur.OnEnd(next)
		prev := cur
		g.current = e.to
		next.OnStart(prev)
		return true
	}
	return false
}

// Draw forwards the surface to the current state.
func (g *Graph) Draw(surface Surface) {
	if !g.Running() {
		return
	}
	g.states[g.current].OnDraw(surface)
}

// Quit tears the graph down: the active state's OnEnd runs with a nil
// successor, then the arena and edge table are dropped. Terminal for the
// session; the graph cannot be restarted.
func (g *Graph) Quit() {
	if g.Running() {
		g.states[g.current].OnEnd(nil)
	}
	g.states = nil
	g.edges = nil
	g.current = -1
	g.done = true
}
