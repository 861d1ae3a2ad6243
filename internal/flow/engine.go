// Package flow implements guided-dialogue state machines. Each flow is a
// small topology of named nodes; the engine is a pure function of the current
// cursor and the incoming message, so callers own the cursor storage.
package flow

import (
	"fmt"
	"regexp"
	"strings"
)

// NoNode is the cursor value for "not in any flow".
const NoNode = "none"

// Transition maps a trigger keyword to the next node. Transitions are scanned
// in declaration order; the first keyword found in the message wins.
type Transition struct {
	Keyword string
	Next    string
}

// Node is one state of a flow. A node with no transitions is terminal: its
// reply is served once, and the flow is torn down on the next step.
type Node struct {
	Reply       string
	Transitions []Transition
}

// Flow is a complete guided-dialogue topology. Entry is matched against the
// whole message to open the flow; the cursor then stays on the root node
// until a child keyword is seen on a subsequent message.
type Flow struct {
	Name  string
	Entry *regexp.Regexp
	Root  string
	Nodes map[string]*Node
}

// Engine steps conversations through registered flows.
type Engine struct {
	flows []*Flow
}

// NewEngine creates an engine with the given flows. Flows are tried for entry
// in registration order.
func NewEngine(flows ...*Flow) *Engine {
	return &Engine{flows: flows}
}

// Register adds another flow topology.
func (e *Engine) Register(f *Flow) {
	e.flows = append(e.flows, f)
}

// Step advances one conversation by one message. It returns the new cursor,
// the reply to emit, and whether the engine produced a reply at all. Step has
// no side effects; the caller persists the returned cursor.
func (e *Engine) Step(cursor, message string) (string, string, bool) {
	lower := strings.ToLower(message)

	if cursor == NoNode || cursor == "" {
		for _, f := range e.flows {
			if f.Entry.MatchString(lower) {
				// Entry emits the root prompt but the cursor stays on the
				// root: children are only matched on a later message.
				return cursorFor(f.Name, f.Root), f.Nodes[f.Root].Reply, true
			}
		}
		return NoNode, "", false
	}

	f, node := e.lookup(cursor)
	if node == nil {
		// Stale cursor for an unregistered flow or node.
		return NoNode, "", false
	}

	if len(node.Transitions) == 0 {
		// Terminal node already delivered its reply; tear the flow down and
		// let the pipeline continue.
		return NoNode, "", false
	}

	for _, t := range node.Transitions {
		if strings.Contains(lower, t.Keyword) {
			next := f.Nodes[t.Next]
			return cursorFor(f.Name, t.Next), next.Reply, true
		}
	}

	return cursor, "", false
}

func (e *Engine) lookup(cursor string) (*Flow, *Node) {
	name, nodeName, ok := strings.Cut(cursor, ":")
	if !ok {
		return nil, nil
	}
	for _, f := range e.flows {
		if f.Name == name {
			return f, f.Nodes[nodeName]
		}
	}
	return nil, nil
}

func cursorFor(flow, node string) string {
	return fmt.Sprintf("%s:%s", flow, node)
}
