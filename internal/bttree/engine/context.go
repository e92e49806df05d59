package engine

import "github.com/go-bttree/bttree/internal/bttree/porttype"

// Context is the mutable state visible to a Behavior while it is
// executing: the blackboard it reads and writes through, the port map it
// resolves its own port names against, and the children it may tick.
//
// A single Context is allocated per top-level Tick call and threaded
// through the whole recursive descent. Ticking a child rebinds Ports and
// Children to that child's own values for the duration of the child's
// Tick call, then restores the caller's values — on every exit path,
// including an error return — so a control node's own Ports/Children are
// always what they were before it ticked any child. SubtreeNode
// additionally swaps Blackboard around its single child's tick, since a
// subtree call introduces a fresh local variable scope.
type Context struct {
	Blackboard *Blackboard
	Ports      PortMapTable
	Children   []*Node
}

// NumChildren reports how many children the currently-executing node has.
func (ctx *Context) NumChildren() int {
	return len(ctx.Children)
}

// TickChildAt ticks the i-th child of the currently-executing node,
// rebinding Ports and Children to the child's own values for the
// duration of the call and restoring the caller's values before
// returning, on every path.
func (ctx *Context) TickChildAt(i int) (Status, error) {
	child := ctx.Children[i]
	savedPorts, savedChildren := ctx.Ports, ctx.Children
	defer func() { ctx.Ports, ctx.Children = savedPorts, savedChildren }()
	ctx.Ports = child.Ports
	ctx.Children = child.Children
	return child.Behavior.Tick(ctx)
}

// Get resolves port against the currently-executing node's port map: a
// literal binding returns its text directly, a variable binding bound
// Output reads as absent (a write-only port yields nothing back to its
// own node), and any other variable binding reads through Blackboard.
// ok is false if port has no binding at all, if the binding is
// Output-only, or if a readable variable binding's blackboard value is
// unset.
func (ctx *Context) Get(port string) (string, bool) {
	binding, ok := ctx.Ports[port]
	if !ok {
		return "", false
	}
	if binding.Literal {
		return binding.Text, true
	}
	if binding.Direction == porttype.Output {
		return "", false
	}
	return ctx.Blackboard.Get(binding.VarName)
}

// Set writes value through port, which must have an Output or InOut
// variable binding in the currently-executing node's port map.
func (ctx *Context) Set(nodeType, port, value string) error {
	binding, ok := ctx.Ports[port]
	if !ok {
		return &UndefinedPortError{NodeType: nodeType, Port: port}
	}
	if binding.Literal {
		return &WriteToLiteralError{NodeType: nodeType, Port: port}
	}
	if binding.Direction != porttype.Output && binding.Direction != porttype.InOut {
		return &WriteToInputPortError{NodeType: nodeType, Port: port, VarName: binding.VarName}
	}
	ctx.Blackboard.Set(binding.VarName, value)
	return nil
}
