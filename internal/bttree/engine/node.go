package engine

import "github.com/go-bttree/bttree/internal/bttree/porttype"

// Behavior is the tick contract every node type (control or leaf)
// implements. A Behavior instance is owned by exactly one Node in exactly
// one loaded tree and may hold private, mutable state across ticks (a
// Sequence's cursor, a Repeat's remaining count).
type Behavior interface {
	Tick(ctx *Context) (Status, error)
}

// PortBinding is a single resolved entry of a node's port map: either a
// literal value or a blackboard variable name with a declared direction.
type PortBinding struct {
	Literal   bool
	Text      string
	VarName   string
	Direction porttype.Direction
}

// PortMapTable maps a node's own port names to their resolved bindings.
// Built once at load time from the node call's port maps, with first
// occurrence winning on a duplicate key (§4.4 step 3).
type PortMapTable map[string]PortBinding

// Node is one node in a loaded, executable tree: a Behavior plus the
// children it ticks and the port map through which it resolves its own
// ports. NodeType is retained for error messages only.
type Node struct {
	NodeType string
	Behavior Behavior
	Children []*Node
	Ports    PortMapTable
}
