package dsl

import "github.com/go-bttree/bttree/internal/bttree/porttype"

// PortSource is the right-hand side of a port map entry: either a literal
// string or a reference to a blackboard variable bound with a direction.
type PortSource struct {
	Literal   bool
	Text      string // valid when Literal is true
	VarName   string // valid when Literal is false
	Direction porttype.Direction
}

// PortMap binds a node's declared port name to a PortSource, as written at
// a node-call site: `nodePort <- source` / `nodePort -> source` /
// `nodePort <-> source`.
type PortMap struct {
	NodePort string
	Source   PortSource
}

// TreeElem is either a *TreeDef (a node call, possibly desugared from an
// if-statement) or a *VarDef (a local variable declaration).
type TreeElem interface {
	isTreeElem()
}

// TreeDef is a single node call: a type name, its port maps, and its child
// node calls. `if` statements desugar into a TreeDef with TypeName "if"
// whose children are [condition, then-Sequence, else-Sequence?]; `var x =
// true` declarations desugar an extra synthetic SetBool child into the
// enclosing TreeDef's Children.
type TreeDef struct {
	TypeName string
	PortMaps []PortMap
	Children []*TreeDef
	VarDecls []VarDef
}

func (*TreeDef) isTreeElem() {}

// VarDef is a local variable declaration inside a node-call block, with an
// optional boolean initializer.
type VarDef struct {
	Name    string
	Init    string // "true" or "false", valid when HasInit
	HasInit bool
}

func (*VarDef) isTreeElem() {}

// PortDef declares a named, directional port on a tree root, making that
// root callable as a subtree with an explicit port interface.
type PortDef struct {
	Direction porttype.Direction
	Name      string
}

// TreeRootDef is one `tree NAME (ports) = ...` declaration.
type TreeRootDef struct {
	Name  string
	Ports []PortDef
	Root  *TreeDef
}

// TreeSource is the parsed result of an entire DSL source document: every
// `tree` declaration it contains, in source order.
type TreeSource struct {
	Roots []*TreeRootDef
}

// Lookup returns the tree root declared under name, if any.
func (s *TreeSource) Lookup(name string) (*TreeRootDef, bool) {
	for _, r := range s.Roots {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}
