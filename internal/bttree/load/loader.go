package load

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-bttree/bttree/internal/bttree/dsl"
	"github.com/go-bttree/bttree/internal/bttree/engine"
)

// Tree is one executable tree produced by Load: a node graph bound to no
// particular blackboard, ready to be ticked against any number of
// independent Blackboards (see Tick). A Tree whose requested root was
// not defined in its source is "empty" (root is nil) rather than an
// error (§6); ticking it always reports Success without touching bb,
// the same vacuous-Success convention a childless Sequence uses. ID
// distinguishes this load from any other in logs, correlating log lines
// back to a specific Load call when a host has many independently-loaded
// trees in flight at once.
type Tree struct {
	ID   uuid.UUID
	root *engine.Node
}

// Empty reports whether this Tree has no root node, because the
// requested tree declaration was not present in its source (§6).
func (t *Tree) Empty() bool { return t.root == nil }

// Tick drives this tree's root node once against bb, or reports Success
// without ticking anything if the tree is empty (see Empty). A single
// Tree may be ticked against many different Blackboards over its
// lifetime, and a single TreeSource may back many independently-loaded
// Trees (§5): neither sharing is visible to the other, since all mutable
// state lives either in bb or inside the Tree's own node graph.
func (t *Tree) Tick(bb *engine.Blackboard) (engine.Status, error) {
	if t.root == nil {
		return engine.Success, nil
	}
	ctx := &engine.Context{Blackboard: bb, Ports: t.root.Ports, Children: t.root.Children}
	return t.root.Behavior.Tick(ctx)
}

// Load resolves every subtree reference in source reachable from its root
// tree declaration (by default "main", override with WithRootName),
// constructs the registry-backed node graph, and returns the resulting
// executable Tree (§4.4). When no declaration named cfg.rootName exists,
// Load returns a non-nil, empty Tree rather than an error: per §6, "no
// main" is a distinct outcome from a load failure, reserved for node
// types the registry and source both fail to resolve.
func Load(source *dsl.TreeSource, registry *engine.Registry, opts ...Option) (*Tree, error) {
	cfg := &config{rootName: "main", logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	id := uuid.New()

	rootDecl, ok := source.Lookup(cfg.rootName)
	if !ok {
		cfg.logger.Info("bttree: load: no tree declaration for requested root, returning empty tree",
			"load_id", id.String(), "root", cfg.rootName)
		return &Tree{ID: id}, nil
	}

	l := &builder{source: source, registry: registry}
	root, err := l.build(rootDecl.Root)
	if err != nil {
		return nil, err
	}

	cfg.logger.Info("bttree: load: loaded tree",
		"load_id", id.String(), "root", cfg.rootName, "nodes", countNodes(root))
	return &Tree{ID: id, root: root}, nil
}

// builder walks a dsl.TreeDef graph, resolving each node call against a
// matching tree declaration (a subtree call) or, failing that, against the
// registry, and produces the corresponding engine.Node graph.
type builder struct {
	source   *dsl.TreeSource
	registry *engine.Registry
}

func (l *builder) build(def *dsl.TreeDef) (*engine.Node, error) {
	ports := buildPortMapTable(def.PortMaps)

	// Step 1 (§4.4): a type name that matches some tree declaration is
	// always a subtree call, checked ahead of the registry — a tree
	// declaration shadows a registered node type of the same name — and
	// def.Children is never descended into for this call.
	if rootDecl, ok := l.source.Lookup(def.TypeName); ok {
		inner, err := l.build(rootDecl.Root)
		if err != nil {
			return nil, fmt.Errorf("subtree %q: %w", def.TypeName, err)
		}
		subtreePorts := make([]engine.SubtreePort, 0, len(rootDecl.Ports))
		for _, pd := range rootDecl.Ports {
			subtreePorts = append(subtreePorts, engine.SubtreePort{Name: pd.Name, Direction: pd.Direction})
		}
		sn := &engine.SubtreeNode{Name: def.TypeName, Ports: subtreePorts, Root: inner}
		return &engine.Node{NodeType: def.TypeName, Behavior: sn, Ports: ports}, nil
	}

	// Step 2 (§4.4): otherwise, load the children first, then resolve
	// the type name against the registry.
	children := make([]*engine.Node, 0, len(def.Children))
	for _, c := range def.Children {
		child, err := l.build(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	behavior, ok := l.registry.New(def.TypeName)
	if !ok {
		return nil, &LoadError{TypeName: def.TypeName, Reason: "not registered and no matching tree declaration"}
	}
	return &engine.Node{NodeType: def.TypeName, Behavior: behavior, Children: children, Ports: ports}, nil
}

// buildPortMapTable resolves a node call's port maps into an
// engine.PortMapTable, with the first occurrence of a duplicate key
// winning (§4.4 step 3, §9).
func buildPortMapTable(pms []dsl.PortMap) engine.PortMapTable {
	t := make(engine.PortMapTable, len(pms))
	for _, pm := range pms {
		if _, exists := t[pm.NodePort]; exists {
			continue
		}
		t[pm.NodePort] = engine.PortBinding{
			Literal:   pm.Source.Literal,
			Text:      pm.Source.Text,
			VarName:   pm.Source.VarName,
			Direction: pm.Source.Direction,
		}
	}
	return t
}

// countNodes counts a loaded tree's nodes for the load-summary log line,
// descending into a SubtreeNode's own root since that isn't reachable
// through Node.Children.
func countNodes(n *engine.Node) int {
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	if sn, ok := n.Behavior.(*engine.SubtreeNode); ok && sn.Root != nil {
		count += countNodes(sn.Root)
	}
	return count
}
