package engine

import "github.com/go-bttree/bttree/internal/bttree/porttype"

// SubtreePort describes one port declared on a subtree's root (§4.2's
// `ports` clause on a `tree` declaration), used by SubtreeNode to decide
// which of the caller's port map entries to copy in before, and copy back
// out after, ticking the subtree's own root.
type SubtreePort struct {
	Name      string
	Direction porttype.Direction
}

// SubtreeNode calls another tree root as a subtree: it owns a private
// Blackboard, lazily created on first tick, that persists across ticks
// for as long as the SubtreeNode itself is alive (so state a repeat
// counter or a local variable holds inside the subtree survives a
// Running result the way it would for any other node). On each tick it
// copies the caller's Input/InOut-bound port values into that local
// blackboard, swaps the Context over to it for the duration of ticking
// the subtree's root, then copies Output/InOut port values back out.
type SubtreeNode struct {
	Name  string
	Ports []SubtreePort
	Root  *Node

	bb *Blackboard
}

func (s *SubtreeNode) Tick(ctx *Context) (Status, error) {
	if s.bb == nil {
		s.bb = NewBlackboard()
	}
	for _, p := range s.Ports {
		if p.Direction == porttype.Input || p.Direction == porttype.InOut {
			if v, ok := ctx.Get(p.Name); ok {
				s.bb.Set(p.Name, v)
			}
		}
	}

	savedBB, savedPorts, savedChildren := ctx.Blackboard, ctx.Ports, ctx.Children
	ctx.Blackboard = s.bb
	ctx.Ports = s.Root.Ports
	ctx.Children = s.Root.Children
	status, err := s.Root.Behavior.Tick(ctx)
	ctx.Blackboard, ctx.Ports, ctx.Children = savedBB, savedPorts, savedChildren

	if err != nil {
		return status, err
	}

	for _, p := range s.Ports {
		if p.Direction == porttype.Output || p.Direction == porttype.InOut {
			if v, ok := s.bb.Get(p.Name); ok {
				if setErr := ctx.Set(s.Name, p.Name, v); setErr != nil {
					return status, setErr
				}
			}
		}
	}
	return status, nil
}
