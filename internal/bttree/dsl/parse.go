package dsl

import (
	"github.com/go-bttree/bttree/internal/bttree/porttype"
)

// Parse parses a full DSL source document into a TreeSource. Per §4.2, the
// grammar is a sequence of `tree` declarations; trailing whitespace after
// the last declaration is tolerated, trailing non-whitespace is an error.
func Parse(source string) (*TreeSource, error) {
	var roots []*TreeRootDef
	rest := source
	for {
		t := emptyLines(rest)
		if t == "" {
			rest = t
			break
		}
		root, next, err := parseTreeRoot(t)
		if err != nil {
			return nil, wrapParseErrorf(source, t, err, "failed to parse tree declaration")
		}
		roots = append(roots, root)
		rest = next
	}
	if len(roots) == 0 {
		return nil, parseErrorf(source, source, "source contains no tree declarations")
	}
	return &TreeSource{Roots: roots}, nil
}

// parseTreeRoot parses `"tree" ident ports? "=" tree_elem`.
func parseTreeRoot(s string) (*TreeRootDef, string, error) {
	rest, kw, err := identifier(s)
	if err != nil {
		return nil, s, lexErrorf("did not recognize the first identifier: %v", err)
	}
	if kw != "tree" {
		return nil, s, lexErrorf(`the first identifier must be "tree", got %q`, kw)
	}
	rest, name, err := identifier(rest)
	if err != nil {
		return nil, s, lexErrorf("missing tree name: %v", err)
	}
	var ports []PortDef
	if next, ps, ok := tryParsePortDefs(rest); ok {
		rest, ports = next, ps
	}
	rest, err = matchChar(rest, '=')
	if err != nil {
		return nil, s, lexErrorf("tree name should be followed by an equal (=): %v", err)
	}
	elem, rest, err := parseTreeElem(rest)
	if err != nil {
		return nil, s, lexErrorf("tree declaration body parse error: %v", err)
	}
	def, ok := elem.(*TreeDef)
	if !ok {
		return nil, s, lexErrorf("a tree declaration's body must be a node call, not a variable declaration")
	}
	return &TreeRootDef{Name: name, Ports: ports, Root: def}, rest, nil
}

// parseTreeElem parses `tree_elem := if_stmt | var_decl | node_call`. The
// leading identifier is consumed once to check for the "if"/"var"
// keywords; if it's neither, parsing backtracks to the start and
// re-parses the whole element as a node_call, which consumes the same
// identifier again as the node's type name.
func parseTreeElem(s string) (TreeElem, string, error) {
	rest, kw, err := identifier(s)
	if err != nil {
		return nil, s, lexErrorf("expected a tree element: %v", err)
	}
	switch kw {
	case "if":
		def, next, err := parseIfStmt(rest)
		if err != nil {
			return nil, s, err
		}
		return def, next, nil
	case "var":
		v, next, err := parseVarDecl(rest)
		if err != nil {
			return nil, s, err
		}
		return v, next, nil
	default:
		def, next, err := parseNodeCall(s)
		if err != nil {
			return nil, s, err
		}
		return def, next, nil
	}
}

// parseNodeCall parses `node_call := ident port_maps_parens? block?`.
func parseNodeCall(s string) (*TreeDef, string, error) {
	rest, name, err := identifier(s)
	if err != nil {
		return nil, s, lexErrorf("expected a node name: %v", err)
	}
	var portMaps []PortMap
	if next, pm, ok := tryParsePortMapsParens(rest); ok {
		rest, portMaps = next, pm
	}
	var elems []TreeElem
	if next, es, ok := tryParseBlock(rest); ok {
		rest, elems = next, es
	}
	return buildTreeDef(name, portMaps, elems), rest, nil
}

// buildTreeDef assembles a TreeDef from a node call's parsed pieces,
// desugaring `var x = true/false` declarations into a synthetic SetBool
// child that runs before the rest of the block, per §4.2's var-desugaring
// rule.
func buildTreeDef(name string, portMaps []PortMap, elems []TreeElem) *TreeDef {
	var children []*TreeDef
	var vars []VarDef
	for _, e := range elems {
		switch v := e.(type) {
		case *TreeDef:
			children = append(children, v)
		case *VarDef:
			if v.HasInit {
				children = append(children, setBoolDesugar(v.Name, v.Init))
			}
			vars = append(vars, *v)
		}
	}
	return &TreeDef{TypeName: name, PortMaps: portMaps, Children: children, VarDecls: vars}
}

func setBoolDesugar(name, init string) *TreeDef {
	return &TreeDef{
		TypeName: "SetBool",
		PortMaps: []PortMap{
			{NodePort: "value", Source: PortSource{Literal: true, Text: init}},
			{NodePort: "output", Source: PortSource{VarName: name, Direction: porttype.Output}},
		},
	}
}

// parseVarDecl parses `var_decl := ident ("=" ("true" | "false"))?`, with
// "var" already consumed by the caller.
func parseVarDecl(s string) (*VarDef, string, error) {
	rest, name, err := identifier(s)
	if err != nil {
		return nil, s, lexErrorf("expected a variable name: %v", err)
	}
	next, err := matchChar(rest, '=')
	if err != nil {
		return &VarDef{Name: name}, rest, nil
	}
	next, init, err := identifier(next)
	if err != nil {
		return nil, s, lexErrorf("expected true or false as the initializer: %v", err)
	}
	if init != "true" && init != "false" {
		return nil, s, lexErrorf("expected true or false as the initializer, got %q", init)
	}
	return &VarDef{Name: name, Init: init, HasInit: true}, next, nil
}

// parseIfStmt parses `if_stmt := "(" node_call ")" block ("else" block)?`,
// with the "if" keyword already consumed by the caller, and desugars it
// into a synthetic TreeDef of type "if" whose children are
// [condition, then-Sequence, else-Sequence?], per §4.2.
func parseIfStmt(s string) (*TreeDef, string, error) {
	rest, err := matchChar(s, '(')
	if err != nil {
		return nil, s, lexErrorf("expected '(' after if: %v", err)
	}
	cond, rest, err := parseNodeCall(rest)
	if err != nil {
		return nil, s, lexErrorf("if condition parse error: %v", err)
	}
	rest, err = matchChar(rest, ')')
	if err != nil {
		return nil, s, lexErrorf("expected ')' to close the if condition: %v", err)
	}
	children := []*TreeDef{cond}
	next, elems, ok := tryParseBlock(rest)
	if !ok {
		return nil, s, lexErrorf("expected a block after the if condition")
	}
	rest = next
	children = append(children, buildTreeDef("Sequence", nil, elems))

	if after, ok := matchKeyword(rest, "else"); ok {
		elseNext, elseElems, ok2 := tryParseBlock(after)
		if !ok2 {
			return nil, s, lexErrorf("expected a block after else")
		}
		rest = elseNext
		children = append(children, buildTreeDef("Sequence", nil, elseElems))
	}
	return &TreeDef{TypeName: "if", Children: children}, rest, nil
}

// tryParseBlock parses `block := "{" tree_elem* "}"`. It reports ok=false,
// leaving s untouched, if there's no leading '{' or the block never finds
// a closing '}' — the grammar treats an unparseable block as simply
// absent, letting the caller fall back to "no block" (a leaf node call)
// and leave the unconsumed input for whatever parses next to fail loudly
// on, rather than reporting the syntax error at the block itself.
func tryParseBlock(s string) (rest string, elems []TreeElem, ok bool) {
	t, is := peekChar(s, '{')
	if !is {
		return s, nil, false
	}
	rest, err := matchChar(t, '{')
	if err != nil {
		return s, nil, false
	}
	for {
		elem, next, err := parseTreeElem(rest)
		if err != nil {
			break
		}
		elems = append(elems, elem)
		rest = next
	}
	rest, err = matchChar(rest, '}')
	if err != nil {
		return s, nil, false
	}
	return rest, elems, true
}

// tryParsePortMapsParens parses `port_maps_parens := "(" (port_map
// ("," port_map)*)? ")"`. Like tryParseBlock, any internal failure
// (including a missing closing paren) discards the whole attempt rather
// than surfacing a syntax error, per §4.2's optional-group semantics.
func tryParsePortMapsParens(s string) (rest string, pm []PortMap, ok bool) {
	t, is := peekChar(s, '(')
	if !is {
		return s, nil, false
	}
	rest, err := matchChar(t, '(')
	if err != nil {
		return s, nil, false
	}
	for {
		one, next, err := parsePortMap(rest)
		if err != nil {
			break
		}
		pm = append(pm, one)
		rest = next
		next2, err := matchChar(rest, ',')
		if err != nil {
			break
		}
		rest = next2
	}
	rest, err = matchChar(rest, ')')
	if err != nil {
		return s, nil, false
	}
	return rest, pm, true
}

// parsePortMap parses `port_map := ident arrow (string_literal | ident)`.
func parsePortMap(s string) (PortMap, string, error) {
	rest, portName, err := identifier(s)
	if err != nil {
		return PortMap{}, s, err
	}
	rest, dir, err := matchArrow(rest)
	if err != nil {
		return PortMap{}, s, err
	}
	if next, lit, err2 := stringLiteral(rest); err2 == nil {
		return PortMap{NodePort: portName, Source: PortSource{Literal: true, Text: lit}}, next, nil
	}
	next, varName, err3 := identifier(rest)
	if err3 != nil {
		return PortMap{}, s, lexErrorf("expected a string literal or a variable name on the right of %q: %v", portName, err3)
	}
	return PortMap{NodePort: portName, Source: PortSource{VarName: varName, Direction: dir}}, next, nil
}

// tryParsePortDefs parses `ports := "(" (port_def ("," port_def)*)? ")"`.
func tryParsePortDefs(s string) (rest string, defs []PortDef, ok bool) {
	t, is := peekChar(s, '(')
	if !is {
		return s, nil, false
	}
	rest, err := matchChar(t, '(')
	if err != nil {
		return s, nil, false
	}
	for {
		pd, next, err := parsePortDef(rest)
		if err != nil {
			break
		}
		defs = append(defs, pd)
		rest = next
		next2, err := matchChar(rest, ',')
		if err != nil {
			break
		}
		rest = next2
	}
	rest, err = matchChar(rest, ')')
	if err != nil {
		return s, nil, false
	}
	return rest, defs, true
}

// parsePortDef parses `port_def := ("in" | "out" | "inout") ident`.
func parsePortDef(s string) (PortDef, string, error) {
	rest, kw, err := identifier(s)
	if err != nil {
		return PortDef{}, s, err
	}
	var dir porttype.Direction
	switch kw {
	case "in":
		dir = porttype.Input
	case "out":
		dir = porttype.Output
	case "inout":
		dir = porttype.InOut
	default:
		return PortDef{}, s, lexErrorf("expected a port direction (in/out/inout), got %q", kw)
	}
	rest, name, err := identifier(rest)
	if err != nil {
		return PortDef{}, s, lexErrorf("expected a port name after %q: %v", kw, err)
	}
	return PortDef{Direction: dir, Name: name}, rest, nil
}
