package engine

import "fmt"

// UndefinedPortError reports a write through a port name that has no
// entry in the currently-executing node's port map (§7).
type UndefinedPortError struct {
	NodeType string
	Port     string
}

func (e *UndefinedPortError) Error() string {
	return fmt.Sprintf("engine: node %s: port %q is undefined", e.NodeType, e.Port)
}

// WriteToInputPortError reports a write through a port bound with
// Input direction (§4.5, §7).
type WriteToInputPortError struct {
	NodeType string
	Port     string
	VarName  string
}

func (e *WriteToInputPortError) Error() string {
	return fmt.Sprintf("engine: node %s: port %q is bound to input variable %q, cannot write", e.NodeType, e.Port, e.VarName)
}

// WriteToLiteralError reports a write through a port bound to a string
// literal rather than a variable (§4.5, §7).
type WriteToLiteralError struct {
	NodeType string
	Port     string
}

func (e *WriteToLiteralError) Error() string {
	return fmt.Sprintf("engine: node %s: port %q is bound to a literal, cannot write", e.NodeType, e.Port)
}

// InvalidCountError reports Repeat/Retry's "n" port missing or not a
// decimal integer (§7).
type InvalidCountError struct {
	NodeType string
	Value    string
	Present  bool
	Err      error
}

func (e *InvalidCountError) Error() string {
	if !e.Present {
		return fmt.Sprintf("engine: node %s: port %q is missing", e.NodeType, "n")
	}
	return fmt.Sprintf("engine: node %s: port %q value %q is not a decimal integer: %v", e.NodeType, "n", e.Value, e.Err)
}

func (e *InvalidCountError) Unwrap() error { return e.Err }

// StructuralError reports a node built with a shape the runtime cannot
// execute, such as an "if" node called directly with too few children.
// This isn't part of spec's error taxonomy proper (those all concern
// port resolution or parsing) — it's a defensive backstop against
// hand-written DSL source that calls a control node type directly
// outside of the desugaring that normally guarantees its shape.
type StructuralError struct {
	NodeType string
	Reason   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("engine: node %s: %s", e.NodeType, e.Reason)
}
