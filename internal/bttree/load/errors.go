package load

import "fmt"

// LoadError reports a failure to resolve a node call against either the
// registry or the tree source while building an executable tree.
type LoadError struct {
	TypeName string
	Reason   string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load: %s: %s", e.TypeName, e.Reason)
}
