package engine

// ifBehavior backs the synthetic "if" node the parser desugars an
// if-statement into, with children [condition, then-branch, else-branch?]
// (§4.2). A Running condition propagates as Running without entering
// either branch — chosen over the alternative of collapsing Running into
// the then-branch, since that would let the then-branch run against a
// condition that has not actually settled.
type ifBehavior struct{}

func NewIf() Behavior { return ifBehavior{} }

func (ifBehavior) Tick(ctx *Context) (Status, error) {
	if ctx.NumChildren() < 2 {
		return Fail, &StructuralError{NodeType: "if", Reason: "requires a condition and a then-branch child"}
	}
	condStatus, err := ctx.TickChildAt(0)
	if err != nil {
		return condStatus, err
	}
	switch condStatus {
	case Running:
		return Running, nil
	case Success:
		return ctx.TickChildAt(1)
	default: // Fail
		if ctx.NumChildren() >= 3 {
			return ctx.TickChildAt(2)
		}
		return Fail, nil
	}
}
