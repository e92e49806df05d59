package engine

// compositeBehavior implements the shared shape of Sequence and Fallback
// (and their reactive variants): tick children left to right, advancing
// the cursor on the "continue" status and stopping on the other terminal
// status, retaining the cursor across calls unless reactive.
//
// Sequence advances on Success and stops (propagating Fail) on Fail;
// Fallback is its structural dual, advancing on Fail and stopping
// (propagating Success) on Success. Running always stops the loop without
// advancing the cursor, in both cases.
type compositeBehavior struct {
	current            int
	reactive           bool
	advanceOn          Status
	zeroChildrenResult Status
}

func (c *compositeBehavior) Tick(ctx *Context) (Status, error) {
	n := ctx.NumChildren()
	if n == 0 {
		return c.zeroChildrenResult, nil
	}
	if c.reactive {
		c.current = 0
	}
	var result Status
	for c.current < n {
		status, err := ctx.TickChildAt(c.current)
		if err != nil {
			return status, err
		}
		result = status
		if status == Running {
			return result, nil
		}
		c.current++
		if status != c.advanceOn {
			return result, nil
		}
	}
	c.current = 0
	return result, nil
}

// NewSequence returns a memoryful Sequence: ticks children in order,
// advancing past each that returns Success; stops and returns Fail on the
// first child that fails, moving its cursor past that child so the next
// Tick resumes with the following one; returns Success once every child
// has succeeded. An empty Sequence returns Success.
func NewSequence() Behavior {
	return &compositeBehavior{advanceOn: Success, zeroChildrenResult: Success}
}

// NewReactiveSequence is Sequence with no memory: every Tick call
// restarts from the first child.
func NewReactiveSequence() Behavior {
	return &compositeBehavior{reactive: true, advanceOn: Success, zeroChildrenResult: Success}
}

// NewFallback returns a memoryful Fallback: the structural dual of
// Sequence, advancing past each child that fails and stopping on the
// first that succeeds. An empty Fallback returns Fail.
func NewFallback() Behavior {
	return &compositeBehavior{advanceOn: Fail, zeroChildrenResult: Fail}
}

// NewReactiveFallbackStar is Fallback with no memory.
func NewReactiveFallbackStar() Behavior {
	return &compositeBehavior{reactive: true, advanceOn: Fail, zeroChildrenResult: Fail}
}
