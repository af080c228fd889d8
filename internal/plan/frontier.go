package plan

// Frontier holds states awaiting expansion. The search strategy is the
// frontier's discipline: FIFO gives breadth-first search, LIFO depth-first.
// Pop on an empty frontier is a programming error and may panic.
type Frontier interface {
	Push(s StateVertex)
	Pop() StateVertex
	Empty() bool
}

// FIFO is the reference frontier: breadth-first expansion in insertion
// order, which with a constant step cost yields a minimum-hop path.
type FIFO struct {
	items []StateVertex
}

// NewFIFO creates an empty FIFO frontier.
func NewFIFO() *FIFO { return &FIFO{} }

// Push appends s to the back of the queue.
func (f *FIFO) Push(s StateVertex) { f.items = append(f.items, s) }

// Pop removes and returns the front of the queue.
func (f *FIFO) Pop() StateVertex {
	s := f.items[0]
	f.items = f.items[1:]
	return s
}

// Empty reports whether the queue is drained.
func (f *FIFO) Empty() bool { return len(f.items) == 0 }

// LIFO is a stack frontier: depth-first expansion. Useful for probing deep
// trajectories quickly; paths it finds are not hop-minimal.
type LIFO struct {
	items []StateVertex
}

// NewLIFO creates an empty LIFO frontier.
func NewLIFO() *LIFO { return &LIFO{} }

// Push places s on top of the stack.
func (f *LIFO) Push(s StateVertex) { f.items = append(f.items, s) }

// Pop removes and returns the top of the stack.
func (f *LIFO) Pop() StateVertex {
	s := f.items[len(f.items)-1]
	f.items = f.items[:len(f.items)-1]
	return s
}

// Empty reports whether the stack is drained.
func (f *LIFO) Empty() bool { return len(f.items) == 0 }
