package plan

import (
	"errors"
	"math"
)

// ErrNoPath is returned when the search exhausts the frontier without
// reaching a goal state under the horizon.
var ErrNoPath = errors.New("search exhausted without reaching the goal")

// PathStep pairs a state with the action taken to reach it. The first step
// of a path is the start state and carries a nil Action.
type PathStep struct {
	State  StateVertex
	Action Action
}

// Result is a successful search outcome: the reconstructed path plus the
// total edge cost and the number of expanded states.
type Result struct {
	Path      []PathStep
	TotalCost float64
	Expanded  int
}

// parentEdge records how a quantized state was first reached.
type parentEdge struct {
	state  StateVertex
	action Action
}

// Solver performs best-first graph search over quantized states with
// at-most-once visitation per Key. The frontier discipline is pluggable;
// with the FIFO reference frontier the search is plain BFS and the result
// is a minimum-hop path, ties broken by action enumeration order.
type Solver struct {
	Quantizer Quantizer
	// NewFrontier builds a fresh frontier per Solve so repeated searches
	// never share leftover states.
	NewFrontier func() Frontier
	Models      []ActionModel
}

// NewSolver creates a solver over the given models. A nil newFrontier
// selects the FIFO reference frontier.
func NewSolver(q Quantizer, newFrontier func() Frontier, models ...ActionModel) *Solver {
	if newFrontier == nil {
		newFrontier = func() Frontier { return NewFIFO() }
	}
	return &Solver{Quantizer: q, NewFrontier: newFrontier, Models: models}
}

// Solve searches from start until isGoal holds for a popped state, then
// reconstructs and returns the path. maxCost is an advisory budget:
// expansions whose accumulated cost reaches it are pruned; pass
// math.Inf(1) to disable. Returns ErrNoPath when the frontier drains.
func (s *Solver) Solve(start StateVertex, isGoal func(StateVertex) bool, maxCost float64) (*Result, error) {
	visited := map[Key]bool{s.Quantizer.Quantize(start): true}
	// The start key is deliberately absent from parents: reconstruction
	// walks parent pointers until a key has no entry.
	parents := make(map[Key]parentEdge)
	costs := map[Key]float64{s.Quantizer.Quantize(start): 0}

	frontier := s.NewFrontier()
	frontier.Push(start)
	expanded := 0

	for !frontier.Empty() {
		cur := frontier.Pop()
		curKey := s.Quantizer.Quantize(cur)

		if isGoal(cur) {
			path := s.reconstruct(cur, parents)
			return &Result{Path: path, TotalCost: pathCost(path), Expanded: expanded}, nil
		}
		expanded++

		for _, succ := range s.neighbors(cur) {
			key := s.Quantizer.Quantize(succ.State)
			if visited[key] {
				continue
			}
			cost := costs[curKey] + succ.Action.Cost()
			if !math.IsInf(maxCost, 1) && cost >= maxCost {
				continue
			}
			visited[key] = true
			costs[key] = cost
			parents[key] = parentEdge{state: cur, action: succ.Action}
			frontier.Push(succ.State)
		}
	}

	return nil, ErrNoPath
}

// neighbors expands a state through every action model, in model order
// then enumeration order. Infeasible applications are silently dropped.
func (s *Solver) neighbors(cur StateVertex) []PathStep {
	var result []PathStep
	for _, model := range s.Models {
		for _, action := range model.Enumerate(cur) {
			next, err := model.Apply(cur, action)
			if err != nil || next == nil {
				continue
			}
			result = append(result, PathStep{State: *next, Action: action})
		}
	}
	return result
}

// reconstruct walks parent pointers from goal back to the start (the first
// key with no parent entry) and reverses the walk. Each step carries the
// action of the edge that reached its state; the start carries nil.
func (s *Solver) reconstruct(goal StateVertex, parents map[Key]parentEdge) []PathStep {
	var path []PathStep
	state := goal
	for {
		edge, ok := parents[s.Quantizer.Quantize(state)]
		if !ok {
			path = append(path, PathStep{State: state})
			break
		}
		path = append(path, PathStep{State: state, Action: edge.action})
		state = edge.state
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathCost sums edge costs; the start step's nil action contributes zero.
func pathCost(path []PathStep) float64 {
	var total float64
	for _, step := range path {
		if step.Action != nil {
			total += step.Action.Cost()
		}
	}
	return total
}
