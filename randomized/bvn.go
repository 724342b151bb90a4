package randomized

import (
	"context"
	"errors"
	"math/rand"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/matrix"
)

const roundEpsilon = 1e-9

// edge is a support-graph edge between paper i and reviewer j, tracked with
// its current fractional value during dependent rounding.
type edge struct {
	i, j int
}

// sample rounds frac (already snapped near 0/1 by the caller) to an
// integral point of the same bipartite degree-range polytope via dependent
// rounding on cycles of the support graph, using rng for every coin flip.
// Because the polytope is a network-flow polytope with integer bounds
// (every pair variable's true domain is {0,1}, and every degree range is
// integral), its vertices are integral: the loop below terminates once the
// support graph is a forest, at which point every edge value is already 0
// or 1. Dependent rounding chooses, at each step, the direction that
// preserves E[x(i,j)] exactly, so the resulting sample's marginal
// inclusion probability for every pair equals the LP's fractional value.
func sample(ctx context.Context, frac *matrix.Dense, rng *rand.Rand) (*matrix.Dense, error) {
	np, nr := frac.Rows(), frac.Cols()
	work := frac.Clone()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cycle, err := findCycle(work, np, nr)
		if err != nil {
			return nil, err
		}
		if cycle == nil {
			break
		}
		if err := roundCycle(work, cycle, rng); err != nil {
			return nil, err
		}
	}

	if err := verifyIntegral(work); err != nil {
		return nil, err
	}
	return work, nil
}

// findCycle runs DFS over the support graph (edges with value strictly
// between 0 and 1) treating papers and reviewers as the two bipartite
// vertex classes, and returns the first cycle found as an ordered edge
// list, or nil if the support graph is a forest. It tracks the full path
// from the current DFS root so a repeat visit to an on-stack node can be
// turned directly into a cycle by slicing the path.
func findCycle(work *matrix.Dense, np, nr int) ([]edge, error) {
	paperVisited := make([]bool, np)
	reviewerVisited := make([]bool, nr)
	paperOnStack := make([]int, np) // index into path where this paper sits, or -1
	reviewerOnStack := make([]int, nr)
	for i := range paperOnStack {
		paperOnStack[i] = -1
	}
	for j := range reviewerOnStack {
		reviewerOnStack[j] = -1
	}

	var path []edge
	var found []edge

	var dfsFromPaper func(i, viaReviewer int) bool
	var dfsFromReviewer func(j, viaPaper int) bool

	dfsFromPaper = func(i, viaReviewer int) bool {
		paperVisited[i] = true
		paperOnStack[i] = len(path)
		for j := 0; j < nr; j++ {
			if j == viaReviewer {
				continue
			}
			v, err := work.At(i, j)
			if err != nil || v <= roundEpsilon || v >= 1-roundEpsilon {
				continue
			}
			path = append(path, edge{i, j})
			if !reviewerVisited[j] {
				if dfsFromReviewer(j, i) {
					return true
				}
			} else if at := reviewerOnStack[j]; at >= 0 {
				found = append([]edge(nil), path[at:]...)
				return true
			}
			path = path[:len(path)-1]
		}
		paperOnStack[i] = -1
		return false
	}

	dfsFromReviewer = func(j, viaPaper int) bool {
		reviewerVisited[j] = true
		reviewerOnStack[j] = len(path)
		for i := 0; i < np; i++ {
			if i == viaPaper {
				continue
			}
			v, err := work.At(i, j)
			if err != nil || v <= roundEpsilon || v >= 1-roundEpsilon {
				continue
			}
			path = append(path, edge{i, j})
			if !paperVisited[i] {
				if dfsFromPaper(i, j) {
					return true
				}
			} else if at := paperOnStack[i]; at >= 0 {
				found = append([]edge(nil), path[at:]...)
				return true
			}
			path = path[:len(path)-1]
		}
		reviewerOnStack[j] = -1
		return false
	}

	for i := 0; i < np; i++ {
		if !paperVisited[i] {
			if dfsFromPaper(i, -1) {
				return found, nil
			}
		}
	}
	return nil, nil
}

// roundCycle applies one dependent-rounding step to the alternating cycle,
// mutating work in place.
func roundCycle(work *matrix.Dense, cycle []edge, rng *rand.Rand) error {
	if len(cycle)%2 != 0 || len(cycle) == 0 {
		// A malformed (odd-length) cycle should not occur in a bipartite
		// support graph; treat it as a fixed point rather than corrupt data.
		return nil
	}

	headroomUp, headroomDown := 1.0, 1.0
	values := make([]float64, len(cycle))
	for k, e := range cycle {
		v, err := work.At(e.i, e.j)
		if err != nil {
			return err
		}
		values[k] = v
		if k%2 == 0 {
			if room := 1 - v; room < headroomUp {
				headroomUp = room
			}
		} else {
			if v < headroomDown {
				headroomDown = v
			}
		}
	}

	pUp := headroomDown / (headroomUp + headroomDown)
	delta := headroomDown
	sign := -1.0
	if rng.Float64() < pUp {
		delta = headroomUp
		sign = 1.0
	}

	for k, e := range cycle {
		dir := sign
		if k%2 != 0 {
			dir = -sign
		}
		if err := work.Set(e.i, e.j, values[k]+dir*delta); err != nil {
			return err
		}
	}
	return nil
}

func verifyIntegral(work *matrix.Dense) error {
	for i := 0; i < work.Rows(); i++ {
		for j := 0; j < work.Cols(); j++ {
			v, err := work.At(i, j)
			if err != nil {
				return err
			}
			if v > roundEpsilon && v < 1-roundEpsilon {
				return &core.SolverError{Solver: "randomized-bvn", Cause: errNonIntegral}
			}
		}
	}
	return nil
}

var errNonIntegral = errors.New("dependent rounding failed to reach an integral point")
