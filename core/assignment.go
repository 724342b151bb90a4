package core

// Assignment is the set of (paper, reviewer) edges produced by a solver.
// Reviewers is indexed by paper index and holds reviewer indices in
// ascending order, matching the external-interface ordering requirement.
type Assignment struct {
	Reviewers [][]int // Reviewers[paperIdx] = sorted reviewer indices assigned to that paper
}

// NewAssignment allocates an empty Assignment for a problem with np papers.
func NewAssignment(np int) *Assignment {
	return &Assignment{Reviewers: make([][]int, np)}
}

// TotalAffinity sums S(p,r) over every assigned pair.
func (a *Assignment) TotalAffinity(p *Problem) float64 {
	var total float64
	for i, revs := range a.Reviewers {
		for _, j := range revs {
			total += p.Score(i, j)
		}
	}
	return total
}

// PaperMeanAffinity returns the mean affinity of paperIdx's current
// assignment, or 0 if it has no reviewers assigned.
func (a *Assignment) PaperMeanAffinity(p *Problem, paperIdx int) float64 {
	revs := a.Reviewers[paperIdx]
	if len(revs) == 0 {
		return 0
	}
	var sum float64
	for _, j := range revs {
		sum += p.Score(paperIdx, j)
	}
	return sum / float64(len(revs))
}

// Diagnostics is a free-form key/value bag for iteration counts, per-paper
// means, LP status, and other solver-internal reporting.
type Diagnostics map[string]interface{}

// SolveResult is the terminal output of any solver.
type SolveResult struct {
	Status       Status
	Assignment   *Assignment
	Alternates   [][]int // Alternates[paperIdx] = ordered reviewer indices, up to num_alternates
	Objective    float64
	Fractional   [][]float64 // Randomized only; nil otherwise
	Diagnostics  Diagnostics
	Err          error // set when Status is Infeasible/Cancelled/SolverError
}
