package core

// Constraint describes the hard relationship between a paper and a reviewer.
type Constraint int8

const (
	// Free means the pair is unconstrained.
	Free Constraint = 0
	// Locked forces the pair into every returned assignment.
	Locked Constraint = 1
	// Conflicted forbids the pair from ever appearing in an assignment.
	Conflicted Constraint = -1
)

// Status reports the terminal outcome of a solve.
type Status int

const (
	// StatusComplete means a valid assignment was produced.
	StatusComplete Status = iota
	// StatusInfeasible means no assignment can satisfy the hard constraints.
	StatusInfeasible
	// StatusCancelled means the caller's cancellation probe fired mid-solve.
	StatusCancelled
	// StatusSolverError means an internal numeric failure occurred.
	StatusSolverError
)

// String renders a Status for logs and diagnostics.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "Complete"
	case StatusInfeasible:
		return "Infeasible"
	case StatusCancelled:
		return "Cancelled"
	case StatusSolverError:
		return "SolverError"
	default:
		return "Unknown"
	}
}

// SolverKind names one of the four interchangeable solver implementations.
type SolverKind int

const (
	SolverMinMax SolverKind = iota
	SolverFairFlow
	SolverRandomized
	SolverFairSequence
)

// String renders a SolverKind for logs and diagnostics.
func (k SolverKind) String() string {
	switch k {
	case SolverMinMax:
		return "MinMax"
	case SolverFairFlow:
		return "FairFlow"
	case SolverRandomized:
		return "Randomized"
	case SolverFairSequence:
		return "FairSequence"
	default:
		return "Unknown"
	}
}

// ScoreSource is one dense affinity matrix, paired with a weight, that
// contributes to the effective score S(p,r) = Σ_i weights[i]·scores[i](p,r).
type ScoreSource struct {
	Scores [][]float64 // [paper][reviewer], missing entries treated as 0
	Weight float64
}

// Paper is a demand-side entity: it needs between MinReviewers and
// MaxReviewers reviewers assigned to it.
type Paper struct {
	ID            string
	MinReviewers  int
	MaxReviewers  int
}

// Reviewer is a supply-side entity: it can take on between MinPapers and
// MaxPapers papers.
type Reviewer struct {
	ID        string
	MinPapers int
	MaxPapers int
}

// Problem is the canonical, immutable input to every solver. Construct one
// with Build; a validated Problem's fields are safe to read directly but
// must not be mutated by solvers.
type Problem struct {
	papers    []Paper
	reviewers []Reviewer

	// paperIndex/reviewerIndex map an entity ID to its position in papers/
	// reviewers, which is also the row/column index into score/constraint.
	paperIndex    map[string]int
	reviewerIndex map[string]int

	score       [][]float64    // effective S(p,r), row-major [paper][reviewer]
	constraint  [][]Constraint // [paper][reviewer]
	probLimit   [][]float64    // [paper][reviewer], nil unless supplied (Randomized only)
}

// Papers returns the papers in ascending-id order (the canonical iteration
// order used throughout the solvers).
func (p *Problem) Papers() []Paper { return p.papers }

// Reviewers returns the reviewers in ascending-id order.
func (p *Problem) Reviewers() []Reviewer { return p.reviewers }

// NumPapers returns the number of papers in the problem.
func (p *Problem) NumPapers() int { return len(p.papers) }

// NumReviewers returns the number of reviewers in the problem.
func (p *Problem) NumReviewers() int { return len(p.reviewers) }

// PaperIndex returns the row index of the paper with the given ID, and
// whether it exists.
func (p *Problem) PaperIndex(id string) (int, bool) {
	i, ok := p.paperIndex[id]
	return i, ok
}

// ReviewerIndex returns the column index of the reviewer with the given ID,
// and whether it exists.
func (p *Problem) ReviewerIndex(id string) (int, bool) {
	i, ok := p.reviewerIndex[id]
	return i, ok
}

// Score returns the effective affinity S(p,r) for the papers/reviewers at
// the given row/column indices.
func (p *Problem) Score(paperIdx, reviewerIdx int) float64 {
	return p.score[paperIdx][reviewerIdx]
}

// ConstraintAt returns the hard constraint for the given row/column indices.
func (p *Problem) ConstraintAt(paperIdx, reviewerIdx int) Constraint {
	return p.constraint[paperIdx][reviewerIdx]
}

// ProbLimit returns the marginal probability upper bound Q(p,r), or 1.0 if
// the problem carries no probability-limit matrix (i.e. all solvers other
// than Randomized).
func (p *Problem) ProbLimit(paperIdx, reviewerIdx int) float64 {
	if p.probLimit == nil {
		return 1.0
	}
	return p.probLimit[paperIdx][reviewerIdx]
}

// HasProbLimits reports whether a probability-limit matrix was supplied.
func (p *Problem) HasProbLimits() bool { return p.probLimit != nil }
