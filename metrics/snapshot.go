package metrics

import "github.com/oreview/matchcore/core"

// Snapshot bundles the whole-assignment metrics computed after a solve
// completes: the values the diagnostics map and objective field are
// derived from.
type Snapshot struct {
	TotalAffinity     float64
	PaperMeanAffinity []float64 // indexed by paper
	ReviewerLoad      []int     // indexed by reviewer
	PaperLoad         []int     // indexed by paper
}

// Compute derives a Snapshot from a completed assignment. It never mutates
// p or a.
func Compute(p *core.Problem, a *core.Assignment) Snapshot {
	np, nr := p.NumPapers(), p.NumReviewers()
	s := Snapshot{
		PaperMeanAffinity: make([]float64, np),
		ReviewerLoad:      make([]int, nr),
		PaperLoad:         make([]int, np),
	}
	for i := 0; i < np; i++ {
		s.PaperMeanAffinity[i] = a.PaperMeanAffinity(p, i)
		s.PaperLoad[i] = len(a.Reviewers[i])
		for _, j := range a.Reviewers[i] {
			s.ReviewerLoad[j]++
			s.TotalAffinity += p.Score(i, j)
		}
	}
	return s
}

// Diagnostics renders the snapshot as the free-form key/value map the
// external interface's diagnostics field carries.
func (s Snapshot) Diagnostics() core.Diagnostics {
	return core.Diagnostics{
		"total_affinity":      s.TotalAffinity,
		"paper_mean_affinity": s.PaperMeanAffinity,
		"reviewer_load":       s.ReviewerLoad,
		"paper_load":          s.PaperLoad,
	}
}
