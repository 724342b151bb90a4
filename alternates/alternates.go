package alternates

import (
	"sort"

	"github.com/oreview/matchcore/core"
)

// Compute ranks, for every paper, the non-conflicted reviewers absent from
// assignment by descending affinity (ties broken by ascending reviewer id)
// and truncates each list to k. It never mutates assignment.
func Compute(p *core.Problem, assignment *core.Assignment, k int) [][]int {
	np, nr := p.NumPapers(), p.NumReviewers()
	out := make([][]int, np)
	if k <= 0 {
		return out
	}

	for i := 0; i < np; i++ {
		assigned := make(map[int]bool, len(assignment.Reviewers[i]))
		for _, j := range assignment.Reviewers[i] {
			assigned[j] = true
		}

		candidates := make([]int, 0, nr)
		for j := 0; j < nr; j++ {
			if assigned[j] || p.ConstraintAt(i, j) == core.Conflicted {
				continue
			}
			candidates = append(candidates, j)
		}
		sort.Slice(candidates, func(a, b int) bool {
			ja, jb := candidates[a], candidates[b]
			sa, sb := p.Score(i, ja), p.Score(i, jb)
			if sa != sb {
				return sa > sb
			}
			return ja < jb
		})
		if len(candidates) > k {
			candidates = candidates[:k]
		}
		out[i] = candidates
	}
	return out
}
