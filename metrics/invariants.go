package metrics

import (
	"fmt"

	"github.com/oreview/matchcore/core"
)

// CheckQuotas verifies P1 and P2: every paper's assigned reviewer count
// falls within [MinReviewers, MaxReviewers], and every reviewer's assigned
// paper count falls within [MinPapers, MaxPapers].
func CheckQuotas(p *core.Problem, a *core.Assignment) error {
	papers, reviewers := p.Papers(), p.Reviewers()
	load := make([]int, len(reviewers))
	for i, revs := range a.Reviewers {
		n := len(revs)
		if n < papers[i].MinReviewers || n > papers[i].MaxReviewers {
			return &InvariantError{Property: "P1", Reason: fmt.Sprintf("paper %s has %d reviewers, want [%d,%d]", papers[i].ID, n, papers[i].MinReviewers, papers[i].MaxReviewers)}
		}
		for _, j := range revs {
			load[j]++
		}
	}
	for j, r := range reviewers {
		if load[j] < r.MinPapers || load[j] > r.MaxPapers {
			return &InvariantError{Property: "P2", Reason: fmt.Sprintf("reviewer %s has %d papers, want [%d,%d]", r.ID, load[j], r.MinPapers, r.MaxPapers)}
		}
	}
	return nil
}

// CheckConflicts verifies P3: no assigned pair carries a Conflicted
// constraint.
func CheckConflicts(p *core.Problem, a *core.Assignment) error {
	papers, reviewers := p.Papers(), p.Reviewers()
	for i, revs := range a.Reviewers {
		for _, j := range revs {
			if p.ConstraintAt(i, j) == core.Conflicted {
				return &InvariantError{Property: "P3", Reason: fmt.Sprintf("assigned pair (%s,%s) is conflicted", papers[i].ID, reviewers[j].ID)}
			}
		}
	}
	return nil
}

// CheckLocks verifies P4: every locked pair appears in the assignment.
func CheckLocks(p *core.Problem, a *core.Assignment) error {
	papers, reviewers := p.Papers(), p.Reviewers()
	for i := 0; i < p.NumPapers(); i++ {
		assigned := make(map[int]bool, len(a.Reviewers[i]))
		for _, j := range a.Reviewers[i] {
			assigned[j] = true
		}
		for j := 0; j < p.NumReviewers(); j++ {
			if p.ConstraintAt(i, j) == core.Locked && !assigned[j] {
				return &InvariantError{Property: "P4", Reason: fmt.Sprintf("locked pair (%s,%s) is missing from the assignment", papers[i].ID, reviewers[j].ID)}
			}
		}
	}
	return nil
}

// CheckUniqueness verifies P5: no paper lists the same reviewer twice.
func CheckUniqueness(p *core.Problem, a *core.Assignment) error {
	papers := p.Papers()
	for i, revs := range a.Reviewers {
		seen := make(map[int]bool, len(revs))
		for _, j := range revs {
			if seen[j] {
				return &InvariantError{Property: "P5", Reason: fmt.Sprintf("paper %s lists reviewer index %d twice", papers[i].ID, j)}
			}
			seen[j] = true
		}
	}
	return nil
}

// CheckAlternatesDisjoint verifies P6: a paper's alternates never overlap
// its own assignment or its conflicted reviewers, and never exceed
// numAlternates.
func CheckAlternatesDisjoint(p *core.Problem, a *core.Assignment, alternates [][]int, numAlternates int) error {
	papers := p.Papers()
	for i, alts := range alternates {
		if len(alts) > numAlternates {
			return &InvariantError{Property: "P6", Reason: fmt.Sprintf("paper %s has %d alternates, want <= %d", papers[i].ID, len(alts), numAlternates)}
		}
		assigned := make(map[int]bool, len(a.Reviewers[i]))
		for _, j := range a.Reviewers[i] {
			assigned[j] = true
		}
		for _, j := range alts {
			if assigned[j] {
				return &InvariantError{Property: "P6", Reason: fmt.Sprintf("paper %s has reviewer index %d in both assignment and alternates", papers[i].ID, j)}
			}
			if p.ConstraintAt(i, j) == core.Conflicted {
				return &InvariantError{Property: "P6", Reason: fmt.Sprintf("paper %s has conflicted reviewer index %d among alternates", papers[i].ID, j)}
			}
		}
	}
	return nil
}

// CheckAll runs every universal invariant (P1-P6) and returns the first
// violation encountered, or nil if the assignment is clean.
func CheckAll(p *core.Problem, a *core.Assignment, alternates [][]int, numAlternates int) error {
	if err := CheckQuotas(p, a); err != nil {
		return err
	}
	if err := CheckConflicts(p, a); err != nil {
		return err
	}
	if err := CheckLocks(p, a); err != nil {
		return err
	}
	if err := CheckUniqueness(p, a); err != nil {
		return err
	}
	return CheckAlternatesDisjoint(p, a, alternates, numAlternates)
}

// CheckWEF1 verifies the FairSequence weighted-envy-free-up-to-one-item
// property: for every ordered pair of papers (p,q), there exists a
// reviewer r assigned to q whose removal makes q's per-slot mean no
// greater than p's per-slot mean, from p's point of view.
func CheckWEF1(p *core.Problem, a *core.Assignment) error {
	papers := p.Papers()
	np := len(papers)

	ownMean := make([]float64, np)
	for i := 0; i < np; i++ {
		var sum float64
		for _, r := range a.Reviewers[i] {
			sum += p.Score(i, r)
		}
		ownMean[i] = sum / float64(papers[i].MaxReviewers)
	}

	for i := 0; i < np; i++ {
		for q := 0; q < np; q++ {
			if q == i || len(a.Reviewers[q]) == 0 {
				continue
			}
			var sumQFromI float64
			for _, r := range a.Reviewers[q] {
				sumQFromI += p.Score(i, r)
			}
			satisfied := false
			for _, r := range a.Reviewers[q] {
				withoutR := (sumQFromI - p.Score(i, r)) / float64(papers[q].MaxReviewers)
				if ownMean[i] >= withoutR {
					satisfied = true
					break
				}
			}
			if !satisfied {
				return &InvariantError{Property: "WEF1", Reason: fmt.Sprintf("paper %s envies paper %s beyond one item", papers[i].ID, papers[q].ID)}
			}
		}
	}
	return nil
}
