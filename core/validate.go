package core

// validate enforces the structural invariants that must hold before any
// solver runs: no pair is simultaneously locked and conflicted, and every
// locked pair fits within its endpoints' capacity.
func validate(p *Problem) error {
	for i, paper := range p.papers {
		for j, reviewer := range p.reviewers {
			c := p.constraint[i][j]
			if c == Locked {
				if p.HasProbLimits() && p.probLimit[i][j] != 1.0 {
					return &ValidationError{Field: "probability_limits", Reason: "locked pair (" + paper.ID + "," + reviewer.ID + ") must have Q=1"}
				}
			}
		}
	}

	for i, paper := range p.papers {
		locked := 0
		for j := range p.reviewers {
			if p.constraint[i][j] == Locked {
				locked++
			}
		}
		if locked > paper.MaxReviewers {
			return &ValidationError{Field: "constraints", Reason: "paper " + paper.ID + " has more locked reviewers than max_reviewers"}
		}
	}
	for j, reviewer := range p.reviewers {
		locked := 0
		for i := range p.papers {
			if p.constraint[i][j] == Locked {
				locked++
			}
		}
		if locked > reviewer.MaxPapers {
			return &ValidationError{Field: "constraints", Reason: "reviewer " + reviewer.ID + " has more locked papers than max_papers"}
		}
	}

	return nil
}

// FeasibilityCheck performs the sum checks from §3 plus a max-flow test on
// the hard-constraint graph (locked edges forced in, conflicts removed). It
// returns nil if the problem is feasible, or an *InfeasibleError describing
// the first violated condition otherwise.
func FeasibilityCheck(p *Problem) error {
	sumMinReviewers, sumMaxReviewers := 0, 0
	for _, paper := range p.papers {
		sumMinReviewers += paper.MinReviewers
		sumMaxReviewers += paper.MaxReviewers
	}
	sumMinPapers, sumMaxPapers := 0, 0
	for _, reviewer := range p.reviewers {
		sumMinPapers += reviewer.MinPapers
		sumMaxPapers += reviewer.MaxPapers
	}

	if sumMinReviewers > sumMaxPapers {
		return &InfeasibleError{Reason: "sum of min_reviewers exceeds sum of max_papers"}
	}
	if sumMaxReviewers < sumMinPapers {
		return &InfeasibleError{Reason: "sum of max_reviewers is below sum of min_papers"}
	}

	return feasibilityFlowCheck(p)
}
