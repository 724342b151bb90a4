package core

import "sort"

// Build canonicalizes raw inputs into a validated, immutable Problem.
// paperIDs and reviewerIDs are the stable external identifiers; their
// position in these slices is the row/column index used by every other
// input (scores, constraints, quotas, probability limits). Solvers iterate
// papers and reviewers in ascending-ID order via Problem.Papers/Reviewers,
// which are pre-sorted regardless of the order IDs were supplied in.
func Build(paperIDs, reviewerIDs []string, opts ...ProblemOption) (*Problem, error) {
	if len(paperIDs) == 0 {
		return nil, &ValidationError{Field: "paperIDs", Reason: "must have at least one paper"}
	}
	if len(reviewerIDs) == 0 {
		return nil, &ValidationError{Field: "reviewerIDs", Reason: "must have at least one reviewer"}
	}
	if err := duplicateCheck("paperIDs", paperIDs); err != nil {
		return nil, err
	}
	if err := duplicateCheck("reviewerIDs", reviewerIDs); err != nil {
		return nil, err
	}

	st := &builderState{defaultMaxReviewers: 1, defaultMaxPapers: 1}
	for _, opt := range opts {
		opt(st)
	}

	np, nr := len(paperIDs), len(reviewerIDs)

	score, err := combineScores(st.scoreSources, np, nr)
	if err != nil {
		return nil, err
	}

	constraint, err := canonicalizeConstraints(st.constraint, np, nr)
	if err != nil {
		return nil, err
	}

	var probLimit [][]float64
	if st.probLimit != nil {
		probLimit, err = canonicalizeProbLimits(st.probLimit, np, nr)
		if err != nil {
			return nil, err
		}
	}

	minR, maxR, err := resolveQuota(st.minReviewers, st.maxReviewers, st.defaultMinReviewers, st.defaultMaxReviewers, np, "min_reviewers/max_reviewers")
	if err != nil {
		return nil, err
	}
	minP, maxP, err := resolveQuota(st.minPapers, st.maxPapers, st.defaultMinPapers, st.defaultMaxPapers, nr, "min_papers/max_papers")
	if err != nil {
		return nil, err
	}

	// Papers/Reviewers are stored sorted by ID; sortOrder maps sorted
	// position -> original input index, so score/constraint/quota lookups
	// still land on the right row/column.
	paperOrder := sortOrder(paperIDs)
	reviewerOrder := sortOrder(reviewerIDs)

	papers := make([]Paper, np)
	paperIndex := make(map[string]int, np)
	for sortedPos, origIdx := range paperOrder {
		papers[sortedPos] = Paper{ID: paperIDs[origIdx], MinReviewers: minR[origIdx], MaxReviewers: maxR[origIdx]}
		paperIndex[paperIDs[origIdx]] = sortedPos
	}
	reviewers := make([]Reviewer, nr)
	reviewerIndex := make(map[string]int, nr)
	for sortedPos, origIdx := range reviewerOrder {
		reviewers[sortedPos] = Reviewer{ID: reviewerIDs[origIdx], MinPapers: minP[origIdx], MaxPapers: maxP[origIdx]}
		reviewerIndex[reviewerIDs[origIdx]] = sortedPos
	}

	sortedScore := reorderMatrix(score, paperOrder, reviewerOrder)
	sortedConstraint := reorderConstraints(constraint, paperOrder, reviewerOrder)
	var sortedProbLimit [][]float64
	if probLimit != nil {
		sortedProbLimit = reorderMatrix(probLimit, paperOrder, reviewerOrder)
	}

	prob := &Problem{
		papers:        papers,
		reviewers:     reviewers,
		paperIndex:    paperIndex,
		reviewerIndex: reviewerIndex,
		score:         sortedScore,
		constraint:    sortedConstraint,
		probLimit:     sortedProbLimit,
	}

	if err := validate(prob); err != nil {
		return nil, err
	}

	return prob, nil
}

// sortOrder returns, for each position in the sorted order, the index into
// the original ids slice that belongs there.
func sortOrder(ids []string) []int {
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return ids[order[a]] < ids[order[b]] })
	return order
}

func reorderMatrix(m [][]float64, paperOrder, reviewerOrder []int) [][]float64 {
	out := make([][]float64, len(paperOrder))
	for i, op := range paperOrder {
		row := make([]float64, len(reviewerOrder))
		for j, or := range reviewerOrder {
			row[j] = m[op][or]
		}
		out[i] = row
	}
	return out
}

func reorderConstraints(m [][]Constraint, paperOrder, reviewerOrder []int) [][]Constraint {
	out := make([][]Constraint, len(paperOrder))
	for i, op := range paperOrder {
		row := make([]Constraint, len(reviewerOrder))
		for j, or := range reviewerOrder {
			row[j] = m[op][or]
		}
		out[i] = row
	}
	return out
}

func duplicateCheck(field string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: field, Reason: "empty id"}
		}
		if _, ok := seen[id]; ok {
			return &ValidationError{Field: field, Reason: "duplicate id: " + id}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// combineScores computes S(p,r) = Σ_i weights[i]·scores[i](p,r), tolerating
// short/ragged source matrices (missing entries default to 0).
func combineScores(sources []ScoreSource, np, nr int) ([][]float64, error) {
	score := make([][]float64, np)
	for i := range score {
		score[i] = make([]float64, nr)
	}
	for _, src := range sources {
		for i := 0; i < np && i < len(src.Scores); i++ {
			row := src.Scores[i]
			for j := 0; j < nr && j < len(row); j++ {
				score[i][j] += src.Weight * row[j]
			}
		}
	}
	return score, nil
}

func canonicalizeConstraints(c [][]Constraint, np, nr int) ([][]Constraint, error) {
	out := make([][]Constraint, np)
	for i := range out {
		out[i] = make([]Constraint, nr)
	}
	if c == nil {
		return out, nil
	}
	for i := 0; i < np && i < len(c); i++ {
		row := c[i]
		for j := 0; j < nr && j < len(row); j++ {
			v := row[j]
			if v != Free && v != Locked && v != Conflicted {
				return nil, &ValidationError{Field: "constraints", Reason: "unknown constraint code"}
			}
			out[i][j] = v
		}
	}
	return out, nil
}

func canonicalizeProbLimits(c [][]float64, np, nr int) ([][]float64, error) {
	out := make([][]float64, np)
	for i := range out {
		out[i] = make([]float64, nr)
		for j := range out[i] {
			out[i][j] = 1.0
		}
	}
	for i := 0; i < np && i < len(c); i++ {
		row := c[i]
		for j := 0; j < nr && j < len(row); j++ {
			v := row[j]
			if v < 0 || v > 1 {
				return nil, &ValidationError{Field: "probability_limits", Reason: "value outside [0,1]"}
			}
			out[i][j] = v
		}
	}
	return out, nil
}

func resolveQuota(mins, maxes []int, defMin, defMax, n int, field string) ([]int, []int, error) {
	outMin := make([]int, n)
	outMax := make([]int, n)
	for i := 0; i < n; i++ {
		lo, hi := defMin, defMax
		if i < len(mins) && mins[i] >= 0 {
			lo = mins[i]
		}
		if i < len(maxes) && maxes[i] >= 0 {
			hi = maxes[i]
		}
		if lo < 0 || hi < lo {
			return nil, nil, &ValidationError{Field: field, Reason: "min must be >= 0 and <= max"}
		}
		outMin[i], outMax[i] = lo, hi
	}
	return outMin, outMax, nil
}
