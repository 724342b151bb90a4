package core

// ProblemOption configures a Problem under construction via Build. Options
// follow the same functional-options shape used throughout the codebase:
// each is a small closure applied in order, later options override earlier
// ones on the same field, except WithScoreSource, whose sources accumulate.
type ProblemOption func(*builderState)

type builderState struct {
	scoreSources []ScoreSource
	constraint   [][]Constraint
	probLimit    [][]float64

	minReviewers, maxReviewers []int // per paper, defaults filled from scalar
	minPapers, maxPapers       []int // per reviewer

	defaultMinReviewers, defaultMaxReviewers int
	defaultMinPapers, defaultMaxPapers       int
}

// WithScoreSource adds one weighted score matrix. The effective affinity is
// the weighted sum over all sources supplied; missing (short) rows/columns
// are treated as zero.
func WithScoreSource(scores [][]float64, weight float64) ProblemOption {
	return func(b *builderState) {
		b.scoreSources = append(b.scoreSources, ScoreSource{Scores: scores, Weight: weight})
	}
}

// WithConstraints sets the full [paper][reviewer] constraint matrix.
func WithConstraints(c [][]Constraint) ProblemOption {
	return func(b *builderState) { b.constraint = c }
}

// WithProbabilityLimits sets the [paper][reviewer] marginal probability
// upper bound matrix, required only by the Randomized solver.
func WithProbabilityLimits(q [][]float64) ProblemOption {
	return func(b *builderState) { b.probLimit = q }
}

// WithDefaultReviewerQuota sets the scalar min/max reviewers applied to
// every paper unless overridden by WithPaperQuota.
func WithDefaultReviewerQuota(min, max int) ProblemOption {
	return func(b *builderState) { b.defaultMinReviewers, b.defaultMaxReviewers = min, max }
}

// WithDefaultPaperQuota sets the scalar min/max papers applied to every
// reviewer unless overridden by WithReviewerQuota.
func WithDefaultPaperQuota(min, max int) ProblemOption {
	return func(b *builderState) { b.defaultMinPapers, b.defaultMaxPapers = min, max }
}

// WithPaperQuota overrides the min/max reviewers for one paper index.
func WithPaperQuota(paperIdx, min, max int) ProblemOption {
	return func(b *builderState) {
		b.ensurePaperQuota(paperIdx + 1)
		b.minReviewers[paperIdx], b.maxReviewers[paperIdx] = min, max
	}
}

// WithReviewerQuota overrides the min/max papers for one reviewer index.
func WithReviewerQuota(reviewerIdx, min, max int) ProblemOption {
	return func(b *builderState) {
		b.ensureReviewerQuota(reviewerIdx + 1)
		b.minPapers[reviewerIdx], b.maxPapers[reviewerIdx] = min, max
	}
}

func (b *builderState) ensurePaperQuota(n int) {
	for len(b.minReviewers) < n {
		b.minReviewers = append(b.minReviewers, -1)
		b.maxReviewers = append(b.maxReviewers, -1)
	}
}

func (b *builderState) ensureReviewerQuota(n int) {
	for len(b.minPapers) < n {
		b.minPapers = append(b.minPapers, -1)
		b.maxPapers = append(b.maxPapers, -1)
	}
}
