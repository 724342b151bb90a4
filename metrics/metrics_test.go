package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/metrics"
)

func buildTrivial(t *testing.T) *core.Problem {
	t.Helper()
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)
	return p
}

func TestComputeReportsTotalsAndMeans(t *testing.T) {
	p := buildTrivial(t)
	a := core.NewAssignment(2)
	a.Reviewers[0] = []int{0}
	a.Reviewers[1] = []int{1}

	snap := metrics.Compute(p, a)
	require.InDelta(t, 2.0, snap.TotalAffinity, 1e-9)
	require.Equal(t, []float64{1.0, 1.0}, snap.PaperMeanAffinity)
	require.Equal(t, []int{1, 1}, snap.ReviewerLoad)
	require.Equal(t, []int{1, 1}, snap.PaperLoad)

	diag := snap.Diagnostics()
	require.Equal(t, 2.0, diag["total_affinity"])
}

func TestCheckQuotasCatchesUnderfilledPaper(t *testing.T) {
	p := buildTrivial(t)
	a := core.NewAssignment(2)
	a.Reviewers[0] = nil
	a.Reviewers[1] = []int{0, 1}

	err := metrics.CheckQuotas(p, a)
	require.Error(t, err)
	var invErr *metrics.InvariantError
	require.ErrorAs(t, err, &invErr)
	require.Equal(t, "P1", invErr.Property)
}

func TestCheckConflictsCatchesViolation(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x"},
		core.WithScoreSource([][]float64{{1}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Conflicted}}),
		core.WithDefaultReviewerQuota(0, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)
	a := core.NewAssignment(1)
	a.Reviewers[0] = []int{0}

	err = metrics.CheckConflicts(p, a)
	require.Error(t, err)
}

func TestCheckLocksCatchesMissingLock(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x"},
		core.WithScoreSource([][]float64{{1}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Locked}}),
		core.WithDefaultReviewerQuota(0, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)
	a := core.NewAssignment(1)

	err = metrics.CheckLocks(p, a)
	require.Error(t, err)
}

func TestCheckUniquenessCatchesDuplicate(t *testing.T) {
	p := buildTrivial(t)
	a := core.NewAssignment(2)
	a.Reviewers[0] = []int{0, 0}

	err := metrics.CheckUniqueness(p, a)
	require.Error(t, err)
}

func TestCheckAlternatesDisjointCatchesOverlap(t *testing.T) {
	p := buildTrivial(t)
	a := core.NewAssignment(2)
	a.Reviewers[0] = []int{0}
	alternates := [][]int{{0}, {}}

	err := metrics.CheckAlternatesDisjoint(p, a, alternates, 5)
	require.Error(t, err)
}

func TestCheckWEF1AcceptsBalancedAssignment(t *testing.T) {
	p := buildTrivial(t)
	a := core.NewAssignment(2)
	a.Reviewers[0] = []int{0}
	a.Reviewers[1] = []int{1}

	require.NoError(t, metrics.CheckWEF1(p, a))
}
