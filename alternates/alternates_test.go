package alternates_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/alternates"
	"github.com/oreview/matchcore/core"
)

func TestComputeOrdersByDescendingAffinityThenID(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x", "y", "z"},
		core.WithScoreSource([][]float64{{0.5, 0.9, 0.9}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	a := core.NewAssignment(1)
	a.Reviewers[0] = []int{0} // x already assigned

	out := alternates.Compute(p, a, 2)
	require.Equal(t, []int{1, 2}, out[0]) // y and z tie at 0.9, y has lower id
}

func TestComputeExcludesConflicted(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{0.5, 0.9}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Free, core.Conflicted}}),
		core.WithDefaultReviewerQuota(0, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	a := core.NewAssignment(1)
	out := alternates.Compute(p, a, 5)
	require.Equal(t, []int{0}, out[0])
}

func TestComputeTruncatesToK(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x", "y", "z"},
		core.WithScoreSource([][]float64{{0.1, 0.2, 0.3}}, 1.0),
		core.WithDefaultReviewerQuota(0, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	a := core.NewAssignment(1)
	out := alternates.Compute(p, a, 1)
	require.Equal(t, []int{2}, out[0])
}
