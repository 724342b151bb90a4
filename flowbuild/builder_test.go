package flowbuild_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/flowbuild"
)

func TestBuildTrivialTwoByTwoPicksIdentityMatching(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res, err := flowbuild.Build(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, []int{0}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{1}, res.Assignment.Reviewers[1])
	require.InDelta(t, 2.0, res.TotalAffinity, 1e-9)
}

func TestBuildConflictForcesSwap(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Conflicted, core.Free}, {core.Free, core.Free}}),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res, err := flowbuild.Build(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{0}, res.Assignment.Reviewers[1])
	require.InDelta(t, 0.2, res.TotalAffinity, 1e-9)
}

func TestBuildLockedPairOverridesOptimum(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Free, core.Locked}, {core.Free, core.Free}}),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res, err := flowbuild.Build(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{0}, res.Assignment.Reviewers[1])
	require.InDelta(t, 0.2, res.TotalAffinity, 1e-9)
}

func TestBuildForbiddenEdgeIsExcluded(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.9}, {0.8, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	forbidden := map[flowbuild.Edge]bool{{PaperIdx: 0, ReviewerIdx: 0}: true}
	res, err := flowbuild.Build(context.Background(), p, forbidden)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{0}, res.Assignment.Reviewers[1])
}

func TestBuildRepairsMinimumBelowMaxFlowResult(t *testing.T) {
	// Both reviewers strongly prefer paper A, and A can absorb both of them
	// (max_reviewers=2), so max-flow-then-mincost alone concentrates all
	// supply on A and leaves B with zero reviewers, below its minimum of 1.
	// The repair pass must reassign one reviewer from A to B.
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 1.0}, {0.01, 0.01}}, 1.0),
		core.WithPaperQuota(0, 1, 2),
		core.WithPaperQuota(1, 1, 2),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	res, err := flowbuild.Build(context.Background(), p, nil)
	require.NoError(t, err)
	require.Len(t, res.Assignment.Reviewers[0], 1)
	require.Len(t, res.Assignment.Reviewers[1], 1)
}

func TestBuildRepairsMinimumViaMultiHopChain(t *testing.T) {
	// P1 is only eligible for R1, P2 is eligible for either, P3 is only
	// eligible for R2. The max-cost-max-flow solve (ignoring minimums)
	// picks {P2-R1, P3-R2} since that pairing has the higher total
	// affinity, leaving P1 — whose sole eligible reviewer R1 is already
	// taken — below its minimum. No single-hop swap exists: R1's occupant
	// P2 is exactly at its own minimum, so it cannot simply be dropped.
	// The only feasible repair relocates P2 onto R2 (bumping P3, whose
	// minimum is zero, off it), which frees R1 for P1.
	p, err := core.Build(
		[]string{"P1", "P2", "P3"}, []string{"R1", "R2"},
		core.WithScoreSource([][]float64{
			{0.5, 0},
			{2.0, 0.05},
			{0, 2.0},
		}, 1.0),
		core.WithConstraints([][]core.Constraint{
			{core.Free, core.Conflicted},
			{core.Free, core.Free},
			{core.Conflicted, core.Free},
		}),
		core.WithPaperQuota(0, 1, 1),
		core.WithPaperQuota(1, 1, 1),
		core.WithPaperQuota(2, 0, 1),
		core.WithDefaultReviewerQuota(0, 1),
	)
	require.NoError(t, err)

	res, err := flowbuild.Build(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, []int{0}, res.Assignment.Reviewers[0], "P1 must end up assigned to its only eligible reviewer, R1")
}

func TestBuildInfeasibleMinimumReturnsError(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x"},
		core.WithScoreSource([][]float64{{1.0}, {1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	_, err = flowbuild.Build(context.Background(), p, nil)
	require.Error(t, err)
	var ie *core.InfeasibleError
	require.ErrorAs(t, err, &ie)
}
