package randomized

import (
	"fmt"

	"github.com/lanl/highs"
	"gonum.org/v1/gonum/mat"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/matrix"
)

// pairVars maps eligible (paper, reviewer) pairs to LP column indices.
// Locked and conflicted pairs never get a column: locked pairs are forced
// in outside the LP entirely (mirroring flowbuild's pre-commit treatment),
// and conflicted pairs are never eligible for any positive probability.
type pairVars struct {
	colOf [][]int // colOf[i][j] = LP column index, or -1
	np, nr int
}

func buildPairVars(p *core.Problem) *pairVars {
	np, nr := p.NumPapers(), p.NumReviewers()
	pv := &pairVars{colOf: make([][]int, np), np: np, nr: nr}
	col := 0
	for i := 0; i < np; i++ {
		pv.colOf[i] = make([]int, nr)
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Conflicted || p.ConstraintAt(i, j) == core.Locked {
				pv.colOf[i][j] = -1
				continue
			}
			pv.colOf[i][j] = col
			col++
		}
	}
	return pv
}

func (pv *pairVars) numCols() int {
	n := 0
	for i := range pv.colOf {
		for _, c := range pv.colOf[i] {
			if c >= 0 {
				n++
			}
		}
	}
	return n
}

// lockedCounts reports, per paper and per reviewer, how many locked pairs
// are already pre-committed and must be subtracted from the LP's row/column
// sum ranges.
func lockedCounts(p *core.Problem) (byPaper, byReviewer []int) {
	np, nr := p.NumPapers(), p.NumReviewers()
	byPaper = make([]int, np)
	byReviewer = make([]int, nr)
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Locked {
				byPaper[i]++
				byReviewer[j]++
			}
		}
	}
	return byPaper, byReviewer
}

// solveLP builds and solves the marginal-probability relaxation:
//
//	maximize   Σ S(p,r)·x(p,r)
//	subject to min_reviewers(p) ≤ Σ_r x(p,r) ≤ max_reviewers(p)   for every paper
//	           min_papers(r)    ≤ Σ_p x(p,r) ≤ max_papers(r)      for every reviewer
//	           0 ≤ x(p,r) ≤ Q(p,r)
//
// with locked pairs excluded from the LP and their capacity subtracted from
// the bounds above. It returns the fractional solution as a matrix.Dense
// (locked pairs left at 0, added back to the assignment after decomposition)
// and the LP objective value.
func solveLP(p *core.Problem) (*matrix.Dense, float64, error) {
	pv := buildPairVars(p)
	numCols := pv.numCols()
	if numCols == 0 {
		frac, err := matrix.NewDense(pv.np, pv.nr)
		return frac, 0, err
	}

	byPaperLocked, byReviewerLocked := lockedCounts(p)

	lp := new(highs.Model)
	lp.VarTypes = make([]highs.VariableType, numCols)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)
	lp.ColCosts = make([]float64, numCols)
	for c := 0; c < numCols; c++ {
		lp.VarTypes[c] = highs.ContinuousType
	}

	for i := 0; i < pv.np; i++ {
		for j := 0; j < pv.nr; j++ {
			c := pv.colOf[i][j]
			if c < 0 {
				continue
			}
			lp.ColLower[c] = 0
			lp.ColUpper[c] = p.ProbLimit(i, j)
			lp.ColCosts[c] = -p.Score(i, j) // HiGHS minimizes by default; negate to maximize affinity.
		}
	}

	papers := p.Papers()
	reviewers := p.Reviewers()
	rowLower := make([]float64, 0, pv.np+pv.nr)
	rowUpper := make([]float64, 0, pv.np+pv.nr)

	for i := 0; i < pv.np; i++ {
		for j := 0; j < pv.nr; j++ {
			if c := pv.colOf[i][j]; c >= 0 {
				lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: i, Col: c, Val: 1})
			}
		}
		rowLower = append(rowLower, float64(maxInt(0, papers[i].MinReviewers-byPaperLocked[i])))
		rowUpper = append(rowUpper, float64(papers[i].MaxReviewers-byPaperLocked[i]))
	}
	for j := 0; j < pv.nr; j++ {
		row := pv.np + j
		for i := 0; i < pv.np; i++ {
			if c := pv.colOf[i][j]; c >= 0 {
				lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: row, Col: c, Val: 1})
			}
		}
		rowLower = append(rowLower, float64(maxInt(0, reviewers[j].MinPapers-byReviewerLocked[j])))
		rowUpper = append(rowUpper, float64(reviewers[j].MaxPapers-byReviewerLocked[j]))
	}
	lp.RowLower = rowLower
	lp.RowUpper = rowUpper

	solution, err := lp.Solve()
	if err != nil {
		return nil, 0, &core.SolverError{Solver: "randomized-lp", Cause: err}
	}
	if solution.Status != highs.Optimal {
		return nil, 0, &core.InfeasibleError{Reason: fmt.Sprintf("LP relaxation status: %v", solution.Status)}
	}

	primal := mat.NewVecDense(numCols, solution.ColumnPrimal[:numCols])
	frac, err := matrix.NewDense(pv.np, pv.nr)
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < pv.np; i++ {
		for j := 0; j < pv.nr; j++ {
			if c := pv.colOf[i][j]; c >= 0 {
				if err := frac.Set(i, j, primal.AtVec(c)); err != nil {
					return nil, 0, err
				}
			}
		}
	}

	return frac, -solution.Objective, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
