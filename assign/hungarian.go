package assign

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotSquare is returned when the cost matrix is not n×n.
	ErrNotSquare = errors.New("assign: cost matrix is not square")

	// ErrNonFinite is returned when the cost matrix holds NaN or ±Inf.
	ErrNonFinite = errors.New("assign: cost matrix has NaN or Inf")
)

// Hungarian returns a minimum-cost perfect assignment of the square matrix
// cost as rowToCol, where row i is assigned column rowToCol[i].
//
// Algorithm (shortest augmenting path with potentials, Kuhn–Munkres):
//   - Rows are inserted one at a time; u (rows) and v (columns) are dual
//     potentials keeping reduced costs a[i][j] − u[i] − v[j] ≥ 0.
//   - For each new row a Dijkstra-like sweep over columns grows the
//     alternating tree, lowering potentials by the smallest slack delta until
//     a free column is reached, then flips the path recorded in way[].
//
// Indices are 1-based internally; column 0 is a virtual source.
//
// Complexity: O(n³) time, O(n²) space for the working copy.
func Hungarian(cost mat.Matrix) ([]int, error) {
	r, c := cost.Dims()
	if r != c {
		return nil, ErrNotSquare
	}
	n := r
	if n == 0 {
		return []int{}, nil
	}

	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			x := cost.At(i, j)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, ErrNonFinite
			}
			a[i][j] = x
		}
	}

	inf := math.Inf(1)
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // p[j]: row holding column j, 0 if free
	way := make([]int, n+1)
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	var (
		i, j, i0, j0, j1 int
		delta, cur       float64
	)
	for i = 1; i <= n; i++ {
		p[0] = i
		j0 = 0
		for j = 0; j <= n; j++ {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 = p[j0]
			delta = inf
			j1 = 0
			for j = 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur = a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j = 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// Flip the augmenting path back to the source.
		for {
			j1 = way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	rowToCol := make([]int, n)
	for j = 1; j <= n; j++ {
		rowToCol[p[j]-1] = j - 1
	}

	return rowToCol, nil
}
