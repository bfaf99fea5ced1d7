package assign

import (
	"math"
	"sort"
)

// Pair is one row/column assignment in a minimum-cost matching, carrying the
// original matrix cost of the cell.
type Pair struct {
	Row  int
	Col  int
	Cost float64
}

// padCost fills the dummy rows or columns that square up a rectangular
// matrix. It sits far above any real pairing cost so dummies never displace
// a real assignment.
const padCost = 1e9

// Solve computes a minimum-cost assignment over the given cost matrix using
// the Kuhn-Munkres algorithm in O(n³). The matrix may be rectangular; it is
// padded to square internally and assignments involving padding are not
// returned, so the result has min(rows, cols) pairs. An empty matrix yields
// no pairs. Pairs are returned in ascending row order.
func Solve(cost [][]float64) []Pair {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := len(cost[0])
	if cols == 0 {
		return nil
	}

	n := rows
	if cols > n {
		n = cols
	}

	at := func(i, j int) float64 {
		if i < rows && j < cols {
			return cost[i][j]
		}
		return padCost
	}

	// Potentials on rows (u) and columns (v), 1-indexed. match[j] is the
	// row currently assigned to column j, 0 when free.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	match := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0

		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow an alternating tree from row i until a free column is found.
		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := at(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Flip the augmenting path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	pairs := make([]Pair, 0, min(rows, cols))
	for j := 1; j <= n; j++ {
		i := match[j]
		if i == 0 {
			continue
		}
		row, col := i-1, j-1
		if row >= rows || col >= cols {
			continue
		}
		pairs = append(pairs, Pair{Row: row, Col: col, Cost: cost[row][col]})
	}

	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Row < pairs[b].Row })
	return pairs
}
