package lights

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// AliasTable draws indices in O(1) with probability proportional to a set of
// non-negative weights (Vose's method).
type AliasTable struct {
	probability []float64
	alias       []int
	pmf         []float64
}

// NewAliasTable builds a table from weights. Negative weights count as zero;
// if every weight is zero the distribution is uniform.
func NewAliasTable(weights []float64) *AliasTable {
	n := len(weights)
	table := &AliasTable{
		probability: make([]float64, n),
		alias:       make([]int, n),
		pmf:         make([]float64, n),
	}
	if n == 0 {
		return table
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	for i, w := range weights {
		switch {
		case total == 0:
			table.pmf[i] = 1.0 / float64(n)
		case w > 0:
			table.pmf[i] = w / total
		}
	}

	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range table.pmf {
		scaled[i] = p * float64(n)
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		table.probability[s] = scaled[s]
		table.alias[s] = l

		scaled[l] = (scaled[l] + scaled[s]) - 1
		if scaled[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// Leftovers are 1 up to rounding
	for _, i := range large {
		table.probability[i] = 1
		table.alias[i] = i
	}
	for _, i := range small {
		table.probability[i] = 1
		table.alias[i] = i
	}

	return table
}

// Sample picks an index: u.X chooses a column, u.Y chooses between it and its alias.
// Returns -1 for an empty table.
func (t *AliasTable) Sample(u core.Vec2) int {
	n := len(t.probability)
	if n == 0 {
		return -1
	}

	column := int(u.X * float64(n))
	if column >= n {
		column = n - 1
	}
	if u.Y < t.probability[column] {
		return column
	}
	return t.alias[column]
}

// PMF returns the probability of drawing index i
func (t *AliasTable) PMF(i int) float64 {
	if i < 0 || i >= len(t.pmf) {
		return 0
	}
	return t.pmf[i]
}

// Len returns the number of entries
func (t *AliasTable) Len() int {
	return len(t.pmf)
}
