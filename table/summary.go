package table

import "gonum.org/v1/gonum/floats"

// Best reduces the table to the most probable source word of every
// target word. When several source words share the maximum the
// lexicographically smallest one wins.
func (t *Table) Best() map[string]string {
	rows, _ := t.p.Shape()
	result := make(map[string]string, rows)
	for e := 0; e < rows; e += 1 {
		// MaxIdx keeps the first maximum and source ids follow
		// lexicographic order
		best := floats.MaxIdx(t.p.GetRow(e))
		result[t.target.StringOf(e)] = t.source.StringOf(best)
	}
	return result
}
