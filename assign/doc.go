// Package assign solves the matching problem as a one-shot weighted
// bipartite assignment.
//
// Pipeline:
//
//	P[i][j] = score of receiver j in proposer i's list        (n×n)
//	R[i][j] = score of proposer i in receiver j's list        (built n×n as
//	          receivers×proposers, then transposed)
//	C       = w·P + (1−w)·R
//	cost    = max(C) − C
//	assign  = Hungarian(cost)                                 (min-cost perfect matching)
//	total   = Σ C[i][assign[i]]
//
// Rows and columns are addressed through one Index per side, built once and
// shared by both matrix builders and by the decoder, so the transposed
// receiver matrix always lines up with the proposer matrix.
//
// Scores use score.AssignmentParams (Graded, Exponential, boost 1); this
// path has no blacklist and no random completion, so both profiles must
// already be complete.
//
// Complexity: O(n²) matrix construction + O(n³) Hungarian.
package assign
