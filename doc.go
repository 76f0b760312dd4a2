// Package lvmatch pairs two equally sized groups of agents from ranked,
// possibly partial preference lists.
//
// 🚀 What is lvmatch?
//
//	A pure-Go matching toolkit with two strategies:
//		• Monte-Carlo deferred acceptance: complete partial lists at random,
//		  run Gale–Shapley, drop blacklisted outcomes, keep the best score
//		• Weighted assignment: score every pair, solve the optimal
//		  assignment (Hungarian) in one shot
//
// ✨ Why lvmatch?
//
//   - Deterministic – every random draw flows from one seed
//   - Parallel – trials fan out to workers with identical results
//   - Typed errors – validation failures name the side, agent and defect
//
// Packages:
//
//	core/       : agents, preference lists, blacklists, matches, validation
//	completion/ : random completion of partial lists
//	stable/     : deferred acceptance and stability checks
//	score/      : binary/graded scores, warps, boost
//	assign/     : score matrices (gonum) + Hungarian solver
//	montecarlo/ : multi-trial controller
//	generator/  : random instances for tests and demos
//	ingest/     : text file readers and writers
//	config/     : YAML configuration
//	store/      : SQLite run history
//	metrics/    : Prometheus instruments
//	cmd/lvmatch : command-line interface
//
// Quick example:
//
//	proposers:  A: X,Y    B: Y,X
//	receivers:  X: B,A    Y: A,B
//
//	deferred acceptance ⇒ A - X, B - Y (both proposers get their first choice)
//
//	go install github.com/katalvlaran/lvmatch/cmd/lvmatch@latest
package lvmatch
