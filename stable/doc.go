// Package stable computes stable matchings with randomized-order deferred
// acceptance (Gale–Shapley).
//
// Algorithm:
//  1. Validate both profiles (equal sizes, complete lists). Nothing is
//     allocated before validation succeeds.
//  2. Queue every proposer in a random order.
//  3. Pop a proposer p; consume its best receiver r not yet proposed to.
//     If the list is now empty, p is exhausted.
//  4. A free r accepts p. A held r compares p with its current partner p′
//     in its own list and keeps the better one; the loser is re-queued
//     unless exhausted.
//  5. Stop when the queue is empty or every proposer is exhausted.
//
// Every proposal consumes one list entry, so the loop ends after at most n²
// proposals. The result is a bijection with no blocking pair.
//
// Complexity: O(n²) time and space.
//
// All state (queue, cursors, receiver table) lives inside one Solve call,
// so Solve is safe to run from many goroutines as long as each uses its own
// *rand.Rand.
package stable
