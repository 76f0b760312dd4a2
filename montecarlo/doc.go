// SPDX-License-Identifier: MIT
// Package montecarlo searches for a good stable matching of an instance
// with partial preference lists.
//
// Each trial:
//
//  1. completes both profiles with the trial's own random stream,
//  2. runs deferred acceptance on the completed profiles,
//  3. discards the match if it pairs a blacklisted couple,
//  4. otherwise scores both sides against the RAW (uncompleted) lists:
//     overall = (w·proposerTotal + (1−w)·receiverTotal) / n.
//
// The best trial is the one with the highest overall score; ties go to the
// lowest trial index. Trial i always draws from core.StreamRand(Seed, i),
// so the result for a seed is the same for any Workers value.
//
// If every trial is discarded Run returns an *ExhaustionError after all
// trials ran. Validation errors from the solver abort the run immediately.
//
// Logging is opt-in: Run logs only through Options.Logger.
package montecarlo
