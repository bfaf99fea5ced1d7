// Package bench runs the extraction benchmark over a directory of
// transcript samples and scores the results.
//
// Soft mode (Runner) scores every sample, aggregates micro-averaged
// precision/recall/F1 per category, calibrates confidence against
// observed correctness, and tracks latency, token usage and estimated
// cost. Hard mode (RunAssertions) replays fixtures through the canned
// mock responses and fails on any violation.
package bench
