// Package fixture loads regression samples: free-text transcripts paired
// with JSON sidecars that define the expected extraction outcome, the
// tolerance level, a pre-existing calendar context and a canned model
// response for deterministic replay.
package fixture
