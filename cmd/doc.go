// Package cmd implements the command-line interface for calscribe.
//
// This package provides the following commands:
//   - extract: Run the extraction pipeline on a transcript file and sync
//     the resulting events into Google Calendar
//   - benchmark: Score extraction quality over a directory of samples
//   - verify: Assert extraction correctness over a directory of samples
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
package cmd
