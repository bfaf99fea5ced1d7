// Package extract_tools provides MCP tools for transcript event extraction
// and extraction scoring.
//
// Available tools:
//   - extract_events: run the full extraction pipeline on a transcript,
//     optionally syncing the results into Google Calendar
//   - score_extraction: reconcile extracted events against expected events
//     and report precision/recall/F1, or assert them under a tolerance level
package extract_tools
