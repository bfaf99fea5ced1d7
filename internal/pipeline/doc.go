// Package pipeline orchestrates a full extraction run: parse the
// transcript, fetch calendar context, extract events with the LLM,
// validate them, and sync the survivors to the calendar.
//
// Calendar access is optional. Without it the pipeline runs in dry-run
// mode and reports what each event would have done. A context fetch
// failure downgrades to a warning and an empty context rather than
// failing the run.
package pipeline
