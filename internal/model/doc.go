// Package model defines the event types shared across extraction, scoring
// and calendar synchronization: the raw events produced by the language
// model, the extraction result envelope, and the validated form with parsed
// timestamps that the calendar layer consumes.
package model
