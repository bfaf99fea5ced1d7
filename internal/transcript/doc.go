// Package transcript parses conversation transcripts with speaker labels
// in the form "[Speaker]: dialogue text".
package transcript
