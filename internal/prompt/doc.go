// Package prompt builds the system and user prompts for the event
// extraction call.
package prompt
