// Package llm turns transcripts into extraction results by calling a
// language model through langchaingo. A deterministic mock extractor backs
// regression replay and tests.
package llm
