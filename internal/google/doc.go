// Package google provides OAuth2 authentication and token management for
// the Google Calendar API.
//
// Tokens are cached on disk per account. The TokenProvider interface allows
// different token sources to be plugged in; the file-based provider backs
// both the CLI and the STDIO server transport.
package google
