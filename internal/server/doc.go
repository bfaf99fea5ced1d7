// Package server provides the MCP server context, session management,
// and operational HTTP endpoints for the calscribe application.
//
// # Key Components
//
// ServerContext manages the shared dependencies of a running server: the
// LLM extractor and Google Calendar clients. Calendar clients are created
// lazily per account and cached, so a single server instance can sync
// events into several calendars.
//
// SessionIDManager handles multi-account session tracking for HTTP
// transport. It maps Bearer tokens to stable session IDs, enabling
// multiple users to share a single MCP server instance.
//
// HealthChecker exposes /healthz, /readyz and /healthz/detailed for
// Kubernetes probes, and MetricsServer serves Prometheus metrics on a
// dedicated port so operational data stays off the main MCP listener.
package server
