// Package instrumentation provides OpenTelemetry instrumentation for the
// calscribe MCP server and CLI.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for extractions, scoring, calendar operations and HTTP
//   - Distributed tracing for extraction and calendar flows
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Extraction Metrics:
//   - extractions_total: Counter of LLM extraction calls by provider and status
//   - extraction_duration_seconds: Histogram of extraction call durations
//   - extraction_tokens_total: Counter of tokens consumed, by provider and direction
//   - events_extracted_total: Counter of extracted events by action
//
// Calendar API Metrics:
//   - calendar_operations_total: Counter of Calendar operations by operation and status
//   - calendar_operation_duration_seconds: Histogram of Calendar operation durations
//
// Scoring Metrics:
//   - samples_scored_total: Counter of benchmark samples scored by category
//   - sample_f1: Histogram of per-sample F1 scores
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: calscribe)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "calscribe",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordExtraction(ctx, "openai", "success", time.Since(start), usage)
//	recorder.RecordCalendarOperation(ctx, "create", "success", time.Since(start))
package instrumentation
