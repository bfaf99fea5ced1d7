package instrumentation

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calscribe/calscribe/internal/model"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrProvider  = "provider"
	attrAction    = "action"
	attrCategory  = "category"
	attrDirection = "direction"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Extraction metrics
	extractionsTotal   metric.Int64Counter
	extractionDuration metric.Float64Histogram
	extractionTokens   metric.Int64Counter
	eventsExtracted    metric.Int64Counter

	// Calendar API metrics
	calendarOperationsTotal   metric.Int64Counter
	calendarOperationDuration metric.Float64Histogram

	// Scoring metrics
	samplesScoredTotal metric.Int64Counter
	sampleF1           metric.Float64Histogram

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error

	m.extractionsTotal, err = meter.Int64Counter(
		"extractions_total",
		metric.WithDescription("Total number of LLM extraction calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.extractionDuration, err = meter.Float64Histogram(
		"extraction_duration_seconds",
		metric.WithDescription("LLM extraction call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, err
	}

	m.extractionTokens, err = meter.Int64Counter(
		"extraction_tokens_total",
		metric.WithDescription("Total LLM tokens consumed by extraction calls"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	m.eventsExtracted, err = meter.Int64Counter(
		"events_extracted_total",
		metric.WithDescription("Total number of events extracted, by action"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	m.calendarOperationsTotal, err = meter.Int64Counter(
		"calendar_operations_total",
		metric.WithDescription("Total number of Google Calendar operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	m.calendarOperationDuration, err = meter.Float64Histogram(
		"calendar_operation_duration_seconds",
		metric.WithDescription("Google Calendar operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, err
	}

	m.samplesScoredTotal, err = meter.Int64Counter(
		"samples_scored_total",
		metric.WithDescription("Total number of benchmark samples scored"),
		metric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, err
	}

	m.sampleF1, err = meter.Float64Histogram(
		"sample_f1",
		metric.WithDescription("Per-sample F1 score distribution"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 1.0),
	)
	if err != nil {
		return nil, err
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, err
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, err
	}

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, err
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordExtraction records one LLM extraction call with its token usage.
func (m *Metrics) RecordExtraction(ctx context.Context, provider, status string, duration time.Duration, usage model.Usage) {
	if m.extractionsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrProvider, provider),
		attribute.String(attrStatus, status),
	}

	m.extractionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.extractionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	providerAttr := attribute.String(attrProvider, provider)
	if usage.InputTokens > 0 {
		m.extractionTokens.Add(ctx, int64(usage.InputTokens), metric.WithAttributes(
			providerAttr, attribute.String(attrDirection, "input")))
	}
	if usage.OutputTokens > 0 {
		m.extractionTokens.Add(ctx, int64(usage.OutputTokens), metric.WithAttributes(
			providerAttr, attribute.String(attrDirection, "output")))
	}
}

// RecordExtractedEvent counts one extracted event by action.
func (m *Metrics) RecordExtractedEvent(ctx context.Context, action model.Action) {
	if m.eventsExtracted == nil {
		return
	}
	m.eventsExtracted.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrAction, string(action))))
}

// RecordCalendarOperation records a Google Calendar operation
// (list, create, update, delete) with its status and duration.
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.calendarOperationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.calendarOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.calendarOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSampleScored records one scored benchmark sample.
func (m *Metrics) RecordSampleScored(ctx context.Context, category string, f1 float64) {
	if m.samplesScoredTotal == nil {
		return
	}

	catAttr := attribute.String(attrCategory, category)
	m.samplesScoredTotal.Add(ctx, 1, metric.WithAttributes(catAttr))
	m.sampleF1.Record(ctx, f1, metric.WithAttributes(catAttr))
}

// RecordToolInvocation records an MCP tool invocation.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocationWithAccount records an MCP tool invocation, adding the
// account label only when detailed labels are enabled.
func (m *Metrics) RecordToolInvocationWithAccount(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m.toolInvocationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, -1)
}
