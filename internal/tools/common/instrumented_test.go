package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/calscribe/calscribe/internal/instrumentation"
	"github.com/calscribe/calscribe/internal/server"
)

func newTestServerContext(t *testing.T, withMetrics bool) *server.ServerContext {
	t.Helper()

	sc := server.NewServerContext(context.Background(), nil)
	t.Cleanup(func() { _ = sc.Shutdown() })

	if withMetrics {
		provider := sdkmetric.NewMeterProvider()
		t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

		metrics, err := instrumentation.NewMetrics(provider.Meter("test"), false)
		if err != nil {
			t.Fatalf("NewMetrics() error: %v", err)
		}
		sc.SetMetrics(metrics)
	}
	return sc
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	sc := newTestServerContext(t, true)

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
	if result == nil {
		t.Error("expected result, got nil")
	}
}

func TestInstrumentedToolHandler_Error(t *testing.T) {
	sc := newTestServerContext(t, true)

	expectedErr := errors.New("test error")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	_, err := wrapped(context.Background(), mcp.CallToolRequest{})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestInstrumentedToolHandler_NoMetricsPassesThrough(t *testing.T) {
	sc := newTestServerContext(t, false)

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	if _, err := wrapped(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called without instrumentation")
	}
}

func TestInstrumentedToolHandler_ToolError(t *testing.T) {
	// A result with IsError set counts as an error for metrics but is not a
	// Go error.
	sc := newTestServerContext(t, true)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("bad input"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no Go error, got %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result")
	}
}
