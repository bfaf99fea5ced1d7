package extract_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calscribe/calscribe/internal/server"
	"github.com/calscribe/calscribe/internal/tools/common"
)

// RegisterExtractionTools registers the extraction and scoring tools with
// the MCP server
func RegisterExtractionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	extractTool := mcp.NewTool("extract_events",
		mcp.WithDescription("Extract calendar events from a conversation transcript and optionally sync them into Google Calendar"),
		mcp.WithString("transcript",
			mcp.Required(),
			mcp.Description("The conversation transcript. Lines may carry '[HH:MM:SS] Speaker: text' or 'Speaker: text' format."),
		),
		mcp.WithString("owner",
			mcp.Description("Name of the calendar owner whose commitments should be extracted"),
		),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("now",
			mcp.Description("Reference time for resolving relative dates (ISO 8601, e.g. '2026-02-20T10:00:00'). Defaults to the current time."),
		),
		mcp.WithBoolean("dryRun",
			mcp.Description("Report planned calendar operations without executing them"),
		),
	)

	s.AddTool(extractTool, common.InstrumentedToolHandler("extract_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExtractEvents(ctx, request, sc)
		}))

	scoreTool := mcp.NewTool("score_extraction",
		mcp.WithDescription("Reconcile extracted events against expected events and report precision/recall/F1, or assert them under a tolerance level"),
		mcp.WithString("extracted",
			mcp.Required(),
			mcp.Description("JSON array of extracted events, or a full extraction result object with an 'events' field"),
		),
		mcp.WithString("expected",
			mcp.Required(),
			mcp.Description("JSON array of expected events (action, title, start_time, optional end_time/location/attendees_contain/existing_event_id_required)"),
		),
		mcp.WithString("tolerance",
			mcp.Description("Tolerance level: 'strict', 'moderate' (default) or 'relaxed'"),
		),
		mcp.WithString("calendarContext",
			mcp.Description("JSON array of calendar context events shown to the model (id, summary, start, end), in prompt ID order"),
		),
		mcp.WithBoolean("assert",
			mcp.Description("Assert instead of score: the result lists every violation rather than metrics"),
		),
	)

	s.AddTool(scoreTool, common.InstrumentedToolHandler("score_extraction", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScoreExtraction(ctx, request, sc)
		}))

	return nil
}

// stringArg extracts an optional string argument.
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// boolArg extracts an optional boolean argument.
func boolArg(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

// requiredStringArg extracts a required string argument.
func requiredStringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}
