package extract_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/pipeline"
	"github.com/calscribe/calscribe/internal/server"
	"github.com/calscribe/calscribe/internal/tools/common"
)

// handleExtractEvents runs the extraction pipeline on the supplied
// transcript. Without a calendar client for the account the pipeline runs
// without context and syncs in dry-run mode.
func handleExtractEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	transcriptText, err := requiredStringArg(args, "transcript")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	extractor := sc.Extractor()
	if extractor == nil {
		return mcp.NewToolResultError("no LLM provider configured: set OPENAI_API_KEY, ANTHROPIC_API_KEY or CALSCRIBE_LLM_PROVIDER=ollama"), nil
	}

	now := time.Now()
	if nowArg := stringArg(args, "now"); nowArg != "" {
		parsed, err := model.ParseTimestamp(nowArg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid now: %v", err)), nil
		}
		now = parsed
	}

	account := common.GetAccountFromArgs(args)

	p := &pipeline.Pipeline{
		Extractor: extractor,
		Owner:     stringArg(args, "owner"),
		DryRun:    boolArg(args, "dryRun"),
	}
	// A nil *calendar.Client must stay a nil interface, otherwise the
	// pipeline would try to fetch context through it.
	if client := sc.CalendarClientForAccount(account); client != nil {
		p.Calendar = client
	}

	result, err := p.Run(ctx, transcriptText, now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
