package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerWeekTool(srv, svc)
	registerCalendarTool(srv, svc)
	registerEmotionsTool(srv, svc)
	registerSelectEmotionTool(srv, svc)
	registerDeselectEmotionTool(srv, svc)
	registerRecordEmotionTool(srv, svc)
	registerCategoriesTool(srv, svc)
	registerMonthlyTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"week",
		mcp.WithDescription("Show the mood colors from Monday through today and today's entry."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Week(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar",
		mcp.WithDescription("List recorded days, oldest first."),
		mcp.WithString("since",
			mcp.Description("Only include days on or after this date (YYYY-MM-DD)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		since := request.GetString("since", "")
		entries, err := svc.Calendar(ctx, since)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"since":   since,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerEmotionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"emotions",
		mcp.WithDescription("List the emotions available for recording."),
		mcp.WithString("scope",
			mcp.Description("active lists recordable emotions, all includes unselected optional ones."),
			mcp.Enum("active", "all"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := request.GetString("scope", "active")
		defs, err := svc.Emotions(ctx, scope == "all")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"scope":    scope,
			"emotions": defs,
			"count":    len(defs),
		})
	})
}

func registerSelectEmotionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"select_emotion",
		mcp.WithDescription("Opt into an optional emotion so it can be recorded."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Optional emotion identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sel, err := svc.Select(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sel)
	})
}

func registerDeselectEmotionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"deselect_emotion",
		mcp.WithDescription("Opt out of a previously selected optional emotion."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Optional emotion identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.Deselect(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"emotionId": id, "selected": false})
	})
}

func registerRecordEmotionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"record_emotion",
		mcp.WithDescription("Record the mood for a day. An existing record for the day is updated."),
		mcp.WithString("emotion",
			mcp.Required(),
			mcp.Description("Active emotion identifier."),
		),
		mcp.WithString("on",
			mcp.Description("Day to record (YYYY-MM-DD); defaults to today."),
		),
		mcp.WithString("note",
			mcp.Description("Free text note for the day."),
		),
		mcp.WithString("categories",
			mcp.Description("Comma separated category ids or names."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Emotion    string `json:"emotion"`
			On         string `json:"on"`
			Note       string `json:"note"`
			Categories string `json:"categories"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Emotion == "" {
			return mcp.NewToolResultError("emotion is required"), nil
		}

		entry, err := svc.Record(ctx, RecordOptions{
			EmotionID:  args.Emotion,
			On:         args.On,
			Note:       args.Note,
			Categories: args.Categories,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(entry)
	})
}

func registerCategoriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"categories",
		mcp.WithDescription("List the categories a day can be tagged with."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cats, err := svc.Categories(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"categories": cats,
			"count":      len(cats),
		})
	})
}

func registerMonthlyTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"monthly",
		mcp.WithDescription("Summarize recorded emotions per month."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		points, err := svc.Monthly(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"points": points,
			"count":  len(points),
		})
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Group recorded days by emotion, most frequent first."),
		mcp.WithString("since",
			mcp.Description("First day to include (YYYY-MM-DD); defaults to 30 days ago."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rep, err := svc.Report(ctx, request.GetString("since", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(rep)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
