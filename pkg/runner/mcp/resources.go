package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerWeekResource(srv, svc)
	registerEmotionsResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerWeekResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"moodlog://week",
		"Current Week",
		mcp.WithResourceDescription("Mood colors from Monday through today."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.Week(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerEmotionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"moodlog://emotions",
		"Emotions",
		mcp.WithResourceDescription("The full emotion catalog with selection state."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs, err := svc.Emotions(ctx, true)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"emotions": defs,
			"count":    len(defs),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"moodlog://days/{date}",
		"Day Entry",
		mcp.WithTemplateDescription("The recorded mood for a single day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw, _ := request.Params.Arguments["date"].(string)
		if raw == "" {
			return nil, fmt.Errorf("date is required")
		}

		e, err := svc.Day(ctx, raw)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"entry": e,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
