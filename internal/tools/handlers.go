package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
)

const (
	projectWorkPackageLimit = 10
	overdueWorkPackageLimit = 15
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// toCallResult serializes a domain result at the protocol edge.
func toCallResult(r Result) *mcp.CallToolResult {
	if r.IsError() {
		return errorResult(r.Render())
	}
	return textResult(r.Render())
}

// --- Handlers ---

func handleStatus() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult("OpenProject MCP Server is running in fallback mode: automatic OpenAPI translation is unavailable and a limited manual tool set is active (projects, work packages, users, weekly report)."), nil
	}
}

func handleListProjects(client *openproject.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toCallResult(fetchProjects(ctx, client)), nil
	}
}

func handleListProjectWorkPackages(client *openproject.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil || projectID == "" {
			return toCallResult(Errf(ErrInput, "project_id parameter is required")), nil
		}
		statusFilter := request.GetString("status_filter", "open")
		return toCallResult(fetchProjectWorkPackages(ctx, client, projectID, statusFilter)), nil
	}
}

func handleListOverdueWorkPackages(client *openproject.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		daysAhead := request.GetInt("days_ahead", 7)
		if daysAhead <= 0 {
			daysAhead = 7
		}
		return toCallResult(fetchOverdueWorkPackages(ctx, client, daysAhead)), nil
	}
}

func handleGetUserInfo(client *openproject.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := request.RequireString("user_id")
		if err != nil || userID == "" {
			return toCallResult(Errf(ErrInput, "user_id parameter is required")), nil
		}
		return toCallResult(fetchUserInfo(ctx, client, userID)), nil
	}
}

func handleGenerateWeeklyReport(client *openproject.Client, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectIDs := request.GetStringSlice("project_ids", nil)
		return toCallResult(buildWeeklyReport(ctx, client, projectIDs, logger)), nil
	}
}

// --- Domain operations ---

// fetchProjects lists all visible projects.
func fetchProjects(ctx context.Context, client *openproject.Client) Result {
	body, err := client.Get(ctx, "/api/v3/projects", nil)
	if err != nil {
		return Errf(ErrRemote, "failed to list projects: %v", err)
	}

	var coll openproject.ProjectCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return Errf(ErrDecode, "failed to parse projects response: %v", err)
	}

	return OK(map[string]any{
		"total_projects": coll.Total,
		"projects":       coll.Embedded.Elements,
	})
}

// fetchProjectWorkPackages lists work packages for one project, filtered to
// open status unless statusFilter is "all".
func fetchProjectWorkPackages(ctx context.Context, client *openproject.Client, projectID, statusFilter string) Result {
	expr := ""
	if statusFilter == "open" {
		expr = openproject.OpenStatusFilter()
	}

	path := fmt.Sprintf("/api/v3/projects/%s/work_packages", url.PathEscape(projectID))
	body, err := client.Get(ctx, path, openproject.FilterQuery(expr))
	if err != nil {
		return Errf(ErrRemote, "failed to list work packages for project %s: %v", projectID, err)
	}

	var coll openproject.WorkPackageCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return Errf(ErrDecode, "failed to parse work packages response: %v", err)
	}

	return OK(map[string]any{
		"project_id":          projectID,
		"status_filter":       statusFilter,
		"total_work_packages": coll.Total,
		"work_packages":       openproject.SummarizeAll(coll.Embedded.Elements, projectWorkPackageLimit),
	})
}

// fetchOverdueWorkPackages lists work packages across all projects due
// within daysAhead days.
func fetchOverdueWorkPackages(ctx context.Context, client *openproject.Client, daysAhead int) Result {
	query := openproject.FilterQuery(openproject.DueWithinFilter(daysAhead))
	body, err := client.Get(ctx, "/api/v3/work_packages", query)
	if err != nil {
		return Errf(ErrRemote, "failed to list overdue work packages: %v", err)
	}

	var coll openproject.WorkPackageCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return Errf(ErrDecode, "failed to parse work packages response: %v", err)
	}

	return OK(map[string]any{
		"days_ahead":    daysAhead,
		"total_overdue": coll.Total,
		"work_packages": openproject.SummarizeAll(coll.Embedded.Elements, overdueWorkPackageLimit),
	})
}

// fetchUserInfo returns the raw user resource for one user ID.
func fetchUserInfo(ctx context.Context, client *openproject.Client, userID string) Result {
	path := fmt.Sprintf("/api/v3/users/%s", url.PathEscape(userID))
	body, err := client.Get(ctx, path, nil)
	if err != nil {
		return Errf(ErrRemote, "failed to get user %s: %v", userID, err)
	}
	return OK(string(body))
}
