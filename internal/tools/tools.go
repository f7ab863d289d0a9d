package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
)

// FallbackTools returns the fixed manual tool set used when OpenAPI
// translation is unavailable: a status probe plus five operational tools,
// each issuing a single round of HTTP calls against the shared client.
func FallbackTools(client *openproject.Client, logger *common.Logger) []server.ServerTool {
	return []server.ServerTool{
		{Tool: createStatusTool(), Handler: handleStatus()},
		{Tool: createListProjectsTool(), Handler: handleListProjects(client)},
		{Tool: createListProjectWorkPackagesTool(), Handler: handleListProjectWorkPackages(client)},
		{Tool: createListOverdueWorkPackagesTool(), Handler: handleListOverdueWorkPackages(client)},
		{Tool: createGetUserInfoTool(), Handler: handleGetUserInfo(client)},
		{Tool: createGenerateWeeklyReportTool(), Handler: handleGenerateWeeklyReport(client, logger)},
	}
}

// --- Tool definitions ---

func createStatusTool() mcp.Tool {
	return mcp.NewTool("openproject_status",
		mcp.WithDescription("Report the operating mode of the OpenProject MCP server. Use this to verify connectivity and whether the full API surface is available."),
	)
}

func createListProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects visible to the configured OpenProject API key."),
	)
}

func createListProjectWorkPackagesTool() mcp.Tool {
	return mcp.NewTool("list_project_work_packages",
		mcp.WithDescription("List work packages for a project. Returns the total count and up to the first 10 work packages with status, assignee, due date, and percent done."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project ID or identifier (e.g. '42')")),
		mcp.WithString("status_filter", mcp.Description("Status filter: 'open' (default) limits to open work packages, 'all' applies no filter")),
	)
}

func createListOverdueWorkPackagesTool() mcp.Tool {
	return mcp.NewTool("list_overdue_work_packages",
		mcp.WithDescription("List work packages across all projects due within the next N days. Returns the total count and up to the first 15 items."),
		mcp.WithNumber("days_ahead", mcp.Description("Due-date horizon in days (default: 7)")),
	)
}

func createGetUserInfoTool() mcp.Tool {
	return mcp.NewTool("get_user_info",
		mcp.WithDescription("Get an OpenProject user by ID. Returns the raw user resource."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Numeric user ID, or 'me' for the API key owner")),
	)
}

func createGenerateWeeklyReportTool() mcp.Tool {
	return mcp.NewTool("generate_weekly_report",
		mcp.WithDescription("Generate a weekly status report across projects: open and overdue work package counts plus an average completion percentage per project. Covers up to 5 projects."),
		mcp.WithArray("project_ids", mcp.WithStringItems(), mcp.Description("Project IDs to report on. Omit to cover all visible projects.")),
	)
}
