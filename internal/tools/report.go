package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
)

// reportProjectLimit caps how many projects one report covers. Each project
// costs three API calls.
const reportProjectLimit = 5

// reportOverdueDays is the due-date horizon the report uses for its
// overdue count.
const reportOverdueDays = 7

// ProjectReport is the per-project section of a weekly report.
type ProjectReport struct {
	ProjectID            string `json:"project_id"`
	Name                 string `json:"name"`
	OpenWorkPackages     int    `json:"open_work_packages"`
	OverdueWorkPackages  int    `json:"overdue_work_packages"`
	CompletionPercentage int    `json:"completion_percentage"`
	Error                string `json:"error,omitempty"`
}

// WeeklyReport aggregates per-project summaries.
type WeeklyReport struct {
	GeneratedAt     string          `json:"generated_at"`
	ProjectsCovered int             `json:"projects_covered"`
	Projects        []ProjectReport `json:"projects"`
}

// buildWeeklyReport assembles a report for the given project IDs. With no
// IDs it covers all visible projects. Per-project failures degrade that
// project's section instead of failing the whole report; only the initial
// project listing is allowed to fail the call.
func buildWeeklyReport(ctx context.Context, client *openproject.Client, projectIDs []string, logger *common.Logger) Result {
	if len(projectIDs) == 0 {
		ids, err := allProjectIDs(ctx, client)
		if err != nil {
			return Errf(ErrRemote, "failed to list projects for report: %v", err)
		}
		projectIDs = ids
	}
	if len(projectIDs) > reportProjectLimit {
		projectIDs = projectIDs[:reportProjectLimit]
	}

	report := WeeklyReport{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		ProjectsCovered: len(projectIDs),
	}

	for _, id := range projectIDs {
		section := reportForProject(ctx, client, id)
		if section.Error != "" {
			logger.Warn().Str("project_id", id).Str("error", section.Error).Msg("weekly report section degraded")
		}
		report.Projects = append(report.Projects, section)
	}

	return OK(report)
}

// allProjectIDs lists every visible project ID.
func allProjectIDs(ctx context.Context, client *openproject.Client) ([]string, error) {
	body, err := client.Get(ctx, "/api/v3/projects", nil)
	if err != nil {
		return nil, err
	}
	var coll openproject.ProjectCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return nil, fmt.Errorf("failed to parse projects response: %w", err)
	}
	ids := make([]string, 0, len(coll.Embedded.Elements))
	for _, p := range coll.Embedded.Elements {
		ids = append(ids, strconv.Itoa(p.ID))
	}
	return ids, nil
}

// reportForProject performs the three calls for one project: detail, open
// work packages, and overdue work packages. Any failure marks the section
// degraded with zeroed counts.
func reportForProject(ctx context.Context, client *openproject.Client, projectID string) ProjectReport {
	section := ProjectReport{ProjectID: projectID}

	detail, err := client.Get(ctx, "/api/v3/projects/"+url.PathEscape(projectID), nil)
	if err != nil {
		section.Error = fmt.Sprintf("project detail unavailable: %v", err)
		return section
	}
	var project openproject.Project
	if err := json.Unmarshal(detail, &project); err != nil {
		section.Error = fmt.Sprintf("failed to parse project detail: %v", err)
		return section
	}
	section.Name = project.Name

	openColl, err := projectWorkPackages(ctx, client, projectID, openproject.OpenStatusFilter())
	if err != nil {
		section.Error = fmt.Sprintf("open work packages unavailable: %v", err)
		return section
	}
	section.OpenWorkPackages = openColl.Total
	section.CompletionPercentage = averageCompletion(openColl.Embedded.Elements)

	overdueColl, err := projectWorkPackages(ctx, client, projectID, openproject.DueWithinFilter(reportOverdueDays))
	if err != nil {
		section.Error = fmt.Sprintf("overdue work packages unavailable: %v", err)
		return section
	}
	section.OverdueWorkPackages = overdueColl.Total

	return section
}

func projectWorkPackages(ctx context.Context, client *openproject.Client, projectID, filterExpr string) (*openproject.WorkPackageCollection, error) {
	path := "/api/v3/projects/" + url.PathEscape(projectID) + "/work_packages"
	body, err := client.Get(ctx, path, openproject.FilterQuery(filterExpr))
	if err != nil {
		return nil, err
	}
	var coll openproject.WorkPackageCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return nil, fmt.Errorf("failed to parse work packages response: %w", err)
	}
	return &coll, nil
}

// averageCompletion returns the rounded mean of percentageDone across the
// given work packages, 0 when the set is empty.
func averageCompletion(wps []openproject.WorkPackage) int {
	if len(wps) == 0 {
		return 0
	}
	sum := 0
	for _, wp := range wps {
		sum += wp.PercentageDone
	}
	return int(math.Round(float64(sum) / float64(len(wps))))
}
