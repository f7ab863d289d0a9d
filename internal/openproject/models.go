package openproject

// Link is a HAL link with an optional human-readable title.
type Link struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// Project is an OpenProject project resource.
type Project struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
}

// WorkPackage is an OpenProject work package (task/ticket) resource.
// Status and assignee arrive as HAL links; the titles carry the names.
type WorkPackage struct {
	ID             int    `json:"id"`
	Subject        string `json:"subject"`
	DueDate        string `json:"dueDate"`
	PercentageDone int    `json:"percentageDone"`
	Links          struct {
		Status   Link `json:"status"`
		Assignee Link `json:"assignee"`
		Project  Link `json:"project"`
	} `json:"_links"`
}

// ProjectCollection is the HAL collection returned by /api/v3/projects.
type ProjectCollection struct {
	Total    int `json:"total"`
	Count    int `json:"count"`
	Embedded struct {
		Elements []Project `json:"elements"`
	} `json:"_embedded"`
}

// WorkPackageCollection is the HAL collection returned by the work-package
// endpoints.
type WorkPackageCollection struct {
	Total    int `json:"total"`
	Count    int `json:"count"`
	Embedded struct {
		Elements []WorkPackage `json:"elements"`
	} `json:"_embedded"`
}

// WorkPackageSummary is the reshaped view of a work package exposed through
// tool results.
type WorkPackageSummary struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	PercentDone int    `json:"percent_done"`
}

// Summarize reshapes a work package into its tool-facing summary.
// Missing assignees and statuses become readable placeholders.
func (wp WorkPackage) Summarize() WorkPackageSummary {
	status := wp.Links.Status.Title
	if status == "" {
		status = "Unknown"
	}
	assignee := wp.Links.Assignee.Title
	if assignee == "" {
		assignee = "Unassigned"
	}
	return WorkPackageSummary{
		ID:          wp.ID,
		Subject:     wp.Subject,
		Status:      status,
		Assignee:    assignee,
		DueDate:     wp.DueDate,
		PercentDone: wp.PercentageDone,
	}
}

// SummarizeAll reshapes up to limit work packages.
func SummarizeAll(wps []WorkPackage, limit int) []WorkPackageSummary {
	if limit > 0 && len(wps) > limit {
		wps = wps[:limit]
	}
	summaries := make([]WorkPackageSummary, 0, len(wps))
	for _, wp := range wps {
		summaries = append(summaries, wp.Summarize())
	}
	return summaries
}
