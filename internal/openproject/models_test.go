package openproject

import (
	"encoding/json"
	"testing"
)

const workPackageJSON = `{
	"id": 42,
	"subject": "Fix login page",
	"dueDate": "2026-09-01",
	"percentageDone": 60,
	"_links": {
		"status": {"href": "/api/v3/statuses/7", "title": "In progress"},
		"assignee": {"href": "/api/v3/users/3", "title": "Ada Lovelace"}
	}
}`

func TestWorkPackage_Summarize(t *testing.T) {
	var wp WorkPackage
	if err := json.Unmarshal([]byte(workPackageJSON), &wp); err != nil {
		t.Fatalf("Failed to unmarshal work package: %v", err)
	}

	s := wp.Summarize()
	if s.ID != 42 {
		t.Errorf("Expected id 42, got %d", s.ID)
	}
	if s.Subject != "Fix login page" {
		t.Errorf("Expected subject, got %q", s.Subject)
	}
	if s.Status != "In progress" {
		t.Errorf("Expected status title, got %q", s.Status)
	}
	if s.Assignee != "Ada Lovelace" {
		t.Errorf("Expected assignee title, got %q", s.Assignee)
	}
	if s.DueDate != "2026-09-01" {
		t.Errorf("Expected due date, got %q", s.DueDate)
	}
	if s.PercentDone != 60 {
		t.Errorf("Expected 60 percent done, got %d", s.PercentDone)
	}
}

func TestWorkPackage_Summarize_Placeholders(t *testing.T) {
	wp := WorkPackage{ID: 1, Subject: "Orphan task"}
	s := wp.Summarize()
	if s.Status != "Unknown" {
		t.Errorf("Expected Unknown status placeholder, got %q", s.Status)
	}
	if s.Assignee != "Unassigned" {
		t.Errorf("Expected Unassigned placeholder, got %q", s.Assignee)
	}
}

func TestSummarizeAll_Limit(t *testing.T) {
	wps := make([]WorkPackage, 25)
	for i := range wps {
		wps[i] = WorkPackage{ID: i + 1}
	}

	summaries := SummarizeAll(wps, 10)
	if len(summaries) != 10 {
		t.Errorf("Expected 10 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != 1 || summaries[9].ID != 10 {
		t.Error("Expected the first 10 work packages in order")
	}

	all := SummarizeAll(wps[:3], 10)
	if len(all) != 3 {
		t.Errorf("Expected 3 summaries when under the limit, got %d", len(all))
	}
}
