package openproject

import (
	"encoding/json"
	"testing"
)

func TestOpenStatusFilter(t *testing.T) {
	expr := OpenStatusFilter()

	var filters []map[string]map[string]any
	if err := json.Unmarshal([]byte(expr), &filters); err != nil {
		t.Fatalf("Filter expression is not valid JSON: %v", err)
	}
	if len(filters) != 1 {
		t.Fatalf("Expected one filter, got %d", len(filters))
	}
	status, ok := filters[0]["status"]
	if !ok {
		t.Fatal("Expected a status filter")
	}
	if status["operator"] != "o" {
		t.Errorf("Expected operator 'o', got %v", status["operator"])
	}
}

func TestDueWithinFilter(t *testing.T) {
	expr := DueWithinFilter(7)

	var filters []map[string]map[string]any
	if err := json.Unmarshal([]byte(expr), &filters); err != nil {
		t.Fatalf("Filter expression is not valid JSON: %v", err)
	}
	dueDate, ok := filters[0]["dueDate"]
	if !ok {
		t.Fatal("Expected a dueDate filter")
	}
	if dueDate["operator"] != "<t+" {
		t.Errorf("Expected operator '<t+', got %v", dueDate["operator"])
	}
	values, ok := dueDate["values"].([]any)
	if !ok || len(values) != 1 || values[0] != "7" {
		t.Errorf("Expected values [\"7\"], got %v", dueDate["values"])
	}
}

func TestFilterQuery(t *testing.T) {
	q := FilterQuery(OpenStatusFilter())
	if q.Get("filters") == "" {
		t.Error("Expected filters parameter to be set")
	}

	if q := FilterQuery(""); q != nil {
		t.Errorf("Expected nil query for empty expression, got %v", q)
	}
}
