package tools

import (
	"strings"
	"testing"
)

func TestResult_OK(t *testing.T) {
	r := OK(map[string]any{"total": 3})
	if r.IsError() {
		t.Fatal("Expected success result")
	}
	rendered := r.Render()
	if !strings.Contains(rendered, `"total": 3`) {
		t.Errorf("Expected indented JSON, got %q", rendered)
	}
}

func TestResult_StringValuePassesThrough(t *testing.T) {
	raw := `{"_type":"User","id":1}`
	if got := OK(raw).Render(); got != raw {
		t.Errorf("Expected raw string untouched, got %q", got)
	}
}

func TestResult_Error(t *testing.T) {
	r := Errf(ErrRemote, "failed to list projects: %s", "connection refused")
	if !r.IsError() {
		t.Fatal("Expected error result")
	}
	rendered := r.Render()
	if !strings.HasPrefix(rendered, "Error (remote_error): ") {
		t.Errorf("Unexpected error rendering %q", rendered)
	}
	if !strings.Contains(rendered, "connection refused") {
		t.Errorf("Expected message in rendering, got %q", rendered)
	}
}

func TestToCallResult(t *testing.T) {
	success := toCallResult(OK("done"))
	if success.IsError {
		t.Error("Expected non-error call result")
	}

	failure := toCallResult(Errf(ErrInput, "project_id parameter is required"))
	if !failure.IsError {
		t.Error("Expected error call result")
	}
}
