package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/apispec"
	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/config"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
)

const testSpec = `openapi: 3.0.0
info:
  title: Test API
  version: "1.0"
paths:
  /api/v3/projects:
    get:
      operationId: listProjects
      summary: List projects
      parameters:
        - name: filters
          in: query
          schema:
            type: string
      responses:
        "200":
          description: OK
  /api/v3/users/{id}:
    get:
      operationId: getUser
      summary: Get a user
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: OK
`

func testClient(baseURL string) *openproject.Client {
	return openproject.NewClient(config.OpenProjectConfig{
		BaseURL:        baseURL,
		APIKey:         "test-api-key-1234",
		TimeoutSeconds: 5,
	}, common.NewSilentLogger())
}

func deriveFromSpec(t *testing.T, spec, baseURL string) []server.ServerTool {
	t.Helper()
	doc, err := apispec.Parse([]byte(spec))
	if err != nil {
		t.Fatalf("Failed to parse test spec: %v", err)
	}
	tools, err := DeriveTools(doc, testClient(baseURL))
	if err != nil {
		t.Fatalf("Unexpected derivation error: %v", err)
	}
	return tools
}

func findTool(t *testing.T, tools []server.ServerTool, name string) server.ServerTool {
	t.Helper()
	for _, tool := range tools {
		if tool.Tool.Name == name {
			return tool
		}
	}
	t.Fatalf("Tool %q not found", name)
	return server.ServerTool{}
}

func TestDeriveTools_OneToolPerOperation(t *testing.T) {
	tools := deriveFromSpec(t, testSpec, "http://localhost:1")

	if len(tools) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(tools))
	}
	// Sorted by operation ID
	if tools[0].Tool.Name != "getUser" || tools[1].Tool.Name != "listProjects" {
		t.Errorf("Unexpected tool names: %s, %s", tools[0].Tool.Name, tools[1].Tool.Name)
	}
}

func TestDeriveTools_SchemaMarksPathParamsRequired(t *testing.T) {
	tools := deriveFromSpec(t, testSpec, "http://localhost:1")
	getUser := findTool(t, tools, "getUser")

	var schema map[string]any
	if err := json.Unmarshal(getUser.Tool.RawInputSchema, &schema); err != nil {
		t.Fatalf("Failed to unmarshal input schema: %v", err)
	}
	required, _ := schema["required"].([]any)
	if len(required) != 1 || required[0] != "id" {
		t.Errorf("Expected required [id], got %v", required)
	}
	props, _ := schema["properties"].(map[string]any)
	if _, ok := props["id"]; !ok {
		t.Error("Expected id property in schema")
	}
}

func TestDeriveTools_EmptyDocument(t *testing.T) {
	doc, err := apispec.Parse([]byte(`{"openapi":"3.0.0","info":{"title":"t","version":"1"},"paths":{}}`))
	if err != nil {
		t.Fatalf("Failed to parse test spec: %v", err)
	}
	if _, err := DeriveTools(doc, testClient("http://localhost:1")); err == nil {
		t.Error("Expected error for document without paths")
	}
}

func TestDeriveTools_ParameterWithoutSchema(t *testing.T) {
	spec := `openapi: 3.0.0
info:
  title: Test API
  version: "1.0"
paths:
  /api/v3/queries:
    get:
      operationId: listQueries
      parameters:
        - name: payload
          in: query
          content:
            application/json:
              schema:
                type: object
      responses:
        "200":
          description: OK
`
	doc, err := apispec.Parse([]byte(spec))
	if err != nil {
		t.Fatalf("Failed to parse test spec: %v", err)
	}
	if _, err := DeriveTools(doc, testClient("http://localhost:1")); err == nil {
		t.Error("Expected error for parameter without a plain schema")
	}
}

func TestOperationHandler_PathSubstitutionAndResponse(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/users/5" {
			t.Errorf("Expected path /api/v3/users/5, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 5, "name": "Ada"})
	}))
	defer mockServer.Close()

	tools := deriveFromSpec(t, testSpec, mockServer.URL)
	getUser := findTool(t, tools, "getUser")

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"id": float64(5),
	}

	result, err := getUser.Handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	text := result.Content[0].(mcp.TextContent).Text
	if !strings.Contains(text, "Ada") {
		t.Errorf("Expected response body in result, got %q", text)
	}
}

func TestOperationHandler_QueryParameters(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filters"); got != "[]" {
			t.Errorf("Expected filters=[], got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"total": 0})
	}))
	defer mockServer.Close()

	tools := deriveFromSpec(t, testSpec, mockServer.URL)
	listProjects := findTool(t, tools, "listProjects")

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"filters": "[]",
	}

	result, err := listProjects.Handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
}

func TestOperationHandler_RemoteErrorBecomesErrorResult(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer mockServer.Close()

	tools := deriveFromSpec(t, testSpec, mockServer.URL)
	listProjects := findTool(t, tools, "listProjects")

	result, err := listProjects.Handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handler must not return a Go error, got: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for 500 response")
	}
	text := result.Content[0].(mcp.TextContent).Text
	if !strings.Contains(text, "Error") {
		t.Errorf("Expected Error in result text, got %q", text)
	}
}

func TestToolNameFromPath(t *testing.T) {
	name := toolNameFromPath("GET", "/api/v3/projects/{id}/work_packages")
	if name != "get_api_v3_projects_id_work_packages" {
		t.Errorf("Unexpected tool name %q", name)
	}
}
