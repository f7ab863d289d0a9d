// Package translator derives MCP tools from a parsed OpenAPI document, one
// tool per operation. Each derived tool performs the corresponding HTTP call
// against the shared OpenProject client and returns the raw response.
//
// Derivation is all-or-nothing: any operation the translator cannot express
// fails the whole derivation, and the caller falls back to the manual tool
// set.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/openproject"
)

// Operation is one HTTP operation extracted from the OpenAPI document,
// with path-level and operation-level parameters merged.
type Operation struct {
	ID          string
	Summary     string
	Description string
	Path        string
	Method      string
	Parameters  openapi3.Parameters
	RequestBody *openapi3.RequestBodyRef
}

// ExtractOperations walks the document's paths and collects every operation.
// Operations without an operationId get a method_path name.
func ExtractOperations(doc *openapi3.T) []Operation {
	var ops []Operation
	for path, pathItem := range doc.Paths {
		for method, op := range pathItem.Operations() {
			id := op.OperationID
			if id == "" {
				id = toolNameFromPath(method, path)
			}

			merged := openapi3.Parameters{}
			merged = append(merged, pathItem.Parameters...)
			merged = append(merged, op.Parameters...)

			ops = append(ops, Operation{
				ID:          id,
				Summary:     op.Summary,
				Description: op.Description,
				Path:        path,
				Method:      method,
				Parameters:  merged,
				RequestBody: op.RequestBody,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].ID < ops[j].ID })
	return ops
}

// DeriveTools translates every operation in the document into an MCP tool
// wired to the given client. An empty document or any untranslatable
// operation returns an error.
func DeriveTools(doc *openapi3.T, client *openproject.Client) ([]server.ServerTool, error) {
	if doc == nil || len(doc.Paths) == 0 {
		return nil, fmt.Errorf("openapi document contains no paths")
	}

	ops := ExtractOperations(doc)
	if len(ops) == 0 {
		return nil, fmt.Errorf("openapi document contains no operations")
	}

	tools := make([]server.ServerTool, 0, len(ops))
	for _, op := range ops {
		schema, err := buildInputSchema(op)
		if err != nil {
			return nil, err
		}
		schemaJSON, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.ID, err)
		}

		desc := op.Description
		if desc == "" {
			desc = op.Summary
		}
		if desc == "" {
			desc = fmt.Sprintf("%s %s", strings.ToUpper(op.Method), op.Path)
		}

		tools = append(tools, server.ServerTool{
			Tool:    mcp.NewToolWithRawSchema(op.ID, desc, schemaJSON),
			Handler: operationHandler(op, client),
		})
	}
	return tools, nil
}

// operationHandler builds the tool handler for one operation: substitute
// path parameters, encode query parameters, attach the JSON body, issue the
// call, and return the response body as text. Remote failures become error
// results, never Go errors.
func operationHandler(op Operation, client *openproject.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path := op.Path
		query := url.Values{}
		for _, ref := range op.Parameters {
			p := ref.Value
			if p == nil {
				continue
			}
			v, ok := args[p.Name]
			if !ok {
				continue
			}
			switch p.In {
			case openapi3.ParameterInPath:
				path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(argString(v)))
			case openapi3.ParameterInQuery:
				query.Set(p.Name, argString(v))
			}
		}

		var reqBody io.Reader = http.NoBody
		if raw, ok := args["body"]; ok && op.RequestBody != nil {
			data, err := json.Marshal(raw)
			if err != nil {
				return errorResult(fmt.Sprintf("Error encoding request body: %v", err)), nil
			}
			reqBody = bytes.NewReader(data)
		}

		respBody, status, err := client.Do(ctx, strings.ToUpper(op.Method), path, query, reqBody)
		if err != nil {
			return errorResult(fmt.Sprintf("Error calling %s: %v", op.ID, err)), nil
		}
		if status >= 400 {
			return errorResult(fmt.Sprintf("Error calling %s: status %d: %s", op.ID, status, string(respBody))), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(respBody))},
		}, nil
	}
}

// toolNameFromPath builds a tool name like get_api_v3_projects_id from the
// method and path template.
func toolNameFromPath(method, path string) string {
	name := strings.ToLower(method) + path
	replacer := strings.NewReplacer("/", "_", "{", "", "}", "", "-", "_", ".", "_")
	name = replacer.Replace(name)
	return strings.Trim(name, "_")
}

// argString renders a tool argument as the string the URL layer needs.
func argString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; keep integers clean.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
