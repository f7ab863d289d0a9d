// Package tools builds the MCP tool surface: either the full set derived
// from the OpenAPI document, or the fixed manual fallback set when
// derivation fails.
package tools

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
	"github.com/openproject-tools/openproject-mcp/internal/translator"
)

// Mode says how the tool surface was produced.
type Mode string

const (
	// ModeTranslated means one tool per OpenAPI operation.
	ModeTranslated Mode = "translated"
	// ModeFallback means the fixed manual tool set is active.
	ModeFallback Mode = "fallback"
)

// Surface is the selected tool registry with its provenance.
type Surface struct {
	Mode  Mode
	Tools []server.ServerTool
}

// Select produces the tool surface for the given document and client.
// Translation failure is recovered locally: it is logged as a warning and
// the manual fallback set is substituted. Select itself never fails.
func Select(doc *openapi3.T, client *openproject.Client, logger *common.Logger) Surface {
	derived, err := translator.DeriveTools(doc, client)
	if err != nil {
		logger.Warn().Err(err).Msg("OpenAPI translation failed, switching to manual tool set")
		return Surface{Mode: ModeFallback, Tools: FallbackTools(client, logger)}
	}

	logger.Info().Int("tools", len(derived)).Msg("OpenAPI translation succeeded")
	return Surface{Mode: ModeTranslated, Tools: derived}
}

// Register adds every tool in the surface to the MCP server.
func (s Surface) Register(srv *server.MCPServer) {
	srv.AddTools(s.Tools...)
}

// Names returns the registered tool names in order.
func (s Surface) Names() []string {
	names := make([]string, 0, len(s.Tools))
	for _, t := range s.Tools {
		names = append(names, t.Tool.Name)
	}
	return names
}
