package mcp

import mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

// RegisterAllTools wires every gocalc tool into the MCP server.
func RegisterAllTools(s *mcpsdk.Server, state *MCPServer) {
	registerCalcTools(s, state)
	registerLintTools(s, state)
}
