package motif

// Version is the library version reported by the CLI and the MCP server.
var Version = "0.3.0"
