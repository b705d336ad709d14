// Package mcpx provides high-level helpers for hosting Model Context Protocol (MCP) servers.
//
// It is not a framework. The package glues three independent utilities:
//   - transport: a descriptor of the stdio or HTTP transport, parsed from flags or env,
//   - storage: named-file storage with URI resolution and an HTTP retrieval endpoint,
//   - server: stdio / HTTP bootstrapping with middleware composition.
//
// NewServer builds all of them from one option structure that can be populated from
// CLI flags or a YAML configuration file. The MCP protocol handler itself is always
// supplied by the caller as a jsonrpc handler factory.
//
// Example:
//
//	srv, files, _ := mcpx.NewServer(newHandler, &mcpx.ServerOptions{ /* … */ })
//	reservation, _ := files.Write(ctx, "report.csv", data)
//	uri, _ := files.URI(reservation.StoredName, srv.Transport())
package mcpx
