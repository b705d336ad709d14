// Package storage keeps generated files on disk under self-describing names
// and serves them back to MCP clients.
//
// Every stored file is named "<id><delimiter><original filename>", so the
// original filename can always be recovered from the stored name alone and no
// metadata is persisted next to the file. A Service reserves such names,
// writes buffers to them, resolves a client-facing URI (file:// for stdio,
// http:// for the HTTP transport) and exposes an http.Handler that serves the
// files back while keeping requests confined to the store directory.
//
// Example:
//
//	files := storage.New(&storage.Config{Location: "file:///var/lib/mcp/files"})
//	reservation, err := files.Write(ctx, "report.pdf", data)
//	uri, err := files.URI(reservation.StoredName, descriptor)
//	storage.Mount(mux, "/files", files.Handler())
package storage
