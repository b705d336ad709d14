// Package server bootstraps the transports of an MCP server.
//
// It does not implement the protocol itself: the hosting application supplies
// a jsonrpc handler factory (WithNewHandler) and the package exposes it over
// stdio or HTTP (SSE or streamable), selected by a transport.Descriptor.
// On HTTP it can also mount the stored-file retrieval endpoint of a
// storage.Service and wraps every route with the configured middleware:
//   - request-scoped slog logger injection
//   - access logging
//   - CORS headers and Origin validation
//
// Example:
//
//	srv, _ := server.New(
//		server.WithNewHandler(newHandler),
//		server.WithTransport(descriptor),
//		server.WithFileStore(files, "/files"),
//	)
//	log.Fatal(srv.ListenAndServe(ctx))
package server
