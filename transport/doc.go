// Package transport describes how a hosting MCP server talks to its clients.
//
// A Descriptor is the small value the rest of the module consumes: it tells
// whether the server runs over the local stdio stream or over HTTP and, for
// HTTP, on which port. Descriptors are usually produced from command line
// flags or environment variables with Parse.
package transport
