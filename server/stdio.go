package server

import (
	"context"

	"github.com/viant/jsonrpc/transport/server/stdio"
)

type stdioServer struct {
	stdioServerOption []stdio.Option
}

// Stdio returns the stdio server; stdout is owned by the protocol stream.
func (s *Server) Stdio(ctx context.Context) (*stdio.Server, error) {
	if s.newHandler == nil {
		return nil, ErrNoHandler
	}
	return stdio.New(ctx, s.NewHandler, s.stdioServerOption...), nil
}
