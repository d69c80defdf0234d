package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-discovery/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server   *sdkmcp.Server
	sessions *SessionRegistry
	logger   *logging.Logger
}

// Register applies the provided tool options. Tools that page through
// results share sessions.
func Register(server *sdkmcp.Server, sessions *SessionRegistry, logger *logging.Logger, opts ...Option) {
	if sessions == nil {
		sessions = NewSessionRegistry(0, 0)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	reg := &registry{server: server, sessions: sessions, logger: logger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}
