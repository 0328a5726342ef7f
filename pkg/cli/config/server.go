package config

import "github.com/urfave/cli/v3"

// Server holds HTTP server configuration
type Server struct {
	Addr         string
	HookSecret   string `masq:"secret"`
	MaxBodyBytes int64
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("SHIPNOTE_ADDR"),
		},
		&cli.StringFlag{
			Name:        "hook-secret",
			Usage:       "Secret to verify the X-Shipnote-Signature-256 header",
			Required:    true,
			Destination: &c.HookSecret,
			Sources:     cli.EnvVars("SHIPNOTE_HOOK_SECRET"),
		},
		&cli.Int64Flag{
			Name:        "max-body-bytes",
			Usage:       "Maximum size of a release context",
			Value:       10 << 20,
			Destination: &c.MaxBodyBytes,
			Sources:     cli.EnvVars("SHIPNOTE_MAX_BODY_BYTES"),
		},
	}
}
