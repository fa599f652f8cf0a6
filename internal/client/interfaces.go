package client

import "context"

// Client runs a single command given as positional arguments.
type Client interface {
	Run(ctx context.Context, args []string) error
}
