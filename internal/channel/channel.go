// Package channel defines the surfaces that deliver launcher events to the
// controller: the terminal launcher and the stdio protocol.
package channel

import "context"

// Channel is a host surface. Start blocks until the surface finishes, ctx is
// cancelled, or Stop is called.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
}
