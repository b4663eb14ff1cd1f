// Package delivery defines the contract every transport server satisfies.
package delivery

import "context"

// Delivery is a server that accepts requests until its context is done or
// the fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
