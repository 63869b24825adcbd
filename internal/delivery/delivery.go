// Package delivery defines the contract every transport front-end satisfies.
package delivery

import "context"

// Delivery is one serving surface of the application. Implementations block
// in Serve until the listener fails or shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
