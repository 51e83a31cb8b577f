package notify

import "github.com/rotaplan/rotaplan/core/model"

// Notifier delivers committed assignments to the people concerned.
type Notifier interface {
	// NotifyAssignment publishes one committed assignment and returns the
	// message identifier used by the transport.
	NotifyAssignment(a model.Assignment) (string, error)

	// Close releases the underlying connection.
	Close() error
}
