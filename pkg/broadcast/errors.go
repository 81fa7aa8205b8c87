package broadcast

import (
	"errors"
	"fmt"
)

var (
	// ErrListenerPanic marks a failure produced by a panicking listener.
	ErrListenerPanic = errors.New("broadcast: listener panicked")

	// ErrBusClosed is returned when publishing on a closed Bus.
	ErrBusClosed = errors.New("broadcast: bus is closed")

	// ErrDeliveryRejected is returned when the strategy refuses a delivery task.
	ErrDeliveryRejected = errors.New("broadcast: delivery rejected by strategy")
)

// ListenerError reports a listener that returned an error or panicked.
type ListenerError struct {
	SubscriptionID string
	Err            error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("broadcast: listener %s failed: %v", e.SubscriptionID, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
