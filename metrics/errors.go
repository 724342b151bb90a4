package metrics

import "fmt"

// InvariantError reports that a completed assignment violates one of the
// universal or solver-specific testable properties.
type InvariantError struct {
	Property string
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("metrics: %s violated: %s", e.Property, e.Reason)
}
