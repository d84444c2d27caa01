package browser

import "fmt"

// ConnectionError means no browser could be acquired: the driver did not start,
// the remote endpoint refused the token or was unreachable, or no context could be created.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("browser connection to %s failed: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
