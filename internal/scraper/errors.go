package scraper

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmptyQuery = errors.New("search query is empty")

// Steps that can time out while loading a search page.
const (
	StepNavigate  = "navigate"
	StepWaitCards = "wait for job cards"
)

// TimeoutError means a navigation or an element wait ran past its bound.
type TimeoutError struct {
	Step    string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s: %v", e.Step, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsNoResults reports whether err is the "no job card ever appeared" timeout,
// which callers treat as an empty result rather than a failure.
func IsNoResults(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te) && te.Step == StepWaitCards
}
