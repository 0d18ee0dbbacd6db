package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuiz is returned when a round is started without questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrPrecondition is returned when a session operation is invoked in the wrong state.
	ErrPrecondition = errors.New("session precondition violated")
	// ErrInvalidRequest indicates a question request outside the provider's accepted values.
	ErrInvalidRequest = errors.New("invalid question request")
)

// FetchError reports that questions could not be obtained from the provider.
// No partial results accompany it.
type FetchError struct {
	Cause string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch questions: %s: %v", e.Cause, e.Err)
	}
	return "fetch questions: " + e.Cause
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
