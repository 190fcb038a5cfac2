package trivia

import "errors"

// Error kinds shared by services and the HTTP boundary. Callers wrap them with
// fmt.Errorf("...: %w", Err...) and the boundary maps them with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnprocessable = errors.New("unprocessable")
)
