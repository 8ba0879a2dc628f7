package index

// RetryableError marks a delivery failure worth retrying: a network error,
// a 429, or a 5xx from the index service.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}
