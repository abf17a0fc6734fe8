package flagpost

// ValidationError reports a malformed evaluation request. It is returned
// before any network I/O and is never retried.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

// ConfigurationError reports an invalid client setting (API key, base URL
// or retry policy). It is returned from the constructor and setters only,
// never from an evaluation call.
type ConfigurationError struct {
	msg string
}

func (e ConfigurationError) Error() string {
	return e.msg
}

// APIError reports a failed exchange with the evaluation service: a
// transport error, a timeout, or a non-2xx response. It surfaces after the
// final retry attempt. StatusCode is zero when no response was received.
type APIError struct {
	StatusCode int
	msg        string
	cause      error
}

func (e APIError) Error() string {
	return e.msg
}

func (e APIError) Unwrap() error {
	return e.cause
}

// ResponseFormatError reports a success response whose body could not be
// decoded. It is terminal: the evaluation fails without further attempts.
type ResponseFormatError struct {
	msg   string
	cause error
}

func (e ResponseFormatError) Error() string {
	return e.msg
}

func (e ResponseFormatError) Unwrap() error {
	return e.cause
}
