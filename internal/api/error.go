package api

// HTTPError is returned by handlers to pick the response status. Message is
// what the client sees; ErrorLog is the underlying cause, logged server-side
// and never serialized.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorLog   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ApiError is the JSON error body.
type ApiError struct {
	Error string `json:"message"`
}
