package server

// FactorParseError represents a parameter parsing error with HTTP status.
type FactorParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e FactorParseError) Error() string {
	return e.Message
}
