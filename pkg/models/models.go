// Package models defines the shared JSON data structures of the HTTP API.
// They are exported so that API clients can decode responses with the same
// types the server encodes.
package models

// FactorResponse represents the standardized JSON response for a
// factorization request.
type FactorResponse struct {
	// N is the decimal modulus that was attacked.
	N string `json:"n"`
	// Factor is the first prime factor found. Omitted if an error occurred.
	Factor string `json:"factor,omitempty"`
	// Cofactor is n divided by Factor. Omitted if an error occurred.
	Cofactor string `json:"cofactor,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the attack failed.
	Error string `json:"error,omitempty"`
	// Algorithm is the name of the algorithm used for the attack.
	Algorithm string `json:"algorithm"`
	// Stats carries the run statistics of the attack, when available.
	Stats *AttackStats `json:"stats,omitempty"`
}

// AttackStats mirrors the run statistics of an attack for API consumers.
type AttackStats struct {
	// Iterations counts the work steps of the winning algorithm.
	Iterations uint64 `json:"iterations,omitempty"`
	// FactorBaseSize is the number of primes in the sieve factor base.
	FactorBaseSize int `json:"factor_base_size,omitempty"`
	// Relations is the number of smooth relations collected by the sieve.
	Relations int `json:"relations,omitempty"`
	// Dependencies is the number of GF(2) dependencies examined.
	Dependencies int `json:"dependencies,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
