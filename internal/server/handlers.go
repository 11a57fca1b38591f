package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/service"
	"github.com/agbru/snfscalc/internal/u128"
	"github.com/agbru/snfscalc/pkg/models"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of available factorization algorithms.
// It queries the internal registry and returns the keys as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	algorithms := s.factory.List()

	response := map[string]any{
		"algorithms": algorithms,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleFactor processes requests to factor a modulus.
// It parses the query parameters 'n' (the modulus) and 'algo' (the algorithm),
// executes the attack, and returns the result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleFactor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse and validate parameters using helper
	n, algo, err := parseFactorParams(r)
	if err != nil {
		if parseErr, ok := err.(FactorParseError); ok {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// Create a context with timeout for the attack
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	// Perform the attack
	start := time.Now()
	result, err := s.service.Factorize(ctx, algo, n)
	duration := time.Since(start)

	// Handle modulus size limit error
	if errors.Is(err, service.ErrModulusTooLarge) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed size (%d bits). This limit prevents resource exhaustion.", s.securityConfig.MaxModulusBits))
		return
	}

	// Build and send response using helper
	resp := buildFactorResponse(n, algo, result, duration, err)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// parseFactorParams extracts and validates the attack parameters from the request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - n: The parsed modulus.
//   - algo: The algorithm name (defaults to "snfs" if not specified).
//   - err: A FactorParseError if validation fails, nil otherwise.
func parseFactorParams(r *http.Request) (n u128.Uint128, algo string, err error) {
	nStr := r.URL.Query().Get("n")
	if nStr == "" {
		return u128.Zero, "", FactorParseError{
			Message:    "Missing 'n' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	n, parseErr := u128.Parse(nStr)
	if parseErr != nil {
		// u128.Parse rejects signs and non-digits, effectively enforcing
		// non-negative decimal inputs as required for security.
		return u128.Zero, "", FactorParseError{
			Message:    "Invalid 'n' parameter: must be a decimal integer of at most 128 bits",
			StatusCode: http.StatusBadRequest,
		}
	}

	algo = r.URL.Query().Get("algo")
	if algo == "" {
		algo = "snfs" // Default algorithm
	}

	return n, algo, nil
}

// buildFactorResponse constructs the response struct for an attack.
//
// Parameters:
//   - n: The modulus that was attacked.
//   - algo: The algorithm name used.
//   - result: The attack result (only meaningful if err is nil).
//   - duration: The time taken for the attack.
//   - err: Any error that occurred during the attack.
//
// Returns:
//   - models.FactorResponse: The constructed response struct.
func buildFactorResponse(n u128.Uint128, algo string, result factor.Result, duration time.Duration, err error) models.FactorResponse {
	resp := models.FactorResponse{
		N:         n.String(),
		Duration:  duration.String(),
		Algorithm: algo,
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Factor = result.Factor.String()
		resp.Cofactor = result.Cofactor.String()
		resp.Stats = &models.AttackStats{
			Iterations:     result.Stats.Iterations,
			FactorBaseSize: result.Stats.FactorBaseSize,
			Relations:      result.Stats.Relations,
			Dependencies:   result.Stats.Dependencies,
		}
	}

	return resp
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
