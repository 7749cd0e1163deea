package exchange

import (
	"errors"
	"fmt"
)

// APIError is a structured error returned by the exchange, carrying its
// vendor-specific numeric code.
type APIError struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance: code %d: %s", e.Code, e.Msg)
}

// Normalized is the stable {message, details} pair the front end renders for
// any exchange failure.
type Normalized struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// NormalizeError maps an exchange failure onto display-ready guidance. Known
// credential-related codes get specific advice; anything else falls back to
// the raw vendor message with the code in the details.
func NormalizeError(err error) Normalized {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case -2015:
			return Normalized{
				Message: "Invalid API credentials. Please check your API key and secret, and ensure they have the correct permissions.",
				Details: "The API key might be invalid, or it doesn't have the required permissions for reading account information.",
			}
		case -2014:
			return Normalized{
				Message: "API key is not enabled for this IP address.",
				Details: "Please enable API access for your server's IP address in your Binance account settings.",
			}
		case -2013:
			return Normalized{
				Message: "Invalid API key format.",
				Details: "Please check that your API key is correctly formatted.",
			}
		default:
			return Normalized{
				Message: fmt.Sprintf("Binance API error: %s", apiErr.Msg),
				Details: fmt.Sprintf("Error code: %d", apiErr.Code),
			}
		}
	}

	details := "Unknown error occurred"
	if err != nil {
		details = err.Error()
	}
	return Normalized{
		Message: "Failed to connect to Binance",
		Details: details,
	}
}
