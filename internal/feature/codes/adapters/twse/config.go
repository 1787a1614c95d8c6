// Package twse provides a client for the TWSE ISIN listing pages.
package twse

import (
	"os"
	"time"
)

// DefaultBaseURL is the public host serving the C_public.jsp listings.
const DefaultBaseURL = "https://isin.twse.com.tw"

// Config holds configuration for the ISIN listing client.
type Config struct {
	BaseURL string        // Base URL of the ISIN site (e.g. "https://isin.twse.com.tw")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads the listing client configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("TWSE_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 30 * time.Second,
	}
}
