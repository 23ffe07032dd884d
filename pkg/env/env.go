// Package env reads raw environment variables for code that runs before the
// config layer has parsed anything, such as logger bootstrap.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
