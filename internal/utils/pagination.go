// Package utils provides small domain-free helpers: slug generation for the
// content catalog and numeric parsing for pagination query parameters.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or not a
// plain integer. Query parameters like ?page= and ?page_size= go through
// this, so a garbled value degrades to the default instead of erroring.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
