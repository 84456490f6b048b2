// Package common provides shared utilities across the application.
package common

import (
	"regexp"
	"strings"
)

// b3TickerPattern matches the B3 listing code shape: four letters followed
// by one or two digits (PETR4, MGLU3, ITUB4, TAEE11).
var b3TickerPattern = regexp.MustCompile(`^[A-Za-z]{4}\d{1,2}$`)

// Ticker represents a validated B3 stock ticker.
type Ticker struct {
	// Code is the normalized (uppercase) listing code, e.g. "PETR4"
	Code string
	// Raw is the original input string
	Raw string
}

// ParseTicker validates and normalizes a B3 ticker string. The zero Ticker
// is returned for input that does not match the B3 listing-code shape;
// callers check Valid() before any network use.
func ParseTicker(input string) Ticker {
	trimmed := strings.TrimSpace(input)
	if !b3TickerPattern.MatchString(trimmed) {
		return Ticker{Raw: input}
	}
	return Ticker{
		Code: strings.ToUpper(trimmed),
		Raw:  input,
	}
}

// Valid reports whether the ticker passed shape validation.
func (t Ticker) Valid() bool {
	return t.Code != ""
}

// String returns the normalized listing code.
func (t Ticker) String() string {
	return t.Code
}
