package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"nan":  true,
	"null": true,
	"none": true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// IsNull reports whether a raw cell represents a missing value.
func IsNull(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}

// ParseFloat parses a nullable number. Null and malformed cells yield nil.
func ParseFloat(s string) *float64 {
	if IsNull(s) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseYear parses an edition year, accepting float text such as "2000.0".
// Malformed cells yield zero.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	if f := ParseFloat(s); f != nil {
		return int(*f)
	}
	return 0
}

// ParseDate parses a nullable date. Null and malformed cells yield nil.
func ParseDate(s string) *time.Time {
	if IsNull(s) {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseText returns the trimmed cell, or "" for null tokens.
func ParseText(s string) string {
	if IsNull(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
