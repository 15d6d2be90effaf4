package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Expiry layouts used by carousel entries (day first).
const (
	ExpiryLayout      = "02-01-2006 15:04:05"
	ExpiryLayoutShort = "02-01-2006 15:04"
)

var expiryLayouts = []string{ExpiryLayout, ExpiryLayoutShort}

// ParseExpiry parses an entry expiry in loc (UTC when nil). Seconds are optional.
func ParseExpiry(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid expiry %q: want DD-MM-YYYY HH:MM[:SS]", value)
}

// FormatExpiry formats t with the full expiry layout.
func FormatExpiry(t time.Time) string {
	return t.Format(ExpiryLayout)
}
