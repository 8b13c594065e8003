package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ParseDuration safely parses a duration string like "2s", falling back to
// the given default on empty or malformed input.
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// EncodingByName resolves a text encoding by its common name ("utf-8",
// "utf-16le", "iso-8859-1", ...). Empty means UTF-8.
func EncodingByName(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown output encoding %q: %w", name, err)
	}
	return enc, nil
}

// EncodeText converts a UTF-8 string to the named encoding.
func EncodeText(name, text string) ([]byte, error) {
	enc, err := EncodingByName(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode text as %q: %w", name, err)
	}
	return out, nil
}

// DecodeText converts bytes in the named encoding back to a UTF-8 string.
func DecodeText(name string, data []byte) (string, error) {
	enc, err := EncodingByName(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode text as %q: %w", name, err)
	}
	return string(out), nil
}

// FormatClock renders a duration as a "M minutes and S seconds" footer.
func FormatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d minutes and %d seconds", total/60, total%60)
}
