package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeDateKeyToken creates a URL-safe token from the sort date and the
// tie-breaking key of the last row on a page.
func EncodeDateKeyToken(date time.Time, key string) string {
	return EncodeMultiFieldToken(date.Format(dateFormat), key)
}

// DecodeDateKeyToken parses a token produced by EncodeDateKeyToken.
func DecodeDateKeyToken(token string) (time.Time, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, "", err
	}
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, parts[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
