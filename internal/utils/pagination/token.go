// Package pagination encodes opaque keyset cursors for newest-first listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeCursor builds the cursor for the row after (createdAt, id) in
// createdAt-descending, id-descending order.
func EncodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(timeFormat) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor is the inverse of EncodeCursor.
func DecodeCursor(token string) (time.Time, string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination cursor (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination cursor (split)")
	}
	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination cursor (created_at parse): %w", err)
	}
	return createdAt, parts[1], nil
}
