package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"igia-backend/pkg/id"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	// HeaderReplayed is set on responses served from the idempotency store.
	HeaderReplayed  = "Idempotent-Replayed"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

var reUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)

// validReqID accepts a lowercase UUID (v1-v5) or a 32-char public id.
func validReqID(reqID string) bool {
	return reUUID.MatchString(reqID) || id.Valid(reqID)
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with a zone.
// Timestamps without a zone are rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	// RFC3339Nano also parses values without fractional seconds
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}
